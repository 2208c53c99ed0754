package transfer

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestSealOpenRoundTrip(t *testing.T) {
	plaintext := []byte(`{"seeds": []}`)

	sealed, err := Seal(plaintext, "hunter2")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if len(sealed) <= saltSize+nonceSize {
		t.Fatalf("sealed length = %d, too short", len(sealed))
	}
	if bytes.Contains(sealed, plaintext) {
		t.Error("sealed output contains plaintext")
	}

	got, err := Open(sealed, "hunter2")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Open() = %q, want %q", got, plaintext)
	}
}

func TestOpenWrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if _, err := Open(sealed, "wrong"); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Open() error = %v, want ErrDecrypt", err)
	}
}

func TestOpenTruncated(t *testing.T) {
	if _, err := Open([]byte("short"), "x"); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Open() error = %v, want ErrDecrypt", err)
	}
}

func TestSealEmptyPassphrase(t *testing.T) {
	if _, err := Seal([]byte("x"), ""); err == nil {
		t.Error("expected error for empty passphrase")
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	src := sampleSlots(t)
	sealed, err := SealDocument(Export(src, time.Now()), "pass")
	if err != nil {
		t.Fatalf("SealDocument() error = %v", err)
	}

	p, err := OpenArchive(bytes.NewReader(sealed), "pass")
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	if len(p.Document.Seeds) != 1 || p.Document.Seeds[0].ID != "s1" {
		t.Errorf("seeds = %+v", p.Document.Seeds)
	}
}
