package photo

import (
	"errors"
	"testing"
)

func TestParseDataURL(t *testing.T) {
	url := EncodeDataURL("image/png", []byte{0x89, 'P', 'N', 'G'})

	mediaType, data, err := ParseDataURL(url)
	if err != nil {
		t.Fatalf("ParseDataURL() error = %v", err)
	}
	if mediaType != "image/png" {
		t.Errorf("media type = %q, want %q", mediaType, "image/png")
	}
	if string(data) != "\x89PNG" {
		t.Errorf("data = %q", data)
	}
}

func TestParseDataURLRejects(t *testing.T) {
	tests := []string{
		"",
		"http://example.com/a.png",
		"data:image/png;base64",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png,raw",
		"data:image/png;base64,!!!",
	}
	for _, in := range tests {
		if _, _, err := ParseDataURL(in); !errors.Is(err, ErrInvalidDataURL) {
			t.Errorf("ParseDataURL(%q) error = %v, want ErrInvalidDataURL", in, err)
		}
	}
}
