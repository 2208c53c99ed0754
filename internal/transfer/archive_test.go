package transfer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dukerupert/seedstudio/internal/photo"
)

// mockS3Client implements photo.S3API for testing.
type mockS3Client struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMockS3() *mockS3Client {
	return &mockS3Client{objects: make(map[string][]byte)}
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, _ := io.ReadAll(input.Body)
	m.objects[*input.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[*input.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *mockS3Client) DeleteObject(_ context.Context, input *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, *input.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestUploaderRoundTrip(t *testing.T) {
	mock := newMockS3()
	u := NewUploader(mock, photo.S3Config{Bucket: "garden"}, nil)
	ctx := context.Background()

	name := ArchiveName(time.Date(2026, 7, 4, 12, 30, 0, 0, time.UTC))
	if name != "seed-studio-backup-2026-07-04T123000Z.json.enc" {
		t.Errorf("ArchiveName() = %q", name)
	}

	key, err := u.Upload(ctx, name, []byte("sealed"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasPrefix(key, "backups/") {
		t.Errorf("key = %q, want backups/ prefix", key)
	}

	got, err := u.Download(ctx, key)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(got) != "sealed" {
		t.Errorf("Download() = %q, want %q", got, "sealed")
	}
}

func TestUploaderPutError(t *testing.T) {
	mock := newMockS3()
	mock.putErr = errors.New("access denied")
	u := NewUploader(mock, photo.S3Config{Bucket: "garden"}, nil)

	if _, err := u.Upload(context.Background(), "x", []byte("y")); err == nil {
		t.Error("expected upload error")
	}
}
