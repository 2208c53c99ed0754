package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dukerupert/seedstudio/internal/photo"
)

// ArchiveName is the object name for an encrypted export taken at now.
func ArchiveName(now time.Time) string {
	return "seed-studio-backup-" + now.UTC().Format("2006-01-02T150405Z") + ".json.enc"
}

// SealDocument encodes doc and encrypts it with passphrase.
func SealDocument(doc Document, passphrase string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, doc); err != nil {
		return nil, err
	}
	return Seal(buf.Bytes(), passphrase)
}

// OpenArchive decrypts an archive and parses the document inside.
func OpenArchive(r io.Reader, passphrase string) (*Parsed, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+saltSize+nonceSize+16))
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	plain, err := Open(data, passphrase)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(plain))
}

// Uploader ships encrypted archives to S3-compatible storage.
type Uploader struct {
	client photo.S3API
	bucket string
	prefix string
	logger *slog.Logger
}

func NewUploader(client photo.S3API, cfg photo.S3Config, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{
		client: client,
		bucket: cfg.Bucket,
		prefix: "backups/",
		logger: logger.With("component", "archive"),
	}
}

// Upload stores sealed under name and returns the object key.
func (u *Uploader) Upload(ctx context.Context, name string, sealed []byte) (string, error) {
	key := u.prefix + name
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(sealed),
		ContentLength: aws.Int64(int64(len(sealed))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	u.logger.Info("archive uploaded", "key", key, "bytes", len(sealed))
	return key, nil
}

// Download fetches the archive stored under key.
func (u *Uploader) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := u.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("download from s3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return data, nil
}
