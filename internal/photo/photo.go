// Package photo stores image payloads referenced by logs and journal entries.
package photo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dukerupert/seedstudio/internal/model"
)

// Store is a blob store keyed by photo id. Get returns nil, nil for unknown
// ids and Delete of an unknown id is not an error.
type Store interface {
	Put(ctx context.Context, p model.Photo) error
	Get(ctx context.Context, id string) (*model.Photo, error)
	Delete(ctx context.Context, id string) error
}

var ErrInvalidDataURL = errors.New("invalid data url")

// MaxBytes caps a decoded photo payload.
const MaxBytes = 10 << 20

// ParseDataURL splits a base64 data URL into its media type and payload.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURL)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURL)
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: payload must be base64", ErrInvalidDataURL)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", nil, fmt.Errorf("%w: media type %q is not an image", ErrInvalidDataURL, mediaType)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	if len(data) > MaxBytes {
		return "", nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidDataURL, MaxBytes)
	}
	return mediaType, data, nil
}

func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
