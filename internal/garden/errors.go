package garden

import (
	"errors"

	"github.com/dukerupert/seedstudio/internal/store"
)

func isUnknownSeed(err error) bool {
	return errors.Is(err, ErrUnknownSeed)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
