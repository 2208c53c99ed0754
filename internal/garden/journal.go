package garden

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
)

// SaveJournalEntry creates or updates j. Photos dropped from an existing
// entry are removed from the blob store after the entry is saved.
func (s *Service) SaveJournalEntry(ctx context.Context, j model.JournalEntry) (*model.JournalEntry, error) {
	j.Title = strings.TrimSpace(j.Title)
	if j.PhotoIDs == nil {
		j.PhotoIDs = []string{}
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}

	var (
		saved   *model.JournalEntry
		removed []string
	)
	err := s.slots.Tx(func(tx *store.Tx) error {
		entries := store.NewJournalStore(tx)
		if j.ID != "" {
			old, err := entries.GetByID(j.ID)
			if err != nil {
				return err
			}
			if old != nil {
				for _, id := range old.PhotoIDs {
					if !slices.Contains(j.PhotoIDs, id) {
						removed = append(removed, id)
					}
				}
				saved = &j
				return entries.Update(j)
			}
		}
		var err error
		saved, err = entries.Create(j)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deletePhotosQuietly(ctx, removed...)
	return saved, nil
}

// DeleteJournalEntry removes the entry's photos and then the entry.
func (s *Service) DeleteJournalEntry(ctx context.Context, id string) error {
	entry, err := store.NewJournalStore(s.slots).GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("delete journal entry %q: %w", id, store.ErrNotFound)
	}
	if err := s.deletePhotos(ctx, entry.PhotoIDs...); err != nil {
		return err
	}
	return store.NewJournalStore(s.slots).Delete(id)
}
