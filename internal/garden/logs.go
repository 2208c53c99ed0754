package garden

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
)

// RecordLog creates entry, or replaces the stored entry with the same id.
// A planting log with a seed and quantity takes that many packets from the
// seed; on edit only the difference is applied.
func (s *Service) RecordLog(ctx context.Context, entry model.LogEntry) (*model.LogEntry, error) {
	entry.Notes = strings.TrimSpace(entry.Notes)
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	var (
		saved      *model.LogEntry
		changes    []*StockChange
		stalePhoto string
	)
	err := s.slots.Tx(func(tx *store.Tx) error {
		logs := store.NewLogStore(tx)
		var old *model.LogEntry
		if entry.ID != "" {
			var err error
			if old, err = logs.GetByID(entry.ID); err != nil {
				return err
			}
		}

		// A stored entry may point at a task type deleted since.
		if old == nil || old.TaskID != entry.TaskID {
			if _, ok := store.NewTaskStore(tx).Find(entry.TaskID); !ok {
				return fmt.Errorf("record log for task %q: %w", entry.TaskID, ErrUnknownTask)
			}
		}

		var err error
		changes, err = s.applyPlanted(tx, old, &entry)
		if err != nil {
			return err
		}

		if old == nil {
			saved, err = logs.Create(entry)
			return err
		}
		if old.PhotoID != "" && old.PhotoID != entry.PhotoID {
			stalePhoto = old.PhotoID
		}
		if err := logs.Update(entry); err != nil {
			return err
		}
		saved = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deletePhotosQuietly(ctx, stalePhoto)
	s.announce(changes)
	return saved, nil
}

// applyPlanted gives back what old's planting took and takes next's
// quantity, recording on next how much was actually removed. A seed that
// was deleted after old was stored is skipped.
func (s *Service) applyPlanted(tx store.Slots, old, next *model.LogEntry) ([]*StockChange, error) {
	next.StockTaken = nil
	newQty := next.PlantedQuantity()

	var oldSeed string
	oldTaken := 0
	if old != nil && old.PlantedQuantity() > 0 {
		oldSeed, oldTaken = old.SeedID, old.Taken()
	}

	if old != nil && old.PlantedQuantity() == newQty && old.SeedID == next.SeedID {
		next.StockTaken = old.StockTaken
		return nil, nil
	}
	if oldSeed == "" && newQty == 0 {
		return nil, nil
	}

	if oldSeed == next.SeedID {
		c, taken, err := s.moveStock(tx, oldSeed, oldTaken, newQty)
		if isUnknownSeed(err) {
			next.StockTaken = intPtr(0)
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if newQty > 0 {
			next.StockTaken = &taken
		}
		return []*StockChange{c}, nil
	}

	var changes []*StockChange
	if oldSeed != "" {
		c, _, err := s.moveStock(tx, oldSeed, oldTaken, 0)
		if err != nil && !isUnknownSeed(err) {
			return nil, err
		}
		if c != nil {
			changes = append(changes, c)
		}
	}
	if newQty > 0 {
		c, taken, err := s.moveStock(tx, next.SeedID, 0, newQty)
		if err != nil {
			return nil, err
		}
		next.StockTaken = &taken
		changes = append(changes, c)
	}
	return changes, nil
}

func intPtr(n int) *int { return &n }

// DeleteLog removes the entry's photo and then the entry. Stock taken by a
// planting log is not returned.
func (s *Service) DeleteLog(ctx context.Context, id string) error {
	entry, err := store.NewLogStore(s.slots).GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("delete log %q: %w", id, store.ErrNotFound)
	}
	if err := s.deletePhotos(ctx, entry.PhotoID); err != nil {
		return err
	}
	return store.NewLogStore(s.slots).Delete(id)
}
