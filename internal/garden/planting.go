package garden

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukerupert/seedstudio/internal/catalog"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
)

// SavePlanting creates or updates p. Creating a planting also writes a
// planting log dated on the sowing date; edits do not.
func (s *Service) SavePlanting(ctx context.Context, p model.Planting) (*model.Planting, bool, error) {
	p.Notes = strings.TrimSpace(p.Notes)
	if err := p.Validate(); err != nil {
		return nil, false, err
	}

	var (
		saved   *model.Planting
		created bool
	)
	err := s.slots.Tx(func(tx *store.Tx) error {
		seed, err := store.NewSeedStore(tx).GetByID(p.SeedID)
		if err != nil {
			return err
		}
		if seed == nil {
			return fmt.Errorf("save planting: %w", ErrUnknownSeed)
		}

		plantings := store.NewPlantingStore(tx)
		if p.ID != "" {
			existing, err := plantings.GetByID(p.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				saved = &p
				return plantings.Update(p)
			}
		}

		if saved, err = plantings.Create(p); err != nil {
			return err
		}
		created = true

		name := catalog.Load(tx).Details(*seed).Name
		_, err = store.NewLogStore(tx).Create(model.LogEntry{
			TaskID: model.TaskPlanting,
			Date:   p.SowingDate,
			SeedID: p.SeedID,
			Notes:  sowedNote(name, p.Notes),
		})
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return saved, created, nil
}

func (s *Service) DeletePlanting(ctx context.Context, id string) error {
	return store.NewPlantingStore(s.slots).Delete(id)
}
