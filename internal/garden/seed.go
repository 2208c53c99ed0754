package garden

import (
	"context"

	"github.com/dukerupert/seedstudio/internal/catalog"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
)

// SaveSeed validates and stores a seed. The referenced seed database entry
// must exist.
func (s *Service) SaveSeed(ctx context.Context, seed model.Seed) (*model.Seed, error) {
	seed.Normalize()
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	if _, ok := catalog.Load(s.slots).Lookup(seed.SeedDetailsID); !ok {
		v := model.NewValidation()
		v.Add("seedDetailsId", "Please select a seed variety.")
		return nil, v.Err()
	}

	seeds := store.NewSeedStore(s.slots)
	if seed.ID != "" {
		if err := seeds.Update(seed); err == nil {
			return &seed, nil
		} else if !isNotFound(err) {
			return nil, err
		}
	}
	return seeds.Create(seed)
}

// DeleteSeed removes exactly the seed with id. Logs and plantings that
// reference it keep the dangling id.
func (s *Service) DeleteSeed(ctx context.Context, id string) error {
	return store.NewSeedStore(s.slots).Delete(id)
}

// LowStock returns owned seeds below their threshold.
func LowStock(seeds []model.Seed) []model.Seed {
	var out []model.Seed
	for _, sd := range seeds {
		if sd.IsLowStock() {
			out = append(out, sd)
		}
	}
	return out
}
