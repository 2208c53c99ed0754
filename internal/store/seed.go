package store

import "github.com/dukerupert/seedstudio/internal/model"

type SeedStore struct {
	collection[model.Seed]
}

func NewSeedStore(s Slots) *SeedStore {
	return &SeedStore{collection[model.Seed]{
		slots: s,
		key:   KeySeeds,
		id:    func(v *model.Seed) *string { return &v.ID },
	}}
}

// Create normalizes the seed before storing it.
func (s *SeedStore) Create(seed model.Seed) (*model.Seed, error) {
	seed.Normalize()
	return s.collection.Create(seed)
}

func (s *SeedStore) Update(seed model.Seed) error {
	seed.Normalize()
	return s.collection.Update(seed)
}

// CatalogStore holds the user's custom seed database entries.
type CatalogStore struct {
	collection[model.SeedDatabaseEntry]
}

func NewCatalogStore(s Slots) *CatalogStore {
	return &CatalogStore{collection[model.SeedDatabaseEntry]{
		slots: s,
		key:   KeySeedDatabase,
		id:    func(v *model.SeedDatabaseEntry) *string { return &v.ID },
	}}
}

func (s *CatalogStore) Create(e model.SeedDatabaseEntry) (*model.SeedDatabaseEntry, error) {
	e.Custom = true
	return s.collection.Create(e)
}

func (s *CatalogStore) Update(e model.SeedDatabaseEntry) error {
	e.Custom = true
	return s.collection.Update(e)
}
