// Package catalog joins inventory seeds with botanical reference data.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
)

// UnknownSeedName is shown for seeds whose database entry no longer exists.
const UnknownSeedName = "Unknown seed"

//go:embed seed_database.json
var builtinJSON []byte

var builtin = sync.OnceValues(func() ([]model.SeedDatabaseEntry, error) {
	var doc struct {
		Seeds []model.SeedDatabaseEntry `json:"seeds"`
	}
	if err := json.Unmarshal(builtinJSON, &doc); err != nil {
		return nil, fmt.Errorf("decode seed database: %w", err)
	}
	return doc.Seeds, nil
})

// Builtin returns the entries shipped with the application.
func Builtin() []model.SeedDatabaseEntry {
	entries, err := builtin()
	if err != nil {
		panic(err)
	}
	out := make([]model.SeedDatabaseEntry, len(entries))
	copy(out, entries)
	return out
}

// Catalog is the effective seed database: built-ins followed by custom entries.
type Catalog struct {
	entries []model.SeedDatabaseEntry
	byID    map[string]int
}

func New(custom []model.SeedDatabaseEntry) *Catalog {
	c := &Catalog{byID: make(map[string]int)}
	for _, e := range Builtin() {
		c.add(e)
	}
	for _, e := range custom {
		e.Custom = true
		c.add(e)
	}
	return c
}

// Load builds the catalog from the custom entries stored in s.
func Load(s store.Slots) *Catalog {
	return New(store.NewCatalogStore(s).List())
}

func (c *Catalog) add(e model.SeedDatabaseEntry) {
	if _, dup := c.byID[e.ID]; dup {
		return
	}
	c.byID[e.ID] = len(c.entries)
	c.entries = append(c.entries, e)
}

func (c *Catalog) Entries() []model.SeedDatabaseEntry {
	out := make([]model.SeedDatabaseEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Lookup(id string) (model.SeedDatabaseEntry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.SeedDatabaseEntry{}, false
	}
	return c.entries[i], true
}

// FindByName matches an entry by its name, or by "name (variety)" and
// "variety name" forms, case-insensitively.
func (c *Catalog) FindByName(name string) (model.SeedDatabaseEntry, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return model.SeedDatabaseEntry{}, false
	}
	for _, e := range c.entries {
		for _, candidate := range nameForms(e) {
			if candidate == want {
				return e, true
			}
		}
	}
	return model.SeedDatabaseEntry{}, false
}

func nameForms(e model.SeedDatabaseEntry) []string {
	name := strings.ToLower(e.Name)
	forms := []string{name}
	if e.Variety != "" {
		v := strings.ToLower(e.Variety)
		forms = append(forms, v+" "+name, name+" ("+v+")", name+" "+v)
	}
	return forms
}

// Details joins seed with its entry. A dangling reference yields
// UnknownSeedName and the seed's own fields.
func (c *Catalog) Details(seed model.Seed) model.SeedDetails {
	d := model.SeedDetails{Seed: seed, Name: UnknownSeedName, LowStock: seed.IsLowStock()}
	e, ok := c.Lookup(seed.SeedDetailsID)
	if !ok {
		return d
	}
	d.Name = e.Name
	d.Variety = e.Variety
	d.PlantingDepth = e.PlantingDepth
	d.Spacing = e.Spacing
	d.DaysToGermination = e.DaysToGermination
	d.DaysToHarvest = e.DaysToHarvest
	d.ImageHint = e.ImageHint
	return d
}

func (c *Catalog) DetailsAll(seeds []model.Seed) []model.SeedDetails {
	out := make([]model.SeedDetails, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, c.Details(s))
	}
	return out
}

// SeedName returns the display name for seedID among seeds, or
// UnknownSeedName.
func (c *Catalog) SeedName(seeds []model.Seed, seedID string) string {
	for _, s := range seeds {
		if s.ID == seedID {
			return c.Details(s).Name
		}
	}
	return UnknownSeedName
}
