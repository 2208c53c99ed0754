// Package schema upgrades stored and imported data to the current record
// shapes, one version step at a time.
package schema

import (
	"errors"
	"fmt"

	"github.com/dukerupert/seedstudio/internal/catalog"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
)

// CurrentVersion is the schema version written by this build.
const CurrentVersion = 3

var ErrFutureVersion = errors.New("data was written by a newer version")

// Document is the raw JSON form of the stored collections, keyed by slot.
type Document map[string]any

// step upgrades a document from version i to i+1.
type step func(Document) error

var steps = []step{
	addIDs,
	renameStock,
	splitSeedDetails,
}

// Upgrade runs every step from version from up to CurrentVersion in order.
func Upgrade(doc Document, from int) (int, error) {
	if from < 0 {
		from = 0
	}
	if from > CurrentVersion {
		return from, fmt.Errorf("upgrade from version %d: %w", from, ErrFutureVersion)
	}
	for v := from; v < CurrentVersion; v++ {
		if err := steps[v](doc); err != nil {
			return v, fmt.Errorf("upgrade to version %d: %w", v+1, err)
		}
	}
	return CurrentVersion, nil
}

// Records returns the objects stored under key, skipping anything that is
// not a JSON object.
func (d Document) Records(key string) []map[string]any {
	arr, _ := d[key].([]any)
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// v0 -> v1: every record gets an id; list fields default to empty.
func addIDs(doc Document) error {
	for _, key := range store.CollectionKeys {
		for _, r := range doc.Records(key) {
			if id, _ := r["id"].(string); id == "" {
				r["id"] = store.NewID()
			}
		}
	}
	for _, r := range doc.Records(store.KeySeeds) {
		if _, ok := r["tags"].([]any); !ok {
			r["tags"] = []any{}
		}
	}
	for _, r := range doc.Records(store.KeyJournalEntries) {
		if _, ok := r["photoIds"].([]any); !ok {
			r["photoIds"] = []any{}
		}
	}
	return nil
}

// v1 -> v2: seeds.stock becomes seeds.packetCount.
func renameStock(doc Document) error {
	for _, r := range doc.Records(store.KeySeeds) {
		stock, ok := r["stock"]
		if !ok {
			continue
		}
		if _, has := r["packetCount"]; !has {
			r["packetCount"] = stock
		}
		delete(r, "stock")
	}
	return nil
}

// botanicalFields moved from the seed onto its database entry in v3.
var botanicalFields = []string{"plantingDepth", "spacing", "daysToGermination", "daysToHarvest", "variety"}

// v2 -> v3: flat seeds are split into a Seed and a SeedDatabaseEntry.
func splitSeedDetails(doc Document) error {
	custom := make([]model.SeedDatabaseEntry, 0)
	for _, r := range doc.Records(store.KeySeedDatabase) {
		name, _ := r["name"].(string)
		id, _ := r["id"].(string)
		custom = append(custom, model.SeedDatabaseEntry{ID: id, Name: name})
	}
	cat := catalog.New(custom)

	entries, _ := doc[store.KeySeedDatabase].([]any)
	for _, r := range doc.Records(store.KeySeeds) {
		if notes, ok := r["notes"]; ok {
			if _, has := r["userNotes"]; !has {
				r["userNotes"] = notes
			}
			delete(r, "notes")
		}

		if id, _ := r["seedDetailsId"].(string); id != "" {
			stripFlatFields(r)
			continue
		}

		name, _ := r["name"].(string)
		if e, ok := cat.FindByName(name); ok {
			r["seedDetailsId"] = e.ID
			stripFlatFields(r)
			continue
		}

		entry := map[string]any{
			"id":     "custom-db-" + store.NewID(),
			"name":   name,
			"custom": true,
		}
		if entry["name"] == "" {
			entry["name"] = catalog.UnknownSeedName
		}
		for _, f := range botanicalFields {
			if v, ok := r[f]; ok {
				entry[f] = v
			}
		}
		if hint, ok := r["imageHint"].(string); ok {
			entry["imageHint"] = hint
		}
		entries = append(entries, entry)
		r["seedDetailsId"] = entry["id"]
		custom = append(custom, model.SeedDatabaseEntry{ID: entry["id"].(string), Name: name})
		cat = catalog.New(custom)
		stripFlatFields(r)
	}
	if entries == nil {
		entries = []any{}
	}
	doc[store.KeySeedDatabase] = entries
	return nil
}

func stripFlatFields(r map[string]any) {
	delete(r, "name")
	delete(r, "imageId")
	delete(r, "imageHint")
	for _, f := range botanicalFields {
		delete(r, f)
	}
}
