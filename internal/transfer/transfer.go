// Package transfer moves garden data in and out of the application: the JSON
// backup document, its encrypted archive form and a spreadsheet report.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/schema"
	"github.com/dukerupert/seedstudio/internal/store"
)

var (
	ErrInvalidDocument = errors.New("invalid backup document")
	ErrMissingKeys     = errors.New("file is missing required data")
)

// RequiredKeys must all be present in an imported document.
var RequiredKeys = []string{store.KeySeeds, store.KeyLogs, store.KeyScheduledTasks, store.KeyCustomTasks}

// MaxDocumentBytes bounds an imported document.
const MaxDocumentBytes = 32 << 20

// Document is the export file format.
type Document struct {
	Seeds          []model.Seed              `json:"seeds"`
	Logs           []model.LogEntry          `json:"logs"`
	ScheduledTasks []model.ScheduledTask     `json:"scheduledTasks"`
	CustomTasks    []model.TaskType          `json:"customTasks"`
	Plantings      []model.Planting          `json:"plantings"`
	JournalEntries []model.JournalEntry      `json:"journalEntries"`
	SeedDatabase   []model.SeedDatabaseEntry `json:"seedDatabase"`
	SchemaVersion  int                       `json:"schemaVersion"`
	ExportDate     time.Time                 `json:"exportDate"`
}

// Export snapshots every collection in s.
func Export(s store.Slots, now time.Time) Document {
	return Document{
		Seeds:          store.NewSeedStore(s).List(),
		Logs:           store.NewLogStore(s).List(),
		ScheduledTasks: store.NewScheduleStore(s).List(),
		CustomTasks:    store.NewTaskStore(s).List(),
		Plantings:      store.NewPlantingStore(s).List(),
		JournalEntries: store.NewJournalStore(s).List(),
		SeedDatabase:   store.NewCatalogStore(s).List(),
		SchemaVersion:  schema.CurrentVersion,
		ExportDate:     now.UTC(),
	}
}

// WriteJSON writes doc indented by two spaces.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// FileName is the download name for an export taken at now.
func FileName(now time.Time) string {
	return "seed-studio-backup-" + now.UTC().Format("2006-01-02") + ".json"
}

// Parsed is a validated, upgraded and sanitized import.
type Parsed struct {
	Document Document
	// Present lists the keys the file carried. Absent optional collections
	// are left alone on import.
	Present     map[string]bool
	FromVersion int
	Report      schema.Report
}

// Parse validates an export document without touching storage.
func Parse(r io.Reader) (*Parsed, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("%w: file too large", ErrInvalidDocument)
	}

	var raw schema.Document
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidDocument)
	}

	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingKeys, strings.Join(missing, ", "))
	}
	for _, k := range RequiredKeys {
		if _, ok := raw[k].([]any); !ok {
			return nil, fmt.Errorf("%w: %s is not a list", ErrInvalidDocument, k)
		}
	}

	from := 0
	if v, ok := raw[store.KeySchemaVersion].(float64); ok {
		from = int(v)
	}
	delete(raw, store.KeySchemaVersion)
	exported, _ := raw["exportDate"].(string)
	delete(raw, "exportDate")

	p := &Parsed{Present: make(map[string]bool), FromVersion: from}
	for k := range raw {
		p.Present[k] = true
	}

	if _, err := schema.Upgrade(raw, from); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	p.Report = schema.Sanitize(raw)
	// The upgrade may introduce custom seed database entries.
	if _, ok := raw[store.KeySeedDatabase]; ok {
		p.Present[store.KeySeedDatabase] = true
	}

	typed, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := json.Unmarshal(typed, &p.Document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	p.Document.SchemaVersion = schema.CurrentVersion
	if t, err := time.Parse(time.RFC3339Nano, exported); err == nil {
		p.Document.ExportDate = t
	}
	return p, nil
}

// Import replaces stored collections with the parsed document in one
// transaction. Nothing is written unless every step succeeds.
func Import(slots *store.SlotStore, p *Parsed) error {
	doc := p.Document
	err := slots.Tx(func(tx *store.Tx) error {
		if err := store.NewSeedStore(tx).ReplaceAll(doc.Seeds); err != nil {
			return err
		}
		if err := store.NewLogStore(tx).ReplaceAll(doc.Logs); err != nil {
			return err
		}
		if err := store.NewScheduleStore(tx).ReplaceAll(doc.ScheduledTasks); err != nil {
			return err
		}
		if err := store.NewTaskStore(tx).ReplaceAll(doc.CustomTasks); err != nil {
			return err
		}
		if p.Present[store.KeyPlantings] {
			if err := store.NewPlantingStore(tx).ReplaceAll(doc.Plantings); err != nil {
				return err
			}
		}
		if p.Present[store.KeyJournalEntries] {
			if err := store.NewJournalStore(tx).ReplaceAll(doc.JournalEntries); err != nil {
				return err
			}
		}
		if p.Present[store.KeySeedDatabase] {
			if err := store.NewCatalogStore(tx).ReplaceAll(doc.SeedDatabase); err != nil {
				return err
			}
		}
		return store.NewSettingsStore(tx).SetSchemaVersion(schema.CurrentVersion)
	})
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}
	return nil
}

// ImportFrom parses r and imports it.
func ImportFrom(slots *store.SlotStore, r io.Reader) (*Parsed, error) {
	p, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if err := Import(slots, p); err != nil {
		return nil, err
	}
	return p, nil
}
