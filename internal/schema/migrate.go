package schema

import (
	"fmt"
	"log/slog"

	"github.com/dukerupert/seedstudio/internal/store"
)

// Result describes what Migrate did to the stored data.
type Result struct {
	From   int
	To     int
	Report Report
}

// Migrate upgrades the stored collections to CurrentVersion and sanitizes
// them, all in one transaction. A store without a version and without data
// is stamped as current.
func Migrate(slots *store.SlotStore, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var res Result
	err := slots.Tx(func(tx *store.Tx) error {
		doc := Document{}
		for _, key := range store.CollectionKeys {
			if v := store.Load[any](tx, key, nil); v != nil {
				doc[key] = v
			}
		}

		from, found := store.NewSettingsStore(tx).SchemaVersion()
		if !found && len(doc) > 0 {
			from = 0
		} else if !found {
			from = CurrentVersion
		}
		res.From = from

		to, err := Upgrade(doc, from)
		if err != nil {
			return err
		}
		res.To = to
		res.Report = Sanitize(doc)

		if from != to || res.Report.Changed() {
			for key, v := range doc {
				if err := tx.Set(key, v); err != nil {
					return err
				}
			}
		}
		if from != to || !found {
			if err := store.NewSettingsStore(tx).SetSchemaVersion(to); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("migrate data: %w", err)
	}

	if res.From != res.To {
		logger.Info("data upgraded", "from", res.From, "to", res.To)
	}
	if res.Report.Changed() {
		logger.Warn("data corrected", "dropped", res.Report.Dropped, "reset", res.Report.Reset)
	}
	return res, nil
}
