package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
)

// Report counts the corrections made by Sanitize.
type Report struct {
	Dropped int
	Reset   int
}

func (r Report) Changed() bool {
	return r.Dropped > 0 || r.Reset > 0
}

func (r Report) String() string {
	var parts []string
	if r.Dropped > 0 {
		parts = append(parts, fmt.Sprintf("%d invalid record(s) removed", r.Dropped))
	}
	if r.Reset > 0 {
		parts = append(parts, fmt.Sprintf("%d invalid value(s) reset", r.Reset))
	}
	if len(parts) == 0 {
		return "no corrections"
	}
	return strings.Join(parts, ", ")
}

type shape struct {
	counts        []string // non-negative numbers
	requiredDates []string
	optionalDates []string
	lists         []string
	// texts must be strings; a missing or mistyped value gets the default.
	texts map[string]string
}

var shapes = map[string]shape{
	store.KeySeeds: {
		counts: []string{"packetCount", "seedsPerPacket", "lowStockThreshold"},
		lists:  []string{"tags"},
	},
	store.KeyLogs: {
		counts:        []string{"quantity", "weight", "quantityGerminated", "stockTaken"},
		requiredDates: []string{"date"},
	},
	store.KeyScheduledTasks: {
		optionalDates: []string{"startDate"},
	},
	store.KeyCustomTasks: {
		texts: map[string]string{"name": "", "icon": model.DefaultCustomIcon},
	},
	store.KeyPlantings: {
		requiredDates: []string{"sowingDate"},
		optionalDates: []string{"germinationDate", "pottingUpDate", "hardeningOffDate", "plantingOutDate"},
	},
	store.KeyJournalEntries: {
		requiredDates: []string{"date"},
		lists:         []string{"photoIds"},
	},
	store.KeySeedDatabase: {
		counts: []string{"daysToGermination", "daysToHarvest"},
	},
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Sanitize drops structurally invalid records and resets invalid values in
// place. Seeds always end up with a numeric packetCount.
func Sanitize(doc Document) Report {
	var rep Report
	for key, sh := range shapes {
		raw, present := doc[key]
		if !present || raw == nil {
			continue
		}
		arr, ok := raw.([]any)
		if !ok {
			doc[key] = []any{}
			rep.Reset++
			continue
		}

		kept := make([]any, 0, len(arr))
		for _, v := range arr {
			r, ok := v.(map[string]any)
			if !ok {
				rep.Dropped++
				continue
			}
			if id, _ := r["id"].(string); id == "" {
				rep.Dropped++
				continue
			}
			if !sanitizeDates(r, sh, &rep) {
				rep.Dropped++
				continue
			}
			sanitizeCounts(r, sh, &rep)
			sanitizeTexts(r, sh, &rep)
			for _, f := range sh.lists {
				if _, ok := r[f].([]any); !ok {
					if _, present := r[f]; present {
						rep.Reset++
					}
					r[f] = []any{}
				}
			}
			kept = append(kept, r)
		}
		doc[key] = kept
	}

	for _, r := range doc.Records(store.KeySeeds) {
		if _, ok := r["packetCount"].(float64); !ok {
			r["packetCount"] = float64(0)
			rep.Reset++
		}
	}
	return rep
}

func sanitizeCounts(r map[string]any, sh shape, rep *Report) {
	for _, f := range sh.counts {
		v, present := r[f]
		if !present || v == nil {
			continue
		}
		n, ok := v.(float64)
		if !ok {
			delete(r, f)
			rep.Reset++
			continue
		}
		if n < 0 {
			r[f] = float64(0)
			rep.Reset++
		}
	}
}

func sanitizeTexts(r map[string]any, sh shape, rep *Report) {
	for f, def := range sh.texts {
		v, present := r[f]
		if _, ok := v.(string); ok {
			continue
		}
		if present && v != nil {
			rep.Reset++
		}
		r[f] = def
	}
}

// sanitizeDates normalizes date strings to RFC 3339. It reports false when a
// required date is missing or unparseable.
func sanitizeDates(r map[string]any, sh shape, rep *Report) bool {
	for _, f := range sh.requiredDates {
		s, _ := r[f].(string)
		norm, ok := normalizeDate(s)
		if !ok {
			return false
		}
		r[f] = norm
	}
	for _, f := range sh.optionalDates {
		v, present := r[f]
		if !present || v == nil {
			continue
		}
		s, _ := v.(string)
		norm, ok := normalizeDate(s)
		if !ok {
			delete(r, f)
			rep.Reset++
			continue
		}
		r[f] = norm
	}
	return true
}

func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Format(time.RFC3339Nano) == s {
				return s, true
			}
			return t.UTC().Format(time.RFC3339Nano), true
		}
	}
	return "", false
}
