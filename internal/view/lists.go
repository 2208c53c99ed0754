package view

import (
	"cmp"

	"github.com/dukerupert/seedstudio/internal/model"
)

// Wishlist filters for the inventory list.
type Wishlist string

const (
	WishlistAll   Wishlist = "all"
	WishlistOwned Wishlist = "owned"
	WishlistOnly  Wishlist = "wishlist"
)

// FilterWishlist keeps owned seeds, wishlist seeds, or both.
func FilterWishlist(seeds []model.SeedDetails, w Wishlist) []model.SeedDetails {
	if w == "" || w == WishlistAll {
		return seeds
	}
	out := make([]model.SeedDetails, 0, len(seeds))
	for _, s := range seeds {
		if s.IsWishlist == (w == WishlistOnly) {
			out = append(out, s)
		}
	}
	return out
}

var Seeds = Fields[model.SeedDetails]{
	Text: func(s model.SeedDetails) []string {
		return []string{s.Name, s.Variety, s.Source, s.UserNotes}
	},
	Tags: func(s model.SeedDetails) []string { return s.Tags },
	Keys: map[string]func(a, b model.SeedDetails) int{
		"name":         func(a, b model.SeedDetails) int { return CompareText(a.Name, b.Name) },
		"source":       func(a, b model.SeedDetails) int { return CompareText(a.Source, b.Source) },
		"packetCount":  func(a, b model.SeedDetails) int { return cmp.Compare(a.PacketCount, b.PacketCount) },
		"purchaseYear": func(a, b model.SeedDetails) int { return CompareOptional(a.PurchaseYear, b.PurchaseYear) },
		"daysToHarvest": func(a, b model.SeedDetails) int {
			return CompareOptional(a.DaysToHarvest, b.DaysToHarvest)
		},
	},
}

// LogRow is a log entry with its display names resolved.
type LogRow struct {
	model.LogEntry
	TaskName string `json:"taskName"`
	SeedName string `json:"seedName,omitempty"`
}

var Logs = Fields[LogRow]{
	Text: func(l LogRow) []string {
		return []string{l.TaskName, l.Notes, l.SeedName, l.Location}
	},
	Keys: map[string]func(a, b LogRow) int{
		"date":     func(a, b LogRow) int { return CompareTime(a.Date, b.Date) },
		"task":     func(a, b LogRow) int { return CompareText(a.TaskName, b.TaskName) },
		"seed":     func(a, b LogRow) int { return CompareText(a.SeedName, b.SeedName) },
		"quantity": func(a, b LogRow) int { return CompareOptional(a.Quantity, b.Quantity) },
		"weight":   func(a, b LogRow) int { return CompareOptional(a.Weight, b.Weight) },
	},
}

var Journal = Fields[model.JournalEntry]{
	Text: func(j model.JournalEntry) []string { return []string{j.Title, j.Content} },
	Keys: map[string]func(a, b model.JournalEntry) int{
		"date":  func(a, b model.JournalEntry) int { return CompareTime(a.Date, b.Date) },
		"title": func(a, b model.JournalEntry) int { return CompareText(a.Title, b.Title) },
	},
}

// PlantingRow is a planting with its seed name and stage resolved.
type PlantingRow struct {
	model.Planting
	SeedName string              `json:"seedName"`
	Stage    model.PlantingStage `json:"stage"`
}

var Plantings = Fields[PlantingRow]{
	Text: func(p PlantingRow) []string { return []string{p.SeedName, p.Notes} },
	Keys: map[string]func(a, b PlantingRow) int{
		"sowingDate": func(a, b PlantingRow) int { return CompareTime(a.SowingDate, b.SowingDate) },
		"seed":       func(a, b PlantingRow) int { return CompareText(a.SeedName, b.SeedName) },
		"stage":      func(a, b PlantingRow) int { return cmp.Compare(stageRank(a.Stage), stageRank(b.Stage)) },
	},
}

func stageRank(s model.PlantingStage) int {
	switch s {
	case model.StageGerminated:
		return 1
	case model.StagePottedUp:
		return 2
	case model.StageHardeningOff:
		return 3
	case model.StagePlantedOut:
		return 4
	default:
		return 0
	}
}
