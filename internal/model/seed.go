package model

import "strings"

// DefaultLowStockThreshold applies to seeds that carry no threshold of their own.
const DefaultLowStockThreshold = 10

// Seed is one inventory item owned (or wished for) by the gardener. Botanical
// details live on the SeedDatabaseEntry referenced by SeedDetailsID.
type Seed struct {
	ID                string   `json:"id"`
	SeedDetailsID     string   `json:"seedDetailsId"`
	Source            string   `json:"source"`
	PacketCount       int      `json:"packetCount"`
	SeedsPerPacket    *int     `json:"seedsPerPacket,omitempty"`
	LowStockThreshold *int     `json:"lowStockThreshold,omitempty"`
	IsWishlist        bool     `json:"isWishlist,omitempty"`
	UserNotes         string   `json:"userNotes,omitempty"`
	Tags              []string `json:"tags"`
	PurchaseYear      *int     `json:"purchaseYear,omitempty"`
}

// Threshold returns the packet count below which the seed counts as low stock.
func (s Seed) Threshold() int {
	if s.LowStockThreshold != nil {
		return *s.LowStockThreshold
	}
	return DefaultLowStockThreshold
}

// IsLowStock reports whether an owned seed has dropped below its threshold.
// Wishlist items never do.
func (s Seed) IsLowStock() bool {
	return !s.IsWishlist && s.PacketCount < s.Threshold()
}

// Normalize enforces the wishlist/stock exclusivity and tidies tags.
func (s *Seed) Normalize() {
	s.Source = strings.TrimSpace(s.Source)
	s.UserNotes = strings.TrimSpace(s.UserNotes)
	if s.IsWishlist {
		s.PacketCount = 0
	}
	s.Tags = NormalizeTags(s.Tags)
}

// Validate checks the fields a user may edit.
func (s Seed) Validate() error {
	v := NewValidation()
	if strings.TrimSpace(s.SeedDetailsID) == "" {
		v.Add("seedDetailsId", "Please select a seed variety.")
	}
	if len([]rune(strings.TrimSpace(s.Source))) < 2 {
		v.Add("source", "Source must be at least 2 characters.")
	}
	if s.PacketCount < 0 {
		v.Add("packetCount", "Packet count must be a positive number.")
	}
	if s.SeedsPerPacket != nil && *s.SeedsPerPacket < 0 {
		v.Add("seedsPerPacket", "Seeds per packet must be a positive number.")
	}
	if s.LowStockThreshold != nil && *s.LowStockThreshold < 0 {
		v.Add("lowStockThreshold", "Low stock threshold must be a positive number.")
	}
	if s.PurchaseYear != nil && (*s.PurchaseYear < 1900 || *s.PurchaseYear > 2200) {
		v.Add("purchaseYear", "Purchase year is not a valid year.")
	}
	return v.Err()
}

// SeedDatabaseEntry is shared botanical reference data. Built-in entries ship
// with the application; custom entries are created by the user.
type SeedDatabaseEntry struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Variety           string `json:"variety,omitempty"`
	PlantingDepth     string `json:"plantingDepth,omitempty"`
	Spacing           string `json:"spacing,omitempty"`
	DaysToGermination *int   `json:"daysToGermination,omitempty"`
	DaysToHarvest     *int   `json:"daysToHarvest,omitempty"`
	ImageHint         string `json:"imageHint,omitempty"`
	Custom            bool   `json:"custom,omitempty"`
}

func (e SeedDatabaseEntry) Validate() error {
	v := NewValidation()
	if len([]rune(strings.TrimSpace(e.Name))) < 2 {
		v.Add("name", "Name must be at least 2 characters.")
	}
	if e.DaysToGermination != nil && *e.DaysToGermination < 0 {
		v.Add("daysToGermination", "Days to germination must be a positive number.")
	}
	if e.DaysToHarvest != nil && *e.DaysToHarvest < 0 {
		v.Add("daysToHarvest", "Days to harvest must be a positive number.")
	}
	return v.Err()
}

// SeedDetails is the render-time join of a Seed with its database entry.
type SeedDetails struct {
	Seed
	Name              string `json:"name"`
	Variety           string `json:"variety,omitempty"`
	PlantingDepth     string `json:"plantingDepth,omitempty"`
	Spacing           string `json:"spacing,omitempty"`
	DaysToGermination *int   `json:"daysToGermination,omitempty"`
	DaysToHarvest     *int   `json:"daysToHarvest,omitempty"`
	ImageHint         string `json:"imageHint,omitempty"`
	LowStock          bool   `json:"lowStock"`
}

// NormalizeTags trims, drops empties and de-duplicates case-insensitively,
// keeping first-seen order. It never returns nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		k := strings.ToLower(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}
