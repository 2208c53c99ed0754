package model

import (
	"strings"
	"time"
)

// LogEntry records one garden activity.
type LogEntry struct {
	ID                 string    `json:"id"`
	TaskID             string    `json:"taskId"`
	Date               time.Time `json:"date"`
	Notes              string    `json:"notes"`
	PhotoID            string    `json:"photoId,omitempty"`
	SeedID             string    `json:"seedId,omitempty"`
	Quantity           *int      `json:"quantity,omitempty"`
	Weight             *float64  `json:"weight,omitempty"`
	Location           string    `json:"location,omitempty"`
	Substrate          string    `json:"substrate,omitempty"`
	QuantityGerminated *int      `json:"quantityGerminated,omitempty"`
	// StockTaken is how many packets the planting actually removed from the
	// seed after flooring. Nil on records that predate it.
	StockTaken *int `json:"stockTaken,omitempty"`
}

// PlantedQuantity returns the number of packets this entry consumes from
// inventory, or zero when it is not a planting against a seed.
func (l LogEntry) PlantedQuantity() int {
	if l.TaskID != TaskPlanting || l.SeedID == "" || l.Quantity == nil || *l.Quantity <= 0 {
		return 0
	}
	return *l.Quantity
}

// Taken returns the packets to give back when this planting is undone.
func (l LogEntry) Taken() int {
	if l.PlantedQuantity() == 0 {
		return 0
	}
	if l.StockTaken != nil {
		return *l.StockTaken
	}
	return l.PlantedQuantity()
}

func (l LogEntry) Validate() error {
	v := NewValidation()
	if strings.TrimSpace(l.TaskID) == "" {
		v.Add("taskId", "Please select an activity.")
	}
	if l.Date.IsZero() {
		v.Add("date", "A date is required.")
	}
	if l.Quantity != nil && *l.Quantity < 0 {
		v.Add("quantity", "Quantity must be a positive number.")
	}
	if l.Weight != nil && *l.Weight < 0 {
		v.Add("weight", "Weight must be a positive number.")
	}
	if l.QuantityGerminated != nil && *l.QuantityGerminated < 0 {
		v.Add("quantityGerminated", "Germinated quantity must be a positive number.")
	}
	return v.Err()
}
