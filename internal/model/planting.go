package model

import (
	"strings"
	"time"
)

type PlantingStage string

const (
	StageSown         PlantingStage = "sown"
	StageGerminated   PlantingStage = "germinated"
	StagePottedUp     PlantingStage = "potted-up"
	StageHardeningOff PlantingStage = "hardening-off"
	StagePlantedOut   PlantingStage = "planted-out"
)

// Planting tracks one sowing batch through its milestones.
type Planting struct {
	ID               string     `json:"id"`
	SeedID           string     `json:"seedId"`
	SowingDate       time.Time  `json:"sowingDate"`
	GerminationDate  *time.Time `json:"germinationDate,omitempty"`
	PottingUpDate    *time.Time `json:"pottingUpDate,omitempty"`
	HardeningOffDate *time.Time `json:"hardeningOffDate,omitempty"`
	PlantingOutDate  *time.Time `json:"plantingOutDate,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// Stage returns the furthest milestone reached.
func (p Planting) Stage() PlantingStage {
	switch {
	case p.PlantingOutDate != nil:
		return StagePlantedOut
	case p.HardeningOffDate != nil:
		return StageHardeningOff
	case p.PottingUpDate != nil:
		return StagePottedUp
	case p.GerminationDate != nil:
		return StageGerminated
	default:
		return StageSown
	}
}

func (p Planting) Validate() error {
	v := NewValidation()
	if strings.TrimSpace(p.SeedID) == "" {
		v.Add("seedId", "Please select a seed.")
	}
	if p.SowingDate.IsZero() {
		v.Add("sowingDate", "Sowing date is required.")
	}
	milestones := []struct {
		field string
		date  *time.Time
	}{
		{"germinationDate", p.GerminationDate},
		{"pottingUpDate", p.PottingUpDate},
		{"hardeningOffDate", p.HardeningOffDate},
		{"plantingOutDate", p.PlantingOutDate},
	}
	for _, m := range milestones {
		if m.date != nil && !p.SowingDate.IsZero() && m.date.Before(p.SowingDate) {
			v.Add(m.field, "Milestone cannot be before the sowing date.")
		}
	}
	return v.Err()
}
