package model

import (
	"strings"
	"time"
)

type Recurrence string

const (
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiWeekly Recurrence = "bi-weekly"
	RecurrenceMonthly  Recurrence = "monthly"
)

var Recurrences = []Recurrence{RecurrenceDaily, RecurrenceWeekly, RecurrenceBiWeekly, RecurrenceMonthly}

func (r Recurrence) Valid() bool {
	for _, known := range Recurrences {
		if r == known {
			return true
		}
	}
	return false
}

// ScheduledTask is a recurring task definition. Whether it is overdue is
// derived from the log history and never stored.
type ScheduledTask struct {
	ID         string     `json:"id"`
	TaskID     string     `json:"taskId"`
	Recurrence Recurrence `json:"recurrence"`
	Notes      string     `json:"notes"`
	StartDate  *time.Time `json:"startDate,omitempty"`
}

func (t ScheduledTask) Validate() error {
	v := NewValidation()
	if strings.TrimSpace(t.TaskID) == "" {
		v.Add("taskId", "Please select an activity.")
	}
	if !t.Recurrence.Valid() {
		v.Add("recurrence", "Please select a recurrence.")
	}
	return v.Err()
}
