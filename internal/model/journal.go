package model

import (
	"strings"
	"time"
)

type JournalEntry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Content  string    `json:"content"`
	PhotoIDs []string  `json:"photoIds"`
}

func (j JournalEntry) Validate() error {
	v := NewValidation()
	if len([]rune(strings.TrimSpace(j.Title))) < 2 {
		v.Add("title", "Title must be at least 2 characters.")
	}
	if j.Date.IsZero() {
		v.Add("date", "A date is required.")
	}
	if strings.TrimSpace(j.Content) == "" {
		v.Add("content", "Content is required.")
	}
	return v.Err()
}
