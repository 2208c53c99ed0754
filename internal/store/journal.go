package store

import "github.com/dukerupert/seedstudio/internal/model"

type JournalStore struct {
	collection[model.JournalEntry]
}

func NewJournalStore(s Slots) *JournalStore {
	return &JournalStore{collection[model.JournalEntry]{
		slots: s,
		key:   KeyJournalEntries,
		id:    func(v *model.JournalEntry) *string { return &v.ID },
	}}
}

func (s *JournalStore) Create(j model.JournalEntry) (*model.JournalEntry, error) {
	if j.PhotoIDs == nil {
		j.PhotoIDs = []string{}
	}
	return s.collection.Create(j)
}
