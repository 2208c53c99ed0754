package store

import "github.com/dukerupert/seedstudio/internal/model"

type LogStore struct {
	collection[model.LogEntry]
}

func NewLogStore(s Slots) *LogStore {
	return &LogStore{collection[model.LogEntry]{
		slots: s,
		key:   KeyLogs,
		id:    func(v *model.LogEntry) *string { return &v.ID },
	}}
}

// Create adds l at the top of the log.
func (s *LogStore) Create(l model.LogEntry) (*model.LogEntry, error) {
	return s.collection.insert(l, true)
}

// ListByTask returns the logs recorded for taskID in stored order.
func (s *LogStore) ListByTask(taskID string) []model.LogEntry {
	var out []model.LogEntry
	for _, l := range s.List() {
		if l.TaskID == taskID {
			out = append(out, l)
		}
	}
	return out
}
