package store

import "github.com/dukerupert/seedstudio/internal/model"

type ScheduleStore struct {
	collection[model.ScheduledTask]
}

func NewScheduleStore(s Slots) *ScheduleStore {
	return &ScheduleStore{collection[model.ScheduledTask]{
		slots: s,
		key:   KeyScheduledTasks,
		id:    func(v *model.ScheduledTask) *string { return &v.ID },
	}}
}
