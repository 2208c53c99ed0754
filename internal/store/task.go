package store

import "github.com/dukerupert/seedstudio/internal/model"

// TaskStore holds custom task types. Built-ins are never stored.
type TaskStore struct {
	collection[model.TaskType]
}

func NewTaskStore(s Slots) *TaskStore {
	return &TaskStore{collection[model.TaskType]{
		slots: s,
		key:   KeyCustomTasks,
		id:    func(v *model.TaskType) *string { return &v.ID },
	}}
}

// Create stores a custom task under a custom- prefixed id.
func (s *TaskStore) Create(t model.TaskType) (*model.TaskType, error) {
	t.ID = model.CustomTaskPrefix + NewID()
	if t.Icon == "" {
		t.Icon = model.DefaultCustomIcon
	}
	return s.collection.Create(t)
}

// All returns the effective catalog: built-ins followed by custom tasks.
func (s *TaskStore) All() []model.TaskType {
	return model.AllTasks(s.List())
}

// Find looks id up among built-in and custom tasks.
func (s *TaskStore) Find(id string) (model.TaskType, bool) {
	return model.FindTask(s.List(), id)
}
