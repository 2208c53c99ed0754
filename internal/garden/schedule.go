package garden

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
)

// SaveScheduledTask creates or updates a recurring task.
func (s *Service) SaveScheduledTask(ctx context.Context, t model.ScheduledTask) (*model.ScheduledTask, error) {
	t.Notes = strings.TrimSpace(t.Notes)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if _, ok := store.NewTaskStore(s.slots).Find(t.TaskID); !ok {
		return nil, fmt.Errorf("schedule task %q: %w", t.TaskID, ErrUnknownTask)
	}

	tasks := store.NewScheduleStore(s.slots)
	if t.ID != "" {
		if err := tasks.Update(t); err == nil {
			return &t, nil
		} else if !isNotFound(err) {
			return nil, err
		}
	}
	return tasks.Create(t)
}

// CompleteScheduledTask logs the task's activity as done now.
func (s *Service) CompleteScheduledTask(ctx context.Context, id, notes string) (*model.LogEntry, error) {
	task, err := store.NewScheduleStore(s.slots).GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("complete scheduled task %q: %w", id, store.ErrNotFound)
	}
	if strings.TrimSpace(notes) == "" {
		notes = task.Notes
	}
	return s.RecordLog(ctx, model.LogEntry{
		TaskID: task.TaskID,
		Date:   s.now().UTC(),
		Notes:  notes,
	})
}
