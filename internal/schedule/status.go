package schedule

import (
	"sort"
	"time"

	"github.com/dukerupert/seedstudio/internal/model"
)

type TaskWithStatus struct {
	model.ScheduledTask
	Overdue   bool       `json:"overdue"`
	LastDone  *time.Time `json:"lastDone,omitempty"`
	NextDue   *time.Time `json:"nextDue,omitempty"`
	DaysSince *int       `json:"daysSince,omitempty"`
}

// ThresholdDays is the number of days a recurrence may go without a log
// before the task is overdue.
func ThresholdDays(r model.Recurrence) int {
	switch r {
	case model.RecurrenceDaily:
		return 1
	case model.RecurrenceWeekly:
		return 7
	case model.RecurrenceBiWeekly:
		return 14
	case model.RecurrenceMonthly:
		return 30
	default:
		return 0
	}
}

// LastLog returns the most recent log for taskID, or nil.
func LastLog(taskID string, logs []model.LogEntry) *model.LogEntry {
	var last *model.LogEntry
	for i := range logs {
		if logs[i].TaskID != taskID {
			continue
		}
		if last == nil || logs[i].Date.After(last.Date) {
			last = &logs[i]
		}
	}
	return last
}

// IsOverdue reports whether task needs doing at now. A task that was never
// logged is overdue only once its start date has passed.
func IsOverdue(task model.ScheduledTask, logs []model.LogEntry, now time.Time) bool {
	return Evaluate(task, logs, now).Overdue
}

// Evaluate computes the derived status of task.
func Evaluate(task model.ScheduledTask, logs []model.LogEntry, now time.Time) TaskWithStatus {
	ts := TaskWithStatus{ScheduledTask: task}
	threshold := ThresholdDays(task.Recurrence)

	last := LastLog(task.TaskID, logs)
	if last == nil {
		if task.StartDate != nil {
			start := *task.StartDate
			ts.NextDue = &start
			ts.Overdue = start.Before(now)
		}
		return ts
	}

	done := last.Date
	ts.LastDone = &done
	days := daysBetween(done, now)
	ts.DaysSince = &days
	next := startOfDay(done.In(now.Location())).AddDate(0, 0, threshold)
	ts.NextDue = &next
	ts.Overdue = days > threshold
	return ts
}

// EvaluateAll evaluates every task, overdue tasks first, otherwise keeping
// the stored order.
func EvaluateAll(tasks []model.ScheduledTask, logs []model.LogEntry, now time.Time) []TaskWithStatus {
	out := make([]TaskWithStatus, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Evaluate(t, logs, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Overdue && !out[j].Overdue
	})
	return out
}

// Overdue returns only the overdue tasks.
func Overdue(tasks []model.ScheduledTask, logs []model.LogEntry, now time.Time) []TaskWithStatus {
	var out []TaskWithStatus
	for _, t := range tasks {
		if ts := Evaluate(t, logs, now); ts.Overdue {
			out = append(out, ts)
		}
	}
	return out
}

// daysBetween counts calendar days from a to b in b's location.
func daysBetween(a, b time.Time) int {
	loc := b.Location()
	a = a.In(loc)
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
