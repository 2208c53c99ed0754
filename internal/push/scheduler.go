package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/schedule"
	"github.com/dukerupert/seedstudio/internal/store"
)

// sentRetention is how long sent-notification records are kept for dedupe.
const sentRetention = 30 * 24 * time.Hour

// Scheduler sends a daily overdue-task summary to every subscription.
type Scheduler struct {
	mu       sync.RWMutex
	sender   Sender
	push     *store.PushStore
	slots    store.Slots
	logger   *slog.Logger
	hour     int
	interval time.Duration
	now      func() time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler creates a notification scheduler that sends its summary
// during the given local hour.
func NewScheduler(sender Sender, pushStore *store.PushStore, slots store.Slots, hour int, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		sender:   sender,
		push:     pushStore,
		slots:    slots,
		logger:   logger.With("component", "push_scheduler"),
		hour:     hour,
		interval: 60 * time.Second,
		now:      time.Now,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick() {
	now := s.now()
	if now.Hour() != s.hour {
		return
	}
	if _, err := s.SendOverdueSummary(now); err != nil {
		s.logger.Error("overdue summary", "error", err)
	}
	if err := s.push.CleanupSent(now.Add(-sentRetention)); err != nil {
		s.logger.Warn("cleanup sent notifications", "error", err)
	}
}

// SendOverdueSummary pushes the list of overdue tasks once per calendar day.
// It reports whether a summary was sent.
func (s *Scheduler) SendOverdueSummary(now time.Time) (bool, error) {
	refID := "overdue-" + now.Format(time.DateOnly)
	sent, err := s.push.WasSent(model.NotifTypeOverdue, refID)
	if err != nil {
		return false, fmt.Errorf("check sent: %w", err)
	}
	if sent {
		return false, nil
	}

	tasks := store.NewScheduleStore(s.slots).List()
	logs := store.NewLogStore(s.slots).List()
	overdue := schedule.Overdue(tasks, logs, now)
	if len(overdue) == 0 {
		return false, nil
	}

	taskTypes := store.NewTaskStore(s.slots)
	var body string
	if len(overdue) == 1 {
		name := overdue[0].TaskID
		if tt, ok := taskTypes.Find(overdue[0].TaskID); ok {
			name = tt.Name
		}
		body = fmt.Sprintf("%s is overdue", name)
	} else {
		body = fmt.Sprintf("You have %d overdue garden tasks", len(overdue))
	}

	payload := Payload{
		Title: "Garden Tasks",
		Body:  body,
		URL:   "/schedule",
		Tag:   "overdue-daily",
	}
	if err := s.broadcast(payload); err != nil {
		return false, err
	}
	if err := s.push.RecordSent(model.NotifTypeOverdue, refID); err != nil {
		return true, fmt.Errorf("record sent: %w", err)
	}
	return true, nil
}

func (s *Scheduler) broadcast(payload Payload) error {
	subs, err := s.push.List()
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}
	for _, sub := range subs {
		if err := s.sender.Send(&sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := s.push.DeleteByEndpoint(sub.Endpoint); err != nil {
					s.logger.Warn("delete expired subscription", "error", err)
				}
			} else {
				s.logger.Warn("send push", "device", sub.DeviceName, "error", err)
			}
		}
	}
	return nil
}
