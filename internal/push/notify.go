package push

import (
	"time"

	"github.com/dukerupert/seedstudio/internal/model"
)

// Notify forwards low-stock alerts as push messages, at most once per
// seed per day. Other notification kinds are ignored. Delivery happens in
// the background so callers never wait on the push service.
func (s *Scheduler) Notify(n model.Notification) {
	if n.Kind != model.NotifyLowStock {
		return
	}
	go func() {
		if _, err := s.SendLowStock(n, s.now()); err != nil {
			s.logger.Warn("low stock push", "error", err)
		}
	}()
}

// SendLowStock pushes n unless the same alert already went out today.
func (s *Scheduler) SendLowStock(n model.Notification, now time.Time) (bool, error) {
	refID := "low-stock-" + now.Format(time.DateOnly) + "-" + n.Description
	sent, err := s.push.WasSent(model.NotifTypeLowStock, refID)
	if err != nil || sent {
		return false, err
	}
	if err := s.broadcast(Payload{
		Title: n.Title,
		Body:  n.Description,
		URL:   "/inventory",
		Tag:   "low-stock",
	}); err != nil {
		return false, err
	}
	return true, s.push.RecordSent(model.NotifTypeLowStock, refID)
}
