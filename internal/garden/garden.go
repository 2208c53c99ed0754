// Package garden implements the operations that touch more than one
// collection: stock bookkeeping, planting logs, completions and photo
// cleanup. Every multi-slot write runs in one transaction and notifications
// go out only after it commits.
package garden

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/seedstudio/internal/catalog"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/photo"
	"github.com/dukerupert/seedstudio/internal/store"
)

var (
	ErrUnknownTask = errors.New("unknown task")
	ErrUnknownSeed = errors.New("unknown seed")
)

// Policy holds the configurable inventory rules.
type Policy struct {
	// AllowNegativeStock lets plantings drive packetCount below zero.
	AllowNegativeStock bool
}

type Service struct {
	slots    *store.SlotStore
	photos   photo.Store
	notifier Notifier
	policy   Policy
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(slots *store.SlotStore, photos photo.Store, notifier Notifier, policy Policy, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		slots:    slots,
		photos:   photos,
		notifier: notifier,
		policy:   policy,
		logger:   logger.With("component", "garden"),
		now:      time.Now,
	}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Policy() Policy {
	return s.policy
}

// StockChange is the outcome of one stock adjustment.
type StockChange struct {
	SeedID          string `json:"seedId"`
	Name            string `json:"name"`
	Before          int    `json:"before"`
	After           int    `json:"after"`
	Threshold       int    `json:"threshold"`
	CrossedLowStock bool   `json:"crossedLowStock"`
}

// AdjustStock adds delta to the seed's packet count within tx, flooring at
// zero unless the policy allows negative stock. Wishlist seeds are left
// untouched.
func (s *Service) AdjustStock(tx store.Slots, seedID string, delta int) (*StockChange, error) {
	restore, take := delta, 0
	if delta < 0 {
		restore, take = 0, -delta
	}
	change, _, err := s.moveStock(tx, seedID, restore, take)
	return change, err
}

// moveStock gives back restore packets and then removes take, flooring once
// at the end. It returns how many of the restored-plus-current packets were
// actually removed.
func (s *Service) moveStock(tx store.Slots, seedID string, restore, take int) (*StockChange, int, error) {
	seeds := store.NewSeedStore(tx)
	seed, err := seeds.GetByID(seedID)
	if err != nil {
		return nil, 0, err
	}
	if seed == nil {
		return nil, 0, fmt.Errorf("adjust stock of %q: %w", seedID, ErrUnknownSeed)
	}

	change := &StockChange{
		SeedID:    seed.ID,
		Name:      catalog.Load(tx).Details(*seed).Name,
		Before:    seed.PacketCount,
		After:     seed.PacketCount,
		Threshold: seed.Threshold(),
	}
	if seed.IsWishlist {
		return change, 0, nil
	}
	if restore == take {
		return change, take, nil
	}

	base := seed.PacketCount + restore
	after := base - take
	if after < 0 && !s.policy.AllowNegativeStock {
		after = 0
	}
	seed.PacketCount = after
	if err := seeds.Update(*seed); err != nil {
		return nil, 0, fmt.Errorf("adjust stock of %q: %w", seedID, err)
	}

	change.After = after
	change.CrossedLowStock = change.Before >= change.Threshold && after < change.Threshold
	return change, base - after, nil
}

// AdjustSeedStock applies delta to one seed in its own transaction.
func (s *Service) AdjustSeedStock(ctx context.Context, seedID string, delta int) (*StockChange, error) {
	var change *StockChange
	err := s.slots.Tx(func(tx *store.Tx) error {
		var err error
		change, err = s.AdjustStock(tx, seedID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.announce([]*StockChange{change})
	return change, nil
}

func (s *Service) announce(changes []*StockChange) {
	for _, c := range changes {
		if c == nil || !c.CrossedLowStock {
			continue
		}
		s.logger.Info("seed stock low", "seed_id", c.SeedID, "packets", c.After, "threshold", c.Threshold)
		s.notifier.Notify(model.Notification{
			Kind:        model.NotifyLowStock,
			Title:       "Low Stock Alert",
			Description: fmt.Sprintf("%s is running low.", c.Name),
		})
	}
}

// deletePhotos removes blobs, stopping at the first failure.
func (s *Service) deletePhotos(ctx context.Context, ids ...string) error {
	if s.photos == nil {
		return nil
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := s.photos.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete photo %q: %w", id, err)
		}
	}
	return nil
}

// deletePhotosQuietly is used after a commit, when failure only leaks a blob.
func (s *Service) deletePhotosQuietly(ctx context.Context, ids ...string) {
	if err := s.deletePhotos(ctx, ids...); err != nil {
		s.logger.Warn("orphaned photo", "error", err)
	}
}

func sowedNote(name, notes string) string {
	if name == "" {
		name = "seed"
	}
	return strings.TrimSpace(fmt.Sprintf("Sowed %s. %s", name, notes))
}
