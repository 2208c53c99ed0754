package store

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a time-ordered record id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// collection is a record array stored under one slot key.
type collection[T any] struct {
	slots Slots
	key   string
	id    func(*T) *string
}

// List returns every record, or an empty slice when the slot is missing or
// unreadable.
func (c collection[T]) List() []T {
	items := Load(c.slots, c.key, []T{})
	if items == nil {
		items = []T{}
	}
	return items
}

// forWrite reads the slot strictly, so a write never replaces records it
// could not see.
func (c collection[T]) forWrite() ([]T, error) {
	var items []T
	if _, err := c.slots.Get(c.key, &items); err != nil {
		c.slots.warn(c.key, err)
		return nil, fmt.Errorf("write %s: %w: %w", c.key, ErrUnreadable, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// GetByID returns nil, nil when no record has the id.
func (c collection[T]) GetByID(id string) (*T, error) {
	for _, item := range c.List() {
		if *c.id(&item) == id {
			return &item, nil
		}
	}
	return nil, nil
}

// Create appends item, assigning an id when it has none.
func (c collection[T]) Create(item T) (*T, error) {
	return c.insert(item, false)
}

func (c collection[T]) insert(item T, front bool) (*T, error) {
	if *c.id(&item) == "" {
		*c.id(&item) = NewID()
	}
	err := c.slots.atomically(func(s Slots) error {
		items, err := c.in(s).forWrite()
		if err != nil {
			return err
		}
		for i := range items {
			if *c.id(&items[i]) == *c.id(&item) {
				return fmt.Errorf("create %s record %q: duplicate id", c.key, *c.id(&item))
			}
		}
		if front {
			return s.Set(c.key, append([]T{item}, items...))
		}
		return s.Set(c.key, append(items, item))
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces the record with the same id in place.
func (c collection[T]) Update(item T) error {
	return c.slots.atomically(func(s Slots) error {
		items, err := c.in(s).forWrite()
		if err != nil {
			return err
		}
		for i := range items {
			if *c.id(&items[i]) == *c.id(&item) {
				items[i] = item
				return s.Set(c.key, items)
			}
		}
		return fmt.Errorf("update %s record %q: %w", c.key, *c.id(&item), ErrNotFound)
	})
}

// Delete removes exactly the record with id.
func (c collection[T]) Delete(id string) error {
	return c.slots.atomically(func(s Slots) error {
		items, err := c.in(s).forWrite()
		if err != nil {
			return err
		}
		out := items[:0]
		found := false
		for _, item := range items {
			if *c.id(&item) == id {
				found = true
				continue
			}
			out = append(out, item)
		}
		if !found {
			return fmt.Errorf("delete %s record %q: %w", c.key, id, ErrNotFound)
		}
		return s.Set(c.key, out)
	})
}

// ReplaceAll overwrites the whole slot.
func (c collection[T]) ReplaceAll(items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.slots.Set(c.key, items)
}

func (c collection[T]) in(s Slots) collection[T] {
	c.slots = s
	return c
}
