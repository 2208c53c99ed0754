// Package view derives filtered and sorted projections of stored records.
// Projections are recomputed per request and never persisted.
package view

import (
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle returns the sort state after the user picks key: the same key flips
// direction, a new key starts ascending.
func (s Sort) Toggle(key string) Sort {
	if s.Key == key {
		if s.Direction == Asc {
			return Sort{Key: key, Direction: Desc}
		}
		return Sort{Key: key, Direction: Asc}
	}
	return Sort{Key: key, Direction: Asc}
}

// Query is the user's filter and sort selection for one list.
type Query struct {
	Search string
	Tags   []string
	Sort   Sort
}

// Fields describes how records of type T are searched and compared.
type Fields[T any] struct {
	// Text returns the fields matched by Query.Search.
	Text func(T) []string
	// Tags returns the record's tags. Nil means the type has none.
	Tags func(T) []string
	Keys map[string]func(a, b T) int
}

// Project filters items and sorts them stably. The input is not modified.
func Project[T any](items []T, f Fields[T], q Query) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, f, q) {
			out = append(out, item)
		}
	}

	if q.Sort.Key == "" {
		return out, nil
	}
	less, ok := f.Keys[q.Sort.Key]
	if !ok {
		return nil, fmt.Errorf("sort by %q: %w", q.Sort.Key, ErrUnknownSortKey)
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if q.Sort.Direction == Desc {
			return less(b, a)
		}
		return less(a, b)
	})
	return out, nil
}

// Matches reports whether item passes the search and tag filters.
func Matches[T any](item T, f Fields[T], q Query) bool {
	if needle := strings.ToLower(strings.TrimSpace(q.Search)); needle != "" {
		if f.Text == nil {
			return false
		}
		found := false
		for _, field := range f.Text(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(q.Tags) > 0 {
		if f.Tags == nil {
			return false
		}
		have := make(map[string]bool)
		for _, t := range f.Tags(item) {
			have[strings.ToLower(t)] = true
		}
		for _, want := range q.Tags {
			if !have[strings.ToLower(want)] {
				return false
			}
		}
	}
	return true
}

// ParseQuery reads q, tag, sort and dir parameters. Tags may repeat or be
// comma separated.
func ParseQuery(v url.Values, def Sort) Query {
	q := Query{Search: v.Get("q"), Sort: def}
	for _, raw := range v["tag"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.Tags = append(q.Tags, t)
			}
		}
	}
	if key := v.Get("sort"); key != "" {
		q.Sort = Sort{Key: key, Direction: Asc}
	}
	switch Direction(strings.ToLower(v.Get("dir"))) {
	case Asc:
		q.Sort.Direction = Asc
	case Desc:
		q.Sort.Direction = Desc
	}
	return q
}

// CompareText orders strings case-insensitively.
func CompareText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// CompareOptional orders nil before any value.
func CompareOptional[N cmp.Ordered](a, b *N) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

func CompareTime(a, b time.Time) int {
	return a.Compare(b)
}
