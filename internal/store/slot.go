package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when a record id is not present in its slot.
	ErrNotFound = errors.New("not found")
	// ErrUnreadable is returned by record writes whose slot holds data that
	// cannot be decoded. Only a whole-slot replace may overwrite it.
	ErrUnreadable = errors.New("stored data unreadable")
)

// Slots reads and writes named JSON values. Both *SlotStore and *Tx satisfy it.
type Slots interface {
	Get(key string, dst any) (bool, error)
	Set(key string, v any) error

	atomically(fn func(Slots) error) error
	warn(key string, err error)
}

// SlotStore keeps one JSON document per named slot in the slots table.
// Writes are serialized; Tx groups several writes into one transaction.
type SlotStore struct {
	db     *sql.DB
	logger *slog.Logger

	mu     sync.Mutex
	hookMu sync.RWMutex
	onWarn []func(key string, err error)
}

func NewSlotStore(db *sql.DB, logger *slog.Logger) *SlotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlotStore{db: db, logger: logger.With("component", "slots")}
}

// OnWarning registers fn to be called whenever a slot could not be read and
// its default was used instead.
func (s *SlotStore) OnWarning(fn func(key string, err error)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.onWarn = append(s.onWarn, fn)
}

// Get decodes the slot into dst. It reports false when the slot is absent.
func (s *SlotStore) Get(key string, dst any) (bool, error) {
	return getSlot(s.db, key, dst)
}

// Set encodes v and writes it to the slot.
func (s *SlotStore) Set(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setSlot(s.db, key, v)
}

// Delete removes the slot entirely.
func (s *SlotStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}

// Keys lists the slots currently stored.
func (s *SlotStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan slot key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Tx runs fn inside a single database transaction. The transaction commits
// only if fn returns nil. fn must not call methods on s itself.
func (s *SlotStore) Tx(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx, store: s}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *SlotStore) atomically(fn func(Slots) error) error {
	return s.Tx(func(tx *Tx) error { return fn(tx) })
}

func (s *SlotStore) warn(key string, err error) {
	s.logger.Warn("slot unreadable, using default", "key", key, "error", err)

	s.hookMu.RLock()
	hooks := append([]func(string, error){}, s.onWarn...)
	s.hookMu.RUnlock()
	for _, fn := range hooks {
		fn(key, err)
	}
}

// Tx is a set of slot reads and writes that commit together.
type Tx struct {
	tx    *sql.Tx
	store *SlotStore
}

func (t *Tx) Get(key string, dst any) (bool, error) {
	return getSlot(t.tx, key, dst)
}

func (t *Tx) Set(key string, v any) error {
	return setSlot(t.tx, key, v)
}

func (t *Tx) Delete(key string) error {
	if _, err := t.tx.Exec(`DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}

func (t *Tx) atomically(fn func(Slots) error) error {
	return fn(t)
}

func (t *Tx) warn(key string, err error) {
	t.store.warn(key, err)
}

// Load reads key into a fresh T. A missing slot yields def silently; an
// unreadable one yields def and raises a warning.
func Load[T any](s Slots, key string, def T) T {
	var v T
	found, err := s.Get(key, &v)
	if err != nil {
		s.warn(key, err)
		return def
	}
	if !found {
		return def
	}
	return v
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func getSlot(q querier, key string, dst any) (bool, error) {
	var raw string
	err := q.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get slot %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode slot %q: %w", key, err)
	}
	return true, nil
}

func setSlot(q querier, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", key, err)
	}
	_, err = q.Exec(
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set slot %q: %w", key, err)
	}
	return nil
}
