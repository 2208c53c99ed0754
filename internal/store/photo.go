package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/seedstudio/internal/model"
)

// PhotoStore is the default blob store, one row per photo.
type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

func (s *PhotoStore) Put(ctx context.Context, p model.Photo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO photos (id, data_url) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data_url = excluded.data_url`,
		p.ID, p.DataURL,
	)
	if err != nil {
		return fmt.Errorf("put photo: %w", err)
	}
	return nil
}

// Get returns nil, nil when the photo does not exist.
func (s *PhotoStore) Get(ctx context.Context, id string) (*model.Photo, error) {
	var p model.Photo
	err := s.db.QueryRowContext(ctx, `SELECT id, data_url FROM photos WHERE id = ?`, id).Scan(&p.ID, &p.DataURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}
	return &p, nil
}

// Delete is a no-op for unknown ids.
func (s *PhotoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

func (s *PhotoStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return n, nil
}
