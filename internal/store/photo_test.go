package store

import (
	"context"
	"testing"

	"github.com/dukerupert/seedstudio/internal/database"
	"github.com/dukerupert/seedstudio/internal/model"
)

func TestPhotoStore(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ps := NewPhotoStore(db)
	ctx := context.Background()

	if err := ps.Put(ctx, model.Photo{ID: "ph1", DataURL: "data:image/png;base64,AAAA"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := ps.Get(ctx, "ph1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.DataURL != "data:image/png;base64,AAAA" {
		t.Errorf("got = %+v", got)
	}

	if err := ps.Delete(ctx, "ph1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = ps.Get(ctx, "ph1")
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
	if err := ps.Delete(ctx, "ph1"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}
