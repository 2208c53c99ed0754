package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/seedstudio/internal/model"
)

func TestBuiltinEntriesAreUnique(t *testing.T) {
	entries := Builtin()
	require.NotEmpty(t, entries)

	seen := make(map[string]bool)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Name)
		assert.False(t, seen[e.ID], "duplicate id %q", e.ID)
		seen[e.ID] = true
	}
}

func TestCustomEntriesFollowBuiltins(t *testing.T) {
	c := New([]model.SeedDatabaseEntry{{ID: "custom-1", Name: "Ground Cherry"}})
	entries := c.Entries()

	last := entries[len(entries)-1]
	assert.Equal(t, "custom-1", last.ID)
	assert.True(t, last.Custom)

	e, ok := c.Lookup("custom-1")
	require.True(t, ok)
	assert.Equal(t, "Ground Cherry", e.Name)
}

func TestFindByName(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name   string
		wantID string
		wantOK bool
	}{
		{"carrot", "db-nantes-carrot", true},
		{"Nantes Carrot", "db-nantes-carrot", true},
		{"Lettuce (Romaine)", "db-romaine-lettuce", true},
		{"  BASIL ", "db-genovese-basil", true},
		{"Dragon Fruit", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := c.FindByName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, e.ID)
		})
	}
}

func TestDetailsFallsBackToUnknown(t *testing.T) {
	c := New(nil)

	d := c.Details(model.Seed{ID: "s1", SeedDetailsID: "db-missing", PacketCount: 3})
	assert.Equal(t, UnknownSeedName, d.Name)
	assert.True(t, d.LowStock)

	d = c.Details(model.Seed{ID: "s2", SeedDetailsID: "db-cherry-tomato", PacketCount: 30})
	assert.Equal(t, "Cherry Tomato", d.Name)
	assert.Equal(t, "Sungold", d.Variety)
	assert.False(t, d.LowStock)
}
