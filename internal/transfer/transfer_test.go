package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/seedstudio/internal/database"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/schema"
	"github.com/dukerupert/seedstudio/internal/store"
)

func setupSlots(t *testing.T) *store.SlotStore {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewSlotStore(db, nil)
}

func sampleSlots(t *testing.T) *store.SlotStore {
	t.Helper()
	s := setupSlots(t)
	date := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	q := 2
	require.NoError(t, store.NewSeedStore(s).ReplaceAll([]model.Seed{{ID: "s1", SeedDetailsID: "db-cherry-tomato", Source: "Shop", PacketCount: 4, Tags: []string{"red"}}}))
	require.NoError(t, store.NewLogStore(s).ReplaceAll([]model.LogEntry{{ID: "l1", TaskID: model.TaskPlanting, SeedID: "s1", Quantity: &q, Date: date, Notes: "trays"}}))
	require.NoError(t, store.NewScheduleStore(s).ReplaceAll([]model.ScheduledTask{{ID: "t1", TaskID: model.TaskWatering, Recurrence: model.RecurrenceDaily}}))
	require.NoError(t, store.NewTaskStore(s).ReplaceAll([]model.TaskType{{ID: "custom-1", Name: "Mulching", Icon: "leaf"}}))
	require.NoError(t, store.NewPlantingStore(s).ReplaceAll([]model.Planting{{ID: "p1", SeedID: "s1", SowingDate: date}}))
	return s
}

func TestFileName(t *testing.T) {
	got := FileName(time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "seed-studio-backup-2026-10-19.json", got)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := sampleSlots(t)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Export(src, now)))
	assert.Contains(t, buf.String(), "\n  \"seeds\": [")

	dst := setupSlots(t)
	p, err := ImportFrom(dst, &buf)
	require.NoError(t, err)
	assert.False(t, p.Report.Changed())
	assert.Equal(t, schema.CurrentVersion, p.FromVersion)

	assert.Equal(t, store.NewSeedStore(src).List(), store.NewSeedStore(dst).List())
	assert.Equal(t, store.NewLogStore(src).List(), store.NewLogStore(dst).List())
	assert.Equal(t, store.NewScheduleStore(src).List(), store.NewScheduleStore(dst).List())
	assert.Equal(t, store.NewTaskStore(src).List(), store.NewTaskStore(dst).List())
	assert.Equal(t, store.NewPlantingStore(src).List(), store.NewPlantingStore(dst).List())
}

func TestImportMissingKeyWritesNothing(t *testing.T) {
	for _, missing := range RequiredKeys {
		t.Run(missing, func(t *testing.T) {
			s := sampleSlots(t)
			before := store.NewSeedStore(s).List()

			doc := map[string]any{"seeds": []any{}, "logs": []any{}, "scheduledTasks": []any{}, "customTasks": []any{}}
			delete(doc, missing)
			data, _ := json.Marshal(doc)

			_, err := ImportFrom(s, bytes.NewReader(data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingKeys))
			assert.Contains(t, err.Error(), missing)

			assert.Equal(t, before, store.NewSeedStore(s).List())
			assert.Len(t, store.NewLogStore(s).List(), 1)
		})
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	s := sampleSlots(t)
	for _, in := range []string{"", "not json", "[1,2]", "null"} {
		_, err := ImportFrom(s, strings.NewReader(in))
		assert.True(t, errors.Is(err, ErrInvalidDocument), "input %q: %v", in, err)
	}
	assert.Len(t, store.NewSeedStore(s).List(), 1)
}

func TestImportRejectsRequiredKeyThatIsNotAList(t *testing.T) {
	for _, key := range RequiredKeys {
		t.Run(key, func(t *testing.T) {
			s := sampleSlots(t)
			before := store.NewSeedStore(s).List()

			doc := map[string]any{"seeds": []any{}, "logs": []any{}, "scheduledTasks": []any{}, "customTasks": []any{}}
			doc[key] = "x"
			data, _ := json.Marshal(doc)

			_, err := ImportFrom(s, bytes.NewReader(data))
			assert.True(t, errors.Is(err, ErrInvalidDocument), "got %v", err)
			assert.Contains(t, err.Error(), key)
			assert.Equal(t, before, store.NewSeedStore(s).List())
			assert.Len(t, store.NewLogStore(s).List(), 1)
		})
	}
}

func TestImportOriginalFormat(t *testing.T) {
	s := setupSlots(t)
	in := `{
		"seeds": [{"id": "a", "name": "Kale", "source": "Farm", "stock": -2, "notes": "curly", "imageId": "x"}],
		"logs": [{"id": "l", "taskId": "watering", "date": "2024-05-01T10:00:00.000Z", "notes": ""}],
		"scheduledTasks": [],
		"customTasks": [{"id": "custom-9", "name": "Weeding", "icon": {}}],
		"exportDate": "2024-05-02T00:00:00.000Z"
	}`

	p, err := ImportFrom(s, strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 0, p.FromVersion)
	assert.True(t, p.Report.Changed())

	seeds := store.NewSeedStore(s).List()
	require.Len(t, seeds, 1)
	assert.Equal(t, "db-lacinato-kale", seeds[0].SeedDetailsID)
	assert.Equal(t, 0, seeds[0].PacketCount)
	assert.Equal(t, "curly", seeds[0].UserNotes)

	tasks := store.NewTaskStore(s).List()
	require.Len(t, tasks, 1)
	assert.Equal(t, model.DefaultCustomIcon, tasks[0].Icon)

	v, found := store.NewSettingsStore(s).SchemaVersion()
	assert.True(t, found)
	assert.Equal(t, schema.CurrentVersion, v)
}

func TestImportKeepsAbsentOptionalCollections(t *testing.T) {
	s := sampleSlots(t)
	in := `{"seeds": [], "logs": [], "scheduledTasks": [], "customTasks": []}`

	_, err := ImportFrom(s, strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, store.NewSeedStore(s).List())
	assert.Len(t, store.NewPlantingStore(s).List(), 1)
}
