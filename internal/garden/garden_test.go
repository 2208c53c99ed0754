package garden

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/seedstudio/internal/database"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/schedule"
	"github.com/dukerupert/seedstudio/internal/store"
)

type recorder struct {
	mu    sync.Mutex
	notes []model.Notification
}

func (r *recorder) Notify(n model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.notes {
		if x.Kind == kind {
			n++
		}
	}
	return n
}

type fixture struct {
	svc    *Service
	slots  *store.SlotStore
	photos *store.PhotoStore
	notes  *recorder
	now    time.Time
}

func setup(t *testing.T, policy Policy) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		slots:  store.NewSlotStore(db, nil),
		photos: store.NewPhotoStore(db),
		notes:  &recorder{},
		now:    time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.slots, f.photos, f.notes, policy, nil)
	f.svc.SetClock(func() time.Time { return f.now })
	return f
}

func (f *fixture) seed(t *testing.T, id string, packets int) {
	t.Helper()
	require.NoError(t, store.NewSeedStore(f.slots).ReplaceAll(append(store.NewSeedStore(f.slots).List(), model.Seed{
		ID: id, SeedDetailsID: "db-cherry-tomato", Source: "Shop", PacketCount: packets, Tags: []string{},
	})))
}

func (f *fixture) packets(t *testing.T, id string) int {
	t.Helper()
	s, err := store.NewSeedStore(f.slots).GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s.PacketCount
}

func qty(n int) *int { return &n }

func plantingLog(seedID string, n int, date time.Time) model.LogEntry {
	return model.LogEntry{TaskID: model.TaskPlanting, SeedID: seedID, Quantity: qty(n), Date: date}
}

func TestPlantingCrossesLowStockOnce(t *testing.T) {
	f := setup(t, Policy{})
	f.seed(t, "s1", 12)
	ctx := context.Background()

	_, err := f.svc.RecordLog(ctx, plantingLog("s1", 5, f.now))
	require.NoError(t, err)
	assert.Equal(t, 7, f.packets(t, "s1"))
	assert.Equal(t, 1, f.notes.count(model.NotifyLowStock))

	_, err = f.svc.RecordLog(ctx, plantingLog("s1", 1, f.now))
	require.NoError(t, err)
	assert.Equal(t, 6, f.packets(t, "s1"))
	assert.Equal(t, 1, f.notes.count(model.NotifyLowStock))
}

func TestStockFloorsAtZero(t *testing.T) {
	f := setup(t, Policy{})
	f.seed(t, "s1", 2)

	_, err := f.svc.RecordLog(context.Background(), plantingLog("s1", 5, f.now))
	require.NoError(t, err)
	assert.Equal(t, 0, f.packets(t, "s1"))
}

func TestStockMayGoNegativeWhenAllowed(t *testing.T) {
	f := setup(t, Policy{AllowNegativeStock: true})
	f.seed(t, "s1", 2)

	_, err := f.svc.RecordLog(context.Background(), plantingLog("s1", 5, f.now))
	require.NoError(t, err)
	assert.Equal(t, -3, f.packets(t, "s1"))
}

func TestEditFlooredPlantingReturnsOnlyWhatWasTaken(t *testing.T) {
	f := setup(t, Policy{})
	f.seed(t, "s1", 2)
	ctx := context.Background()

	saved, err := f.svc.RecordLog(ctx, plantingLog("s1", 5, f.now))
	require.NoError(t, err)
	require.Equal(t, 0, f.packets(t, "s1"))
	require.NotNil(t, saved.StockTaken)
	assert.Equal(t, 2, *saved.StockTaken)

	saved.Quantity = qty(1)
	saved, err = f.svc.RecordLog(ctx, *saved)
	require.NoError(t, err)
	assert.Equal(t, 1, f.packets(t, "s1"))
	assert.Equal(t, 1, *saved.StockTaken)

	saved.Quantity = qty(3)
	_, err = f.svc.RecordLog(ctx, *saved)
	require.NoError(t, err)
	assert.Equal(t, 0, f.packets(t, "s1"))
}

func TestMovePlantingToAnotherSeed(t *testing.T) {
	f := setup(t, Policy{})
	f.seed(t, "a", 10)
	f.seed(t, "b", 10)
	ctx := context.Background()

	saved, err := f.svc.RecordLog(ctx, plantingLog("a", 4, f.now))
	require.NoError(t, err)
	require.Equal(t, 6, f.packets(t, "a"))

	saved.SeedID = "b"
	_, err = f.svc.RecordLog(ctx, *saved)
	require.NoError(t, err)
	assert.Equal(t, 10, f.packets(t, "a"))
	assert.Equal(t, 6, f.packets(t, "b"))
}

func TestEditPlantingLogAfterSeedDeleted(t *testing.T) {
	f := setup(t, Policy{})
	f.seed(t, "s1", 12)
	ctx := context.Background()

	saved, err := f.svc.RecordLog(ctx, plantingLog("s1", 5, f.now))
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteSeed(ctx, "s1"))

	saved.Notes = "thinned to one per cell"
	_, err = f.svc.RecordLog(ctx, *saved)
	require.NoError(t, err)

	saved.Quantity = qty(2)
	_, err = f.svc.RecordLog(ctx, *saved)
	require.NoError(t, err)

	got, err := store.NewLogStore(f.slots).GetByID(saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "thinned to one per cell", got.Notes)
	assert.Equal(t, 2, *got.Quantity)
}

func TestEditLogAfterCustomTaskDeleted(t *testing.T) {
	f := setup(t, Policy{})
	ctx := context.Background()

	tasks := store.NewTaskStore(f.slots)
	task, err := tasks.Create(model.TaskType{Name: "Mulching"})
	require.NoError(t, err)
	saved, err := f.svc.RecordLog(ctx, model.LogEntry{TaskID: task.ID, Date: f.now})
	require.NoError(t, err)
	require.NoError(t, tasks.Delete(task.ID))

	saved.Notes = "straw on the tomatoes"
	_, err = f.svc.RecordLog(ctx, *saved)
	require.NoError(t, err)

	saved.TaskID = "custom-gone"
	_, err = f.svc.RecordLog(ctx, *saved)
	assert.True(t, errors.Is(err, ErrUnknownTask))
}

func TestEditingPlantingLogAppliesDelta(t *testing.T) {
	f := setup(t, Policy{})
	f.seed(t, "s1", 12)
	f.seed(t, "s2", 20)
	ctx := context.Background()

	saved, err := f.svc.RecordLog(ctx, plantingLog("s1", 5, f.now))
	require.NoError(t, err)

	edit := *saved
	edit.Quantity = qty(3)
	_, err = f.svc.RecordLog(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, 9, f.packets(t, "s1"))
	assert.Equal(t, 1, f.notes.count(model.NotifyLowStock))

	edit.SeedID = "s2"
	_, err = f.svc.RecordLog(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, 12, f.packets(t, "s1"))
	assert.Equal(t, 17, f.packets(t, "s2"))

	assert.Len(t, store.NewLogStore(f.slots).List(), 1)
}

func TestWishlistStockUntouched(t *testing.T) {
	f := setup(t, Policy{})
	require.NoError(t, store.NewSeedStore(f.slots).ReplaceAll([]model.Seed{{ID: "w", SeedDetailsID: "db-lacinato-kale", Source: "Catalog", IsWishlist: true}}))

	change, err := f.svc.AdjustSeedStock(context.Background(), "w", -3)
	require.NoError(t, err)
	assert.Equal(t, 0, change.After)
	assert.False(t, change.CrossedLowStock)
	assert.Equal(t, 0, f.notes.count(model.NotifyLowStock))
}

func TestRecordLogRejectsUnknownTask(t *testing.T) {
	f := setup(t, Policy{})

	_, err := f.svc.RecordLog(context.Background(), model.LogEntry{TaskID: "dancing", Date: f.now})
	assert.True(t, errors.Is(err, ErrUnknownTask))
	assert.Empty(t, store.NewLogStore(f.slots).List())
}

func TestRecordLogValidation(t *testing.T) {
	f := setup(t, Policy{})

	_, err := f.svc.RecordLog(context.Background(), model.LogEntry{})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "taskId")
	assert.Contains(t, verr.Fields, "date")
	assert.Empty(t, store.NewLogStore(f.slots).List())
}

func TestSavePlantingWritesSowingLogOnCreate(t *testing.T) {
	f := setup(t, Policy{})
	f.seed(t, "s1", 12)
	ctx := context.Background()
	sown := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	p, created, err := f.svc.SavePlanting(ctx, model.Planting{SeedID: "s1", SowingDate: sown, Notes: "in cell trays"})
	require.NoError(t, err)
	assert.True(t, created)

	logs := store.NewLogStore(f.slots).List()
	require.Len(t, logs, 1)
	assert.Equal(t, model.TaskPlanting, logs[0].TaskID)
	assert.Equal(t, "Sowed Cherry Tomato. in cell trays", logs[0].Notes)
	assert.True(t, logs[0].Date.Equal(sown))
	assert.Equal(t, 12, f.packets(t, "s1"))

	germinated := sown.AddDate(0, 0, 7)
	p.GerminationDate = &germinated
	_, created, err = f.svc.SavePlanting(ctx, *p)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, store.NewLogStore(f.slots).List(), 1)

	got, _ := store.NewPlantingStore(f.slots).GetByID(p.ID)
	assert.Equal(t, model.StageGerminated, got.Stage())
}

func TestSavePlantingUnknownSeed(t *testing.T) {
	f := setup(t, Policy{})
	_, _, err := f.svc.SavePlanting(context.Background(), model.Planting{SeedID: "ghost", SowingDate: f.now})
	assert.True(t, errors.Is(err, ErrUnknownSeed))
	assert.Empty(t, store.NewPlantingStore(f.slots).List())
}

func TestDeleteLogRemovesPhoto(t *testing.T) {
	f := setup(t, Policy{})
	ctx := context.Background()
	require.NoError(t, f.photos.Put(ctx, model.Photo{ID: "ph1", DataURL: "data:image/png;base64,AA=="}))

	saved, err := f.svc.RecordLog(ctx, model.LogEntry{TaskID: model.TaskWatering, Date: f.now, PhotoID: "ph1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteLog(ctx, saved.ID))
	p, err := f.photos.Get(ctx, "ph1")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, store.NewLogStore(f.slots).List())

	assert.True(t, errors.Is(f.svc.DeleteLog(ctx, saved.ID), store.ErrNotFound))
}

type failingPhotos struct{ *store.PhotoStore }

func (failingPhotos) Delete(context.Context, string) error { return errors.New("disk on fire") }

func TestDeleteLogKeepsRecordWhenPhotoDeleteFails(t *testing.T) {
	f := setup(t, Policy{})
	ctx := context.Background()
	saved, err := f.svc.RecordLog(ctx, model.LogEntry{TaskID: model.TaskWatering, Date: f.now, PhotoID: "ph1"})
	require.NoError(t, err)

	f.svc.photos = failingPhotos{}
	assert.Error(t, f.svc.DeleteLog(ctx, saved.ID))
	assert.Len(t, store.NewLogStore(f.slots).List(), 1)
}

func TestJournalPhotoCleanup(t *testing.T) {
	f := setup(t, Policy{})
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		require.NoError(t, f.photos.Put(ctx, model.Photo{ID: id, DataURL: "data:image/png;base64,AA=="}))
	}

	entry, err := f.svc.SaveJournalEntry(ctx, model.JournalEntry{Title: "First frost", Date: f.now, Content: "Covered the beds.", PhotoIDs: []string{"a", "b"}})
	require.NoError(t, err)

	entry.PhotoIDs = []string{"b"}
	_, err = f.svc.SaveJournalEntry(ctx, *entry)
	require.NoError(t, err)
	p, _ := f.photos.Get(ctx, "a")
	assert.Nil(t, p)

	require.NoError(t, f.svc.DeleteJournalEntry(ctx, entry.ID))
	n, err := f.photos.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, store.NewJournalStore(f.slots).List())
}

func TestCompleteScheduledTask(t *testing.T) {
	f := setup(t, Policy{})
	ctx := context.Background()
	start := f.now.AddDate(0, 0, -10)

	task, err := f.svc.SaveScheduledTask(ctx, model.ScheduledTask{TaskID: model.TaskWatering, Recurrence: model.RecurrenceWeekly, Notes: "tomatoes", StartDate: &start})
	require.NoError(t, err)

	logs := store.NewLogStore(f.slots).List()
	assert.True(t, schedule.IsOverdue(*task, logs, f.now))

	entry, err := f.svc.CompleteScheduledTask(ctx, task.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.TaskWatering, entry.TaskID)
	assert.Equal(t, "tomatoes", entry.Notes)
	assert.True(t, entry.Date.Equal(f.now))

	logs = store.NewLogStore(f.slots).List()
	assert.False(t, schedule.IsOverdue(*task, logs, f.now))

	_, err = f.svc.CompleteScheduledTask(ctx, "nope", "")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSaveSeedRequiresKnownVariety(t *testing.T) {
	f := setup(t, Policy{})
	_, err := f.svc.SaveSeed(context.Background(), model.Seed{SeedDetailsID: "db-nope", Source: "Shop"})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "seedDetailsId")

	saved, err := f.svc.SaveSeed(context.Background(), model.Seed{SeedDetailsID: "db-genovese-basil", Source: "Shop", PacketCount: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestDashboard(t *testing.T) {
	f := setup(t, Policy{})
	f.seed(t, "s1", 3)
	f.seed(t, "s2", 40)
	ctx := context.Background()

	w1, w2 := 1.5, 2.0
	_, err := f.svc.RecordLog(ctx, model.LogEntry{TaskID: model.TaskHarvesting, SeedID: "s1", Weight: &w1, Date: f.now.AddDate(0, 0, -2)})
	require.NoError(t, err)
	_, err = f.svc.RecordLog(ctx, model.LogEntry{TaskID: model.TaskHarvesting, SeedID: "s1", Weight: &w2, Date: f.now.AddDate(0, 0, -1)})
	require.NoError(t, err)
	_, err = f.svc.RecordLog(ctx, model.LogEntry{TaskID: model.TaskWatering, Date: f.now.AddDate(0, 0, -40)})
	require.NoError(t, err)

	d := f.svc.Dashboard()
	assert.Equal(t, 2, d.SeedsInStock)
	require.Len(t, d.LowStock, 1)
	assert.Equal(t, "s1", d.LowStock[0].ID)

	require.Len(t, d.Harvest, 1)
	assert.InDelta(t, 3.5, d.Harvest[0].Weight, 0.0001)
	assert.Equal(t, "Cherry Tomato", d.Harvest[0].Name)

	require.Len(t, d.Activity, 1)
	assert.Equal(t, model.TaskHarvesting, d.Activity[0].TaskID)
	assert.Equal(t, 2, d.Activity[0].Count)

	require.Len(t, d.RecentLogs, 3)
	assert.Equal(t, "Harvesting", d.RecentLogs[0].TaskName)
}
