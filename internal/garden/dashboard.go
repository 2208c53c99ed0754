package garden

import (
	"sort"
	"time"

	"github.com/dukerupert/seedstudio/internal/catalog"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/schedule"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/view"
)

const (
	dashboardWindow = 30 * 24 * time.Hour
	recentLogCount  = 5
)

type HarvestTotal struct {
	SeedID string  `json:"seedId"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type ActivityCount struct {
	TaskID string `json:"taskId"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Count  int    `json:"count"`
}

type Dashboard struct {
	SeedsInStock    int                       `json:"seedsInStock"`
	WishlistCount   int                       `json:"wishlistCount"`
	LowStock        []model.SeedDetails       `json:"lowStock"`
	Tasks           []schedule.TaskWithStatus `json:"tasks"`
	NextTask        *schedule.TaskWithStatus  `json:"nextTask,omitempty"`
	RecentLogs      []view.LogRow             `json:"recentLogs"`
	Harvest         []HarvestTotal            `json:"harvest"`
	Activity        []ActivityCount           `json:"activity"`
	ActivePlantings int                       `json:"activePlantings"`
}

// Dashboard summarizes the garden as of now.
func (s *Service) Dashboard() Dashboard {
	now := s.now()
	seeds := store.NewSeedStore(s.slots).List()
	logs := store.NewLogStore(s.slots).List()
	tasks := store.NewScheduleStore(s.slots).List()
	custom := store.NewTaskStore(s.slots).List()
	cat := catalog.Load(s.slots)

	d := Dashboard{
		LowStock:   cat.DetailsAll(LowStock(seeds)),
		Tasks:      schedule.EvaluateAll(tasks, logs, now),
		RecentLogs: []view.LogRow{},
		Harvest:    []HarvestTotal{},
		Activity:   []ActivityCount{},
	}
	for _, sd := range seeds {
		if sd.IsWishlist {
			d.WishlistCount++
		} else {
			d.SeedsInStock++
		}
	}
	for _, p := range store.NewPlantingStore(s.slots).List() {
		if p.Stage() != model.StagePlantedOut {
			d.ActivePlantings++
		}
	}
	d.NextTask = nextTask(d.Tasks)

	rows := LogRows(logs, seeds, custom, cat)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	if len(rows) > recentLogCount {
		rows = rows[:recentLogCount]
	}
	d.RecentLogs = append(d.RecentLogs, rows...)

	since := now.Add(-dashboardWindow)
	harvest := make(map[string]*HarvestTotal)
	counts := make(map[string]int)
	for _, l := range logs {
		if !l.Date.After(since) {
			continue
		}
		counts[l.TaskID]++
		if l.TaskID != model.TaskHarvesting || l.SeedID == "" || l.Weight == nil || *l.Weight <= 0 {
			continue
		}
		h, ok := harvest[l.SeedID]
		if !ok {
			h = &HarvestTotal{SeedID: l.SeedID, Name: cat.SeedName(seeds, l.SeedID)}
			harvest[l.SeedID] = h
		}
		h.Weight += *l.Weight
	}
	for _, h := range harvest {
		d.Harvest = append(d.Harvest, *h)
	}
	sort.Slice(d.Harvest, func(i, j int) bool {
		if d.Harvest[i].Weight != d.Harvest[j].Weight {
			return d.Harvest[i].Weight > d.Harvest[j].Weight
		}
		return d.Harvest[i].Name < d.Harvest[j].Name
	})
	for _, t := range model.AllTasks(custom) {
		if n := counts[t.ID]; n > 0 {
			d.Activity = append(d.Activity, ActivityCount{TaskID: t.ID, Name: t.Name, Icon: t.Icon, Count: n})
		}
	}
	return d
}

// nextTask picks the task with the earliest upcoming due date.
func nextTask(tasks []schedule.TaskWithStatus) *schedule.TaskWithStatus {
	var next *schedule.TaskWithStatus
	for i := range tasks {
		t := &tasks[i]
		if t.NextDue == nil {
			continue
		}
		if next == nil || t.NextDue.Before(*next.NextDue) {
			next = t
		}
	}
	return next
}

// LogRows resolves task and seed names for display.
func LogRows(logs []model.LogEntry, seeds []model.Seed, custom []model.TaskType, cat *catalog.Catalog) []view.LogRow {
	rows := make([]view.LogRow, 0, len(logs))
	for _, l := range logs {
		row := view.LogRow{LogEntry: l, TaskName: l.TaskID}
		if t, ok := model.FindTask(custom, l.TaskID); ok {
			row.TaskName = t.Name
		}
		if l.SeedID != "" {
			row.SeedName = cat.SeedName(seeds, l.SeedID)
		}
		rows = append(rows, row)
	}
	return rows
}

// PlantingRows resolves seed names and stages for display.
func PlantingRows(plantings []model.Planting, seeds []model.Seed, cat *catalog.Catalog) []view.PlantingRow {
	rows := make([]view.PlantingRow, 0, len(plantings))
	for _, p := range plantings {
		rows = append(rows, view.PlantingRow{
			Planting: p,
			SeedName: cat.SeedName(seeds, p.SeedID),
			Stage:    p.Stage(),
		})
	}
	return rows
}
