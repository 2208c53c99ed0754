package model

import (
	"strings"
)

// Built-in task ids.
const (
	TaskPlanting    = "planting"
	TaskWatering    = "watering"
	TaskHarvesting  = "harvesting"
	TaskPruning     = "pruning"
	TaskPestControl = "pest-control"
	TaskSoilPrep    = "soil-prep"
)

// CustomTaskPrefix marks user-defined task ids.
const CustomTaskPrefix = "custom-"

// TaskType is an activity kind. Icon is a key into IconGlyphs, never markup.
type TaskType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// IsCustom reports whether t was defined by the user.
func (t TaskType) IsCustom() bool {
	return strings.HasPrefix(t.ID, CustomTaskPrefix)
}

func (t TaskType) Validate() error {
	v := NewValidation()
	if len([]rune(strings.TrimSpace(t.Name))) < 2 {
		v.Add("name", "Task name must be at least 2 characters.")
	}
	if t.Icon != "" {
		if _, ok := IconGlyphs[t.Icon]; !ok {
			v.Add("icon", "Unknown icon.")
		}
	}
	return v.Err()
}

// DefaultCustomIcon is used for custom tasks created without an icon.
const DefaultCustomIcon = "sprout"

var BuiltinTasks = []TaskType{
	{ID: TaskPlanting, Name: "Planting", Icon: "sprout"},
	{ID: TaskWatering, Name: "Watering", Icon: "droplets"},
	{ID: TaskHarvesting, Name: "Harvesting", Icon: "grape"},
	{ID: TaskPruning, Name: "Pruning", Icon: "scissors"},
	{ID: TaskPestControl, Name: "Pest Control", Icon: "bug"},
	{ID: TaskSoilPrep, Name: "Soil Preparation", Icon: "shovel"},
}

// IconGlyphs maps persisted icon keys to a display glyph.
var IconGlyphs = map[string]string{
	"sprout":   "🌱",
	"droplets": "💧",
	"grape":    "🍇",
	"scissors": "✂️",
	"bug":      "🐛",
	"shovel":   "🪏",
	"sun":      "☀️",
	"leaf":     "🍃",
	"flower":   "🌸",
	"tools":    "🧰",
}

// IconGlyph resolves an icon key, falling back to the default custom icon.
func IconGlyph(key string) string {
	if g, ok := IconGlyphs[key]; ok {
		return g
	}
	return IconGlyphs[DefaultCustomIcon]
}

// AllTasks returns built-ins followed by custom tasks.
func AllTasks(custom []TaskType) []TaskType {
	out := make([]TaskType, 0, len(BuiltinTasks)+len(custom))
	out = append(out, BuiltinTasks...)
	return append(out, custom...)
}

// FindTask looks id up in the effective catalog.
func FindTask(custom []TaskType, id string) (TaskType, bool) {
	for _, t := range AllTasks(custom) {
		if t.ID == id {
			return t, true
		}
	}
	return TaskType{}, false
}
