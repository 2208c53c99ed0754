package store

import "github.com/dukerupert/seedstudio/internal/model"

type PlantingStore struct {
	collection[model.Planting]
}

func NewPlantingStore(s Slots) *PlantingStore {
	return &PlantingStore{collection[model.Planting]{
		slots: s,
		key:   KeyPlantings,
		id:    func(v *model.Planting) *string { return &v.ID },
	}}
}
