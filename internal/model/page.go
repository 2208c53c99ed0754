package model

type Page struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Pages is the fixed navigation surface, in display order.
var Pages = []Page{
	{ID: "dashboard", Name: "Dashboard", Path: "/"},
	{ID: "inventory", Name: "Inventory", Path: "/inventory"},
	{ID: "plantings", Name: "Plantings", Path: "/plantings"},
	{ID: "journal", Name: "Journal", Path: "/journal"},
	{ID: "logs", Name: "Logs", Path: "/logs"},
	{ID: "schedule", Name: "Schedule", Path: "/schedule"},
	{ID: "settings", Name: "Settings", Path: "/settings"},
}
