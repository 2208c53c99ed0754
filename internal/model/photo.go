package model

// Photo is a blob store record. DataURL holds an encoded image.
type Photo struct {
	ID      string `json:"id"`
	DataURL string `json:"dataUrl"`
}
