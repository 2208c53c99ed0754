package model

// Notification kinds shown to the user as non-blocking toasts.
const (
	NotifyInfo     = "info"
	NotifyWarning  = "warning"
	NotifyError    = "error"
	NotifyLowStock = "low_stock"
)

// Notification is a non-blocking user message.
type Notification struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
