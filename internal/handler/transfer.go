package handler

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/transfer"
	"github.com/dukerupert/seedstudio/internal/websocket"
)

// passphraseHeader carries the archive passphrase on encrypted imports.
const passphraseHeader = "X-Backup-Passphrase"

type TransferHandler struct {
	broadcaster
	slots    *store.SlotStore
	uploader *transfer.Uploader
	notifier garden.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewTransferHandler creates the export/import handler. uploader may be nil
// when no S3 bucket is configured.
func NewTransferHandler(slots *store.SlotStore, uploader *transfer.Uploader, hub *websocket.Hub, logger *slog.Logger) *TransferHandler {
	h := &TransferHandler{broadcaster: broadcaster{hub}, slots: slots, uploader: uploader, logger: logger, now: time.Now}
	if hub != nil {
		h.notifier = hub
	} else {
		h.notifier = garden.NotifierFunc(func(model.Notification) {})
	}
	return h
}

// Export handles GET /api/export
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	var buf bytes.Buffer
	if err := transfer.WriteJSON(&buf, transfer.Export(h.slots, now)); err != nil {
		writeError(w, h.logger, err, "failed to export data")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, transfer.FileName(now)))
	w.Write(buf.Bytes())
}

// Report handles GET /api/export/report
func (h *TransferHandler) Report(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	var buf bytes.Buffer
	if err := transfer.WriteReport(&buf, transfer.Export(h.slots, now), now); err != nil {
		writeError(w, h.logger, err, "failed to build report")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, transfer.ReportName(now)))
	w.Write(buf.Bytes())
}

type archiveRequest struct {
	Passphrase string `json:"passphrase"`
	Upload     bool   `json:"upload"`
}

// Archive handles POST /api/export/archive. The encrypted document is either
// returned as a download or, with upload set, stored in the backup bucket.
func (h *TransferHandler) Archive(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Passphrase) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": map[string]string{"passphrase": "Passphrase must be at least 8 characters."},
		})
		return
	}
	if req.Upload && h.uploader == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "backup storage is not configured"})
		return
	}

	now := h.now()
	sealed, err := transfer.SealDocument(transfer.Export(h.slots, now), req.Passphrase)
	if err != nil {
		writeError(w, h.logger, err, "failed to encrypt export")
		return
	}

	name := transfer.ArchiveName(now)
	if req.Upload {
		key, err := h.uploader.Upload(r.Context(), name, sealed)
		if err != nil {
			writeError(w, h.logger, err, "failed to upload backup")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"key": key})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Write(sealed)
}

// Import handles POST /api/import. A plain body is an export document; when
// the passphrase header is present the body is an encrypted archive. Storage
// is untouched unless the whole document is valid.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	var (
		p   *transfer.Parsed
		err error
	)
	body := io.LimitReader(r.Body, transfer.MaxDocumentBytes+64)
	if pass := r.Header.Get(passphraseHeader); pass != "" {
		p, err = transfer.OpenArchive(body, pass)
	} else {
		p, err = transfer.Parse(body)
	}
	if err == nil {
		err = transfer.Import(h.slots, p)
	}
	if err != nil {
		h.notifier.Notify(model.Notification{
			Kind:        model.NotifyError,
			Title:       "Import Failed",
			Description: err.Error(),
		})
		writeError(w, h.logger, err, "failed to import data")
		return
	}

	h.logger.Info("data imported", "from_version", p.FromVersion, "seeds", len(p.Document.Seeds), "logs", len(p.Document.Logs))
	if p.Report.Changed() {
		h.notifier.Notify(model.Notification{
			Kind:        model.NotifyWarning,
			Title:       "Data Corrected",
			Description: p.Report.String(),
		})
	}
	h.notifier.Notify(model.Notification{
		Kind:        model.NotifyInfo,
		Title:       "Import Successful",
		Description: "Your data has been imported.",
	})
	h.broadcast("data", "imported", "")

	writeJSON(w, http.StatusOK, map[string]any{
		"fromVersion": p.FromVersion,
		"seeds":       len(p.Document.Seeds),
		"logs":        len(p.Document.Logs),
		"corrected":   p.Report.Changed(),
	})
}
