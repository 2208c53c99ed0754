package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/seedstudio/internal/database"
	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/handler"
	"github.com/dukerupert/seedstudio/internal/middleware"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/photo"
	"github.com/dukerupert/seedstudio/internal/push"
	"github.com/dukerupert/seedstudio/internal/store"
	"github.com/dukerupert/seedstudio/internal/transfer"
	ws "github.com/dukerupert/seedstudio/internal/websocket"
)

// maxRequestBytes leaves room for a full import document.
const maxRequestBytes = transfer.MaxDocumentBytes + 1<<20

// Config selects the optional backends and policies.
type Config struct {
	Policy         garden.Policy
	S3             photo.S3Config
	Push           push.Config
	PushHour       int
	OriginPatterns []string
}

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	slots         *store.SlotStore
	garden        *garden.Service
	seedH         *handler.SeedHandler
	catalogH      *handler.CatalogHandler
	logH          *handler.LogHandler
	scheduleH     *handler.ScheduleHandler
	plantingH     *handler.PlantingHandler
	journalH      *handler.JournalHandler
	taskH         *handler.TaskHandler
	settingsH     *handler.SettingsHandler
	photoH        *handler.PhotoHandler
	transferH     *handler.TransferHandler
	pushH         *handler.PushHandler
	pushStore     *store.PushStore
	pushScheduler *push.Scheduler
	rateLimiter   *middleware.RateLimiter
	originPattern []string
	logger        *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	slots := store.NewSlotStore(db, logger)
	slots.OnWarning(func(key string, err error) {
		hub.Notify(model.Notification{
			Kind:        model.NotifyWarning,
			Title:       "Storage Problem",
			Description: "Saved " + key + " could not be read. Defaults are shown instead.",
		})
	})

	// Photos live in S3 when a bucket is configured, otherwise in SQLite.
	var photos photo.Store = store.NewPhotoStore(db)
	var uploader *transfer.Uploader
	if cfg.S3.Enabled() {
		client := photo.NewS3Client(cfg.S3)
		photos = photo.NewS3Store(client, cfg.S3)
		uploader = transfer.NewUploader(client, cfg.S3, logger)
	}

	notifiers := garden.Notifiers{hub}
	pushSt := store.NewPushStore(db)
	var pushSched *push.Scheduler
	var publicKey string
	if cfg.Push.Enabled() {
		pushSvc := push.NewService(cfg.Push)
		publicKey = pushSvc.VAPIDPublicKey()
		pushSched = push.NewScheduler(pushSvc, pushSt, slots, cfg.PushHour, logger)
		notifiers = append(notifiers, pushSched)
	}

	svc := garden.NewService(slots, photos, notifiers, cfg.Policy, logger)

	return &Server{
		db:            db,
		hub:           hub,
		slots:         slots,
		garden:        svc,
		seedH:         handler.NewSeedHandler(svc, slots, hub, logger.With("component", "seed")),
		catalogH:      handler.NewCatalogHandler(slots, hub, logger.With("component", "catalog")),
		logH:          handler.NewLogHandler(svc, slots, hub, logger.With("component", "log")),
		scheduleH:     handler.NewScheduleHandler(svc, slots, hub, logger.With("component", "schedule")),
		plantingH:     handler.NewPlantingHandler(svc, slots, hub, logger.With("component", "planting")),
		journalH:      handler.NewJournalHandler(svc, slots, hub, logger.With("component", "journal")),
		taskH:         handler.NewTaskHandler(slots, hub, logger.With("component", "task")),
		settingsH:     handler.NewSettingsHandler(slots, svc, hub, logger.With("component", "settings")),
		photoH:        handler.NewPhotoHandler(photos, logger.With("component", "photo")),
		transferH:     handler.NewTransferHandler(slots, uploader, hub, logger.With("component", "transfer")),
		pushH:         handler.NewPushHandler(pushSt, publicKey, logger.With("component", "push_handler")),
		pushStore:     pushSt,
		pushScheduler: pushSched,
		rateLimiter:   middleware.NewRateLimiter(),
		originPattern: cfg.OriginPatterns,
		logger:        logger,
	}
}

// Hub returns the notification hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// Slots returns the structured store.
func (s *Server) Slots() *store.SlotStore {
	return s.slots
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// PushScheduler returns the push notification scheduler, or nil when push
// is not configured.
func (s *Server) PushScheduler() *push.Scheduler {
	return s.pushScheduler
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.originPattern))

	// Navigation + dashboard
	mux.HandleFunc("GET /api/pages", s.settingsH.Pages)
	mux.HandleFunc("GET /api/dashboard", s.settingsH.Dashboard)

	// Inventory
	mux.HandleFunc("GET /api/seeds", s.seedH.List)
	mux.HandleFunc("POST /api/seeds", s.seedH.Create)
	mux.HandleFunc("GET /api/seeds/low-stock", s.seedH.LowStock)
	mux.HandleFunc("GET /api/seeds/{id}", s.seedH.Get)
	mux.HandleFunc("PUT /api/seeds/{id}", s.seedH.Update)
	mux.HandleFunc("DELETE /api/seeds/{id}", s.seedH.Delete)
	mux.HandleFunc("POST /api/seeds/{id}/stock", s.seedH.AdjustStock)

	// Seed database
	mux.HandleFunc("GET /api/catalog", s.catalogH.List)
	mux.HandleFunc("POST /api/catalog", s.catalogH.Create)
	mux.HandleFunc("PUT /api/catalog/{id}", s.catalogH.Update)
	mux.HandleFunc("DELETE /api/catalog/{id}", s.catalogH.Delete)

	// Logs
	mux.HandleFunc("GET /api/logs", s.logH.List)
	mux.HandleFunc("POST /api/logs", s.logH.Create)
	mux.HandleFunc("PUT /api/logs/{id}", s.logH.Update)
	mux.HandleFunc("DELETE /api/logs/{id}", s.logH.Delete)

	// Schedule
	mux.HandleFunc("GET /api/schedule", s.scheduleH.List)
	mux.HandleFunc("POST /api/schedule", s.scheduleH.Create)
	mux.HandleFunc("PUT /api/schedule/{id}", s.scheduleH.Update)
	mux.HandleFunc("DELETE /api/schedule/{id}", s.scheduleH.Delete)
	mux.HandleFunc("POST /api/schedule/{id}/complete", s.scheduleH.Complete)

	// Plantings
	mux.HandleFunc("GET /api/plantings", s.plantingH.List)
	mux.HandleFunc("POST /api/plantings", s.plantingH.Create)
	mux.HandleFunc("PUT /api/plantings/{id}", s.plantingH.Update)
	mux.HandleFunc("DELETE /api/plantings/{id}", s.plantingH.Delete)

	// Journal
	mux.HandleFunc("GET /api/journal", s.journalH.List)
	mux.HandleFunc("POST /api/journal", s.journalH.Create)
	mux.HandleFunc("GET /api/journal/{id}", s.journalH.Get)
	mux.HandleFunc("PUT /api/journal/{id}", s.journalH.Update)
	mux.HandleFunc("DELETE /api/journal/{id}", s.journalH.Delete)

	// Task types
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("GET /api/tasks/icons", s.taskH.Icons)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	// Settings
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("GET /api/settings/theme", s.settingsH.GetTheme)
	mux.HandleFunc("PUT /api/settings/theme", s.settingsH.UpdateTheme)

	// Photos
	mux.HandleFunc("POST /api/photos", s.rateLimitedHandler(s.photoH.Upload, 60))
	mux.HandleFunc("GET /api/photos/{id}", s.photoH.Get)
	mux.HandleFunc("GET /api/photos/{id}/raw", s.photoH.Raw)
	mux.HandleFunc("DELETE /api/photos/{id}", s.photoH.Delete)

	// Export / import
	mux.HandleFunc("GET /api/export", s.transferH.Export)
	mux.HandleFunc("GET /api/export/report", s.transferH.Report)
	mux.HandleFunc("POST /api/export/archive", s.rateLimitedHandler(s.transferH.Archive, 10))
	mux.HandleFunc("POST /api/import", s.rateLimitedHandler(s.transferH.Import, 10))

	// Push notifications
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.ListSubscriptions)
	mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)

	var h http.Handler = mux
	h = middleware.MaxBody(maxRequestBytes)(h)
	h = middleware.RequestLogger(s.logger.With("component", "http"), "/health")(h)
	h = middleware.Recover(s.logger.With("component", "http"))(h)
	return h
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok"}
	if v, err := database.Version(s.db); err == nil {
		status["migration"] = v
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc, perMinute int) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.ByIP, perMinute, time.Minute)
	return rl(h).ServeHTTP
}
