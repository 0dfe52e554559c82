package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "clinic-frontdesk/docs"
	"clinic-frontdesk/internal/adapters/notifylog"
	rtmem "clinic-frontdesk/internal/adapters/realtime/memory"
	"clinic-frontdesk/internal/adapters/storage/hosted"
	mem "clinic-frontdesk/internal/adapters/storage/memory"
	pg "clinic-frontdesk/internal/adapters/storage/postgres"
	"clinic-frontdesk/internal/domain/dashboard"
	"clinic-frontdesk/internal/domain/items"
	"clinic-frontdesk/internal/domain/registrations"
	"clinic-frontdesk/internal/middleware"
	"clinic-frontdesk/internal/platform/httpclient"
	"clinic-frontdesk/internal/platform/logger"
	"clinic-frontdesk/internal/platform/metrics"
	"clinic-frontdesk/internal/ports/auth"
	"clinic-frontdesk/internal/ports/realtime"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Realtime es el transporte de cambios de fila (Redis o broker en memoria).
type Realtime interface {
	realtime.Publisher
	realtime.Subscriber
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Storage: DB (Postgres) > Backend (REST hosteado) > in-memory.
	DB      *sql.DB
	Backend *httpclient.Client

	// Items pisa el catálogo del storage (p.ej. ITEMS_FILE).
	Items items.Repository

	// Realtime opcional; si es nil se usa un broker en proceso.
	Realtime Realtime

	Logger   logger.Logger
	Metrics  *metrics.Metrics
	Location *time.Location

	CORSAllowedOrigins []string

	// Context acota la vida del reconciler del dashboard. Default: Background.
	Context context.Context
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.HeaderVolunteerInitials},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Use(middleware.VolunteerContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		itemRepo items.Repository
		regRepo  registrations.Repository
	)

	switch {
	case opts.DB != nil:
		itemRepo = pg.NewItemsRepo(opts.DB)
		regRepo = pg.NewRegistrationsRepo(opts.DB)
		log.Info("storage: postgres", nil)
	case opts.Backend != nil:
		itemRepo = hosted.NewItemsRepo(opts.Backend)
		regRepo = hosted.NewRegistrationsRepo(opts.Backend)
		log.Info("storage: hosted backend", map[string]any{"base_url": opts.Backend.BaseURL})
	default:
		itemRepo = mem.NewItemsRepo(nil)
		regRepo = mem.NewRegistrationsRepo()
		log.Info("storage: in-memory", nil)
	}
	if opts.Items != nil {
		itemRepo = opts.Items
	}

	var rt Realtime = rtmem.NewBroker()
	if opts.Realtime != nil {
		rt = opts.Realtime
	}

	// Recorders opcionales (interfaces nil si no hay métricas).
	var (
		regRec  registrations.Recorder
		dashRec dashboard.Recorder
	)
	if opts.Metrics != nil {
		regRec = opts.Metrics
		dashRec = opts.Metrics
	}

	notifier := notifylog.New(log)

	// Services por módulo
	itemsSvc := items.NewService(itemRepo)
	regSvc := registrations.NewService(regRepo, itemsSvc, registrations.Options{
		Publisher: rt,
		Logger:    log.With(map[string]any{"module": "registrations"}),
		Recorder:  regRec,
		Location:  opts.Location,
	})

	// Dashboard en vivo: arranca con las registraciones de hoy y sigue por realtime.
	today := regSvc.Today()
	session := dashboard.NewSession(today, nil)
	if regs, err := regSvc.ListByDate(ctx, today); err != nil {
		log.Warn("dashboard: initial fetch failed, starting empty", map[string]any{"error": err})
	} else {
		session.Reset(today, regs)
	}
	reconciler := dashboard.NewReconciler(rt, session, dashboard.ReconcilerOptions{
		Logger:   log.With(map[string]any{"module": "dashboard"}),
		Recorder: dashRec,
		Source:   regSvc,
	})
	if err := reconciler.Subscribe(ctx); err != nil {
		log.Error("dashboard: realtime subscribe failed", map[string]any{"error": err})
	} else {
		go func() { _ = reconciler.Run(ctx) }()
	}

	// Rutas por módulo
	items.RegisterRoutes(r, itemsSvc)
	registrations.RegisterRoutes(r, regSvc, notifier)
	dashboard.RegisterRoutes(r, session, regSvc, notifier)

	return r
}
