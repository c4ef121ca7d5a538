package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/louisbranch/festival/internal/platform/ctxlog"
	"github.com/louisbranch/festival/internal/services/web/adminauth"
	"github.com/louisbranch/festival/internal/services/web/mount"
	"github.com/louisbranch/festival/internal/services/web/pages"
	"github.com/louisbranch/festival/internal/services/web/platform/httpx"
	"github.com/louisbranch/festival/internal/services/web/platform/observability"
	"github.com/louisbranch/festival/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/festival/internal/services/web/routepath"
	"github.com/louisbranch/festival/internal/services/web/static"
	"github.com/louisbranch/festival/internal/services/web/storage"
	"github.com/louisbranch/festival/internal/services/web/units"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config defines the inputs for the festival web server.
type Config struct {
	HTTPAddr string
	Store    storage.Store
	// SessionSecret signs admin session tokens.
	SessionSecret string
	SessionTTL    time.Duration
	// StrictMode enables the development render guard on mounted units.
	StrictMode bool
	// RequestMeta decides when cookies are marked secure and how form
	// origins are checked.
	RequestMeta requestmeta.Policy
	// Catalog overrides the embedded page shells.
	Catalog *pages.Catalog
	// Registry overrides the unit registry built from Store.
	Registry *mount.Registry
	// Metrics receives dispatcher and runtime collectors. A fresh registry
	// is used when nil.
	Metrics *prometheus.Registry
	// Logger receives dispatcher diagnostics and access log entries.
	Logger *slog.Logger
	Now    func() time.Time
}

type handler struct {
	store      storage.Store
	catalog    *pages.Catalog
	dispatcher *mount.Dispatcher
	sessions   *adminauth.Manager
	auth       *adminauth.Authenticator
	policy     requestmeta.Policy
	logger     *slog.Logger
	now        func() time.Time
}

// NewHandler assembles the festival routes.
func NewHandler(config Config) (http.Handler, error) {
	if config.Store == nil {
		return nil, errors.New("store is required")
	}
	sessions, err := adminauth.NewManager(config.SessionSecret, config.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	catalog := config.Catalog
	if catalog == nil {
		catalog, err = pages.Default()
		if err != nil {
			return nil, fmt.Errorf("load page catalog: %w", err)
		}
	}
	registry := config.Registry
	if registry == nil {
		registry, err = units.NewRegistry(config.Store)
		if err != nil {
			return nil, fmt.Errorf("build unit registry: %w", err)
		}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := config.Metrics
	if metrics == nil {
		metrics = prometheus.NewRegistry()
		metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	h := &handler{
		store:   config.Store,
		catalog: catalog,
		dispatcher: mount.NewDispatcher(registry,
			mount.WithReporter(mount.NewSlogReporter(logger)),
			mount.WithStrictMode(config.StrictMode),
			mount.WithMetrics(mount.NewMetrics(metrics)),
		),
		sessions: sessions,
		auth:     adminauth.NewAuthenticator(config.Store),
		policy:   config.RequestMeta,
		logger:   logger,
		now:      now,
	}

	requireAdmin := adminauth.Require(sessions, config.Store)

	mux := http.NewServeMux()
	mux.Handle("GET "+routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	mux.HandleFunc("GET "+routepath.Health, h.handleHealth)
	mux.Handle("GET "+routepath.Metrics, promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET "+routepath.UnitPattern, h.handlePublicUnit)
	mux.Handle("GET "+routepath.AdminUnitPattern, requireAdmin(http.HandlerFunc(h.handleAdminUnit)))

	mux.HandleFunc("POST "+routepath.Register, h.handleRegister)
	mux.HandleFunc("POST "+routepath.Tickets, h.handleTicketPurchase)
	mux.HandleFunc("POST "+routepath.Donate, h.handleDonate)

	mux.HandleFunc("POST "+routepath.AdminLogin, h.handleAdminLogin)
	mux.Handle("POST "+routepath.AdminLogout, requireAdmin(http.HandlerFunc(h.handleAdminLogout)))
	mux.Handle("POST "+routepath.AdminCheckIn, requireAdmin(http.HandlerFunc(h.handleCheckIn)))

	mux.HandleFunc("GET /", h.handlePage)

	return httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(logger),
		observability.NewRecorder(metrics).Middleware(logger),
	), nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			ctxlog.FromContext(r.Context(), h.logger).Error("health check failed", slog.Any("error", err))
			_ = httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
