package router

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/consulting-site/internal/contact"
	httpmiddleware "github.com/wolfman30/consulting-site/internal/http/middleware"
	"github.com/wolfman30/consulting-site/internal/site"
	"github.com/wolfman30/consulting-site/internal/submissions"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	SiteHandler        *site.Handler
	ContactHandler     *contact.Handler
	SubmissionsHandler *submissions.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	// TrustedProxies may set the client address via forwarded headers.
	TrustedProxies []netip.Prefix
	Production     bool

	// ContactLimiter throttles the contact POST routes (optional).
	ContactLimiter   httpmiddleware.Limiter
	RateLimitMetrics httpmiddleware.RateLimitMetrics
	AdminAuthSecret  string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(httpmiddleware.RealIP(cfg.TrustedProxies))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(httpmiddleware.SecurityHeaders(cfg.Production))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(site.StaticFS()))))

	limit := func(next http.Handler) http.Handler { return next }
	if cfg.ContactLimiter != nil {
		limit = httpmiddleware.RateLimit(cfg.ContactLimiter, cfg.RateLimitMetrics, cfg.Logger)
	}

	if cfg.SiteHandler != nil {
		r.Get("/", cfg.SiteHandler.Home)
		r.Get("/about", cfg.SiteHandler.About)
		r.Get("/services", cfg.SiteHandler.ServicesPage)
		r.Get("/contact", cfg.SiteHandler.ContactPage)
		r.With(limit).Post("/contact", cfg.SiteHandler.ContactSubmit)
		r.NotFound(cfg.SiteHandler.NotFound)
	}
	if cfg.ContactHandler != nil {
		r.With(limit).Post("/api/contact", cfg.ContactHandler.Submit)
	}

	// Operator endpoints; only mounted when a signing secret is configured.
	if cfg.SubmissionsHandler != nil && cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/submissions", cfg.SubmissionsHandler.List)
			admin.Get("/submissions/{id}", cfg.SubmissionsHandler.Get)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
