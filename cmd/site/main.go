package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/consulting-site/internal/api/router"
	"github.com/wolfman30/consulting-site/internal/app/bootstrap"
	appconfig "github.com/wolfman30/consulting-site/internal/config"
	"github.com/wolfman30/consulting-site/internal/contact"
	httpmiddleware "github.com/wolfman30/consulting-site/internal/http/middleware"
	"github.com/wolfman30/consulting-site/internal/observability/metrics"
	"github.com/wolfman30/consulting-site/internal/site"
	"github.com/wolfman30/consulting-site/internal/submissions"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting consulting-site server",
		"env", cfg.Env,
		"port", cfg.Port,
		"webhook_configured", cfg.ContactWebhookURL != "",
	)
	logOptionalSettings(logger, optionalSettings())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) error {
	handler, cleanup, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.ContactWebhookTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// buildHandler wires every dependency behind the router. The returned func
// releases pools, clients and limiters.
func buildHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (http.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	trustedProxies, err := httpmiddleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, cleanup, err
	}

	metricsHandler, siteMetrics := setupMetrics()

	pool, err := bootstrap.ConnectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, cleanup, err
	}
	if pool != nil {
		closers = append(closers, pool.Close)
	}
	repo := bootstrap.BuildSubmissionRepository(pool, logger)

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		closers = append(closers, func() { _ = redisClient.Close() })
	}
	limiter, closeLimiter := bootstrap.BuildContactLimiter(cfg, redisClient, logger)
	closers = append(closers, closeLimiter)

	info := site.NewInfo(cfg.CompanyName, cfg.CompanyTagline, cfg.FooterText, cfg.ContactEmail, time.Now())
	alerter := bootstrap.BuildFailureAlerter(cfg, info.CompanyName, logger)
	if alerter != nil {
		// Runs before the pool and client closers; alerts in flight finish first.
		closers = append(closers, alerter.Wait)
	}
	contactService := bootstrap.BuildContactService(cfg, siteMetrics, repo, alerter, logger)

	engine, err := site.NewTemplateEngine()
	if err != nil {
		return nil, cleanup, err
	}
	content, err := site.LoadContent()
	if err != nil {
		return nil, cleanup, err
	}

	handler := router.New(&router.Config{
		Logger:             logger,
		SiteHandler:        site.NewHandler(engine, content, info, contactService, siteMetrics, logger),
		ContactHandler:     contact.NewHandler(contactService, logger),
		SubmissionsHandler: submissions.NewHandler(repo, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TrustedProxies:     trustedProxies,
		Production:         cfg.IsProduction(),
		ContactLimiter:     limiter,
		RateLimitMetrics:   siteMetrics,
		AdminAuthSecret:    cfg.AdminJWTSecret,
	})
	return handler, cleanup, nil
}

func setupMetrics() (http.Handler, *metrics.SiteMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewSiteMetrics(reg)
}

// setting reports whether an optional environment variable was provided.
type setting struct {
	Name       string
	Configured bool
}

var optionalSettingNames = []string{
	"CONTACT_WEBHOOK_URL",
	"COMPANY_NAME",
	"COMPANY_TAGLINE",
	"TAGLINE",
	"CONTACT_EMAIL",
	"FOOTER_TEXT",
}

func optionalSettings() []setting {
	out := make([]setting, 0, len(optionalSettingNames))
	for _, name := range optionalSettingNames {
		out = append(out, setting{Name: name, Configured: strings.TrimSpace(os.Getenv(name)) != ""})
	}
	return out
}

// logOptionalSettings logs one line per optional variable so a missing
// value is visible in deploy logs instead of silently falling back.
func logOptionalSettings(logger *logging.Logger, settings []setting) {
	for _, s := range settings {
		if s.Configured {
			logger.Info("setting configured", "name", s.Name)
			continue
		}
		logger.Info("setting not set, using default", "name", s.Name)
	}
}
