package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/consulting-site/internal/config"
	"github.com/wolfman30/consulting-site/internal/contact"
	httpmiddleware "github.com/wolfman30/consulting-site/internal/http/middleware"
	"github.com/wolfman30/consulting-site/internal/notify"
	"github.com/wolfman30/consulting-site/internal/observability/metrics"
	"github.com/wolfman30/consulting-site/internal/submissions"
	"github.com/wolfman30/consulting-site/internal/webhook"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

const contactRateLimitPrefix = "ratelimit:contact:"

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildContactLimiter returns the shared Redis limiter when a client is
// available and an in-process limiter otherwise. The returned func releases
// limiter resources.
func BuildContactLimiter(cfg *appconfig.Config, redisClient *redis.Client, logger *logging.Logger) (httpmiddleware.Limiter, func()) {
	if logger == nil {
		logger = logging.Default()
	}
	perMinute := cfg.ContactRateLimitPerMinute
	if perMinute <= 0 {
		logger.Info("contact rate limiting disabled")
		return nil, func() {}
	}
	if redisClient != nil {
		logger.Info("contact rate limiting via redis", "per_minute", perMinute)
		return httpmiddleware.NewRedisLimiter(redisClient, contactRateLimitPrefix, perMinute, time.Minute), func() {}
	}
	logger.Info("contact rate limiting in memory", "per_minute", perMinute)
	limiter := httpmiddleware.NewMemoryLimiter(perMinute)
	return limiter, limiter.Close
}

// ConnectPostgresPool opens and pings a pgx pool. It returns nil when
// databaseURL is empty.
func ConnectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) (*pgxpool.Pool, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create pgx pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	logger.Info("connected to postgres")
	return pool, nil
}

// BuildSubmissionRepository uses Postgres when a pool is given and keeps
// the log in memory otherwise.
func BuildSubmissionRepository(pool *pgxpool.Pool, logger *logging.Logger) submissions.Repository {
	if pool != nil {
		return submissions.NewPostgresRepository(pool)
	}
	if logger != nil {
		logger.Info("submission log kept in memory")
	}
	return submissions.NewInMemoryRepository()
}

// BuildFailureAlerter returns nil unless both SendGrid and an operator
// address are configured.
func BuildFailureAlerter(cfg *appconfig.Config, siteName string, logger *logging.Logger) *notify.FailureAlerter {
	sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
		SiteName:  siteName,
	}, logger)
	if sg == nil {
		return nil
	}
	return notify.NewFailureAlerter(sg, cfg.OperatorAlertEmail, siteName, logger)
}

// BuildContactService wires the webhook client and every attempt observer
// into the contact service.
func BuildContactService(cfg *appconfig.Config, m *metrics.SiteMetrics, repo submissions.Repository, alerter *notify.FailureAlerter, logger *logging.Logger) *contact.Service {
	client := webhook.NewClient(
		webhook.WithTimeout(cfg.ContactWebhookTimeout),
		webhook.WithLogger(logger),
		webhook.WithMetrics(m),
	)

	observers := []contact.Observer{
		contact.ObserverFunc(func(_ context.Context, a contact.Attempt) {
			m.ObserveSubmission(a.Status.String())
		}),
		submissions.NewRecorder(repo, logger, m),
	}
	if alerter != nil {
		observers = append(observers, alerter)
	}
	return contact.NewService(cfg.ContactWebhookURL, client, logger, observers...)
}
