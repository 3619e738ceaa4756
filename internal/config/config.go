package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	LogFormat     string

	// Contact form relay
	ContactWebhookURL         string
	ContactWebhookTimeout     time.Duration
	ContactRateLimitPerMinute int

	// Site copy; blank values fall back to the site package defaults
	CompanyName    string
	CompanyTagline string
	FooterText     string
	ContactEmail   string

	CORSAllowedOrigins []string
	// TrustedProxies lists proxy CIDRs whose forwarded headers are believed.
	TrustedProxies []string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	DatabaseURL    string
	AdminJWTSecret string

	// SendGrid Email Configuration
	SendGridAPIKey     string
	SendGridFromEmail  string
	SendGridFromName   string
	OperatorAlertEmail string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "json")),

		ContactWebhookURL:         strings.TrimSpace(getEnv("CONTACT_WEBHOOK_URL", "")),
		ContactWebhookTimeout:     getEnvAsDuration("CONTACT_WEBHOOK_TIMEOUT", 10*time.Second),
		ContactRateLimitPerMinute: getEnvAsInt("CONTACT_RATE_LIMIT_PER_MINUTE", 10),

		CompanyName:    getEnv("COMPANY_NAME", ""),
		CompanyTagline: getEnv("COMPANY_TAGLINE", getEnv("TAGLINE", "")),
		FooterText:     getEnv("FOOTER_TEXT", ""),
		ContactEmail:   getEnv("CONTACT_EMAIL", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		TrustedProxies:     getEnvAsList("TRUSTED_PROXIES"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		SendGridAPIKey:     getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail:  getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:   getEnv("SENDGRID_FROM_NAME", ""),
		OperatorAlertEmail: getEnv("OPERATOR_ALERT_EMAIL", ""),
	}
}

// IsProduction reports whether the server runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
