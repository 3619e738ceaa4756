package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appconfig "github.com/wolfman30/consulting-site/internal/config"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

func TestSetupMetricsExposesSiteMetrics(t *testing.T) {
	handler, m := setupMetrics()
	if handler == nil || m == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	m.ObservePageView("home")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "site_pages_views_total") {
		t.Fatalf("expected page view counter to be exported")
	}
}

func TestBuildHandlerWithoutBackingServices(t *testing.T) {
	cfg := &appconfig.Config{
		Port:                      "0",
		Env:                       "test",
		ContactWebhookTimeout:     time.Second,
		ContactRateLimitPerMinute: 10,
	}
	handler, cleanup, err := buildHandler(context.Background(), cfg, logging.New("error"))
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/", "/contact", "/health"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","company":"","message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected config_error to map to 503, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"config_error"`) {
		t.Fatalf("expected config_error status, got %s", rr.Body.String())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := &appconfig.Config{Port: "0", ContactWebhookTimeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, logging.New("error")) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestOptionalSettingsReport(t *testing.T) {
	for _, name := range optionalSettingNames {
		t.Setenv(name, "")
	}
	t.Setenv("COMPANY_NAME", "Acme")
	t.Setenv("TAGLINE", "   ")

	got := map[string]bool{}
	for _, s := range optionalSettings() {
		got[s.Name] = s.Configured
	}
	if len(got) != len(optionalSettingNames) {
		t.Fatalf("expected %d settings, got %d", len(optionalSettingNames), len(got))
	}
	if !got["COMPANY_NAME"] {
		t.Fatalf("expected COMPANY_NAME configured")
	}
	if got["TAGLINE"] || got["CONTACT_EMAIL"] || got["FOOTER_TEXT"] {
		t.Fatalf("expected blank settings to report defaults, got %v", got)
	}

	var buf bytes.Buffer
	logOptionalSettings(logging.NewWithOptions(logging.Options{Output: &buf}), optionalSettings())
	out := buf.String()
	if !strings.Contains(out, `"msg":"setting configured","name":"COMPANY_NAME"`) {
		t.Fatalf("expected configured line for COMPANY_NAME, got %s", out)
	}
	if !strings.Contains(out, `"msg":"setting not set, using default","name":"CONTACT_EMAIL"`) {
		t.Fatalf("expected default line for CONTACT_EMAIL, got %s", out)
	}
}

func TestBuildHandlerRejectsBadTrustedProxy(t *testing.T) {
	cfg := &appconfig.Config{ContactWebhookTimeout: time.Second, TrustedProxies: []string{"not-a-cidr/x"}}
	_, cleanup, err := buildHandler(context.Background(), cfg, logging.New("error"))
	defer cleanup()
	if err == nil {
		t.Fatalf("expected invalid TRUSTED_PROXIES to fail")
	}
}
