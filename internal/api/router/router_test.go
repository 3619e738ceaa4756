package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/consulting-site/internal/contact"
	httpmiddleware "github.com/wolfman30/consulting-site/internal/http/middleware"
	"github.com/wolfman30/consulting-site/internal/site"
	"github.com/wolfman30/consulting-site/internal/submissions"
	"github.com/wolfman30/consulting-site/internal/webhook"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

const testAdminSecret = "router-secret"

type testEnv struct {
	handler http.Handler
	repo    *submissions.InMemoryRepository
}

func newTestRouter(t *testing.T, endpoint string, limiter httpmiddleware.Limiter) testEnv {
	t.Helper()
	return newTestRouterWith(t, endpoint, limiter, nil)
}

func newTestRouterWith(t *testing.T, endpoint string, limiter httpmiddleware.Limiter, configure func(*Config)) testEnv {
	t.Helper()

	logger := logging.New("error")
	repo := submissions.NewInMemoryRepository()
	recorder := submissions.NewRecorder(repo, logger, nil)
	service := contact.NewService(endpoint, webhook.NewClient(webhook.WithLogger(logger)), logger, recorder)

	engine, err := site.NewTemplateEngine()
	require.NoError(t, err)
	content, err := site.LoadContent()
	require.NoError(t, err)

	cfg := &Config{
		Logger:             logger,
		SiteHandler:        site.NewHandler(engine, content, site.DefaultInfo(), service, nil, logger),
		ContactHandler:     contact.NewHandler(service, logger),
		SubmissionsHandler: submissions.NewHandler(repo, logger),
		MetricsHandler:     http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		ContactLimiter:     limiter,
		AdminAuthSecret:    testAdminSecret,
	}
	if configure != nil {
		configure(cfg)
	}
	return testEnv{handler: New(cfg), repo: repo}
}

func TestRouterHealthEndpoint(t *testing.T) {
	env := newTestRouter(t, "", nil)

	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestRouterPages(t *testing.T) {
	env := newTestRouter(t, "", nil)

	for _, path := range []string{"/", "/about", "/services", "/contact", "/static/css/site.css", "/metrics"} {
		rr := httptest.NewRecorder()
		env.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestRouterNotFound(t *testing.T) {
	env := newTestRouter(t, "", nil)

	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page Not Found")
}

func TestRouterContactAPIRecordsSubmission(t *testing.T) {
	webhookSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer webhookSrv.Close()
	env := newTestRouter(t, webhookSrv.URL, nil)

	body := `{"name":"Ada","email":"ada@example.com","company":"","message":"Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp contact.SubmitResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, contact.StatusSuccess, resp.Status)
	assert.True(t, resp.Form.IsEmpty())

	logged, err := env.repo.List(req.Context(), submissions.ListFilter{})
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, "success", logged[0].Status)
}

func TestRouterContactFormRateLimited(t *testing.T) {
	limiter := httpmiddleware.NewMemoryLimiter(1)
	defer limiter.Close()
	env := newTestRouter(t, "", limiter)

	post := func() int {
		values := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		env.handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}

func TestRouterAdminRequiresToken(t *testing.T) {
	env := newTestRouter(t, "", nil)

	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/submissions", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "operator",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	signed, err := token.SignedString([]byte(testAdminSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr = httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func postContactFrom(env testEnv, remote, forwardedFor string) int {
	values := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = remote
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	return rr.Code
}

func TestRouterRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	limiter := httpmiddleware.NewMemoryLimiter(1)
	defer limiter.Close()
	env := newTestRouter(t, "", limiter)

	var codes []int
	for i := 1; i <= 5; i++ {
		codes = append(codes, postContactFrom(env, "198.51.100.7:4000", fmt.Sprintf("10.0.0.%d", i)))
	}

	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
}

func TestRouterRateLimitKeysOnClientBehindTrustedProxy(t *testing.T) {
	limiter := httpmiddleware.NewMemoryLimiter(1)
	defer limiter.Close()
	trusted, err := httpmiddleware.ParseTrustedProxies([]string{"10.9.0.0/16"})
	require.NoError(t, err)
	env := newTestRouterWith(t, "", limiter, func(cfg *Config) { cfg.TrustedProxies = trusted })

	// Two clients behind the same proxy get separate buckets.
	assert.Equal(t, http.StatusOK, postContactFrom(env, "10.9.0.1:443", "203.0.113.1"))
	assert.Equal(t, http.StatusOK, postContactFrom(env, "10.9.0.1:443", "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, postContactFrom(env, "10.9.0.1:443", "203.0.113.1"))
}
