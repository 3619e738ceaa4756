package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/consulting-site/internal/contact"
	"github.com/wolfman30/consulting-site/internal/webhook"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

type pageCounter struct {
	mu    sync.Mutex
	views map[string]int
}

func (p *pageCounter) ObservePageView(page string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.views == nil {
		p.views = map[string]int{}
	}
	p.views[page]++
}

func newTestHandler(t *testing.T, endpoint string) (*Handler, *pageCounter) {
	t.Helper()
	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	content, err := LoadContent()
	require.NoError(t, err)

	logger := logging.New("error")
	service := contact.NewService(endpoint, webhook.NewClient(webhook.WithLogger(logger)), logger)
	counter := &pageCounter{}
	return NewHandler(engine, content, DefaultInfo(), service, counter, logger), counter
}

func postForm(h *Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ContactSubmit(rec, req)
	return rec
}

func filledValues() url.Values {
	return url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"company": {"Analytical Engines"},
		"message": {"Hello"},
	}
}

func TestPages(t *testing.T) {
	h, counter := newTestHandler(t, "")

	cases := []struct {
		name    string
		handler http.HandlerFunc
		path    string
		want    string
	}{
		{"home", h.Home, "/", "Why teams work with us"},
		{"about", h.About, "/about", "Our Mission"},
		{"services", h.ServicesPage, "/services", "Staff Augmentation"},
		{"contact", h.ContactPage, "/contact", "Send Message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.handler(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
	assert.Equal(t, 1, counter.views["services"])
	assert.Equal(t, 1, counter.views["contact"])
}

func TestNotFound(t *testing.T) {
	h, counter := newTestHandler(t, "")
	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
	assert.Equal(t, 1, counter.views["not_found"])
}

func TestContactPageStartsIdle(t *testing.T) {
	h, _ := newTestHandler(t, "")
	rec := httptest.NewRecorder()
	h.ContactPage(rec, httptest.NewRequest(http.MethodGet, "/contact", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `data-status="idle"`)
	assert.NotContains(t, body, " disabled")
}

func TestContactSubmitMissingFields(t *testing.T) {
	h, _ := newTestHandler(t, "http://127.0.0.1:1/unused")
	values := filledValues()
	values.Set("email", "")

	rec := postForm(h, values)

	body := rec.Body.String()
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body, "Please fill in the required fields.")
	assert.Contains(t, body, `name="email" required value="" placeholder="your.email@company.com" aria-invalid="true"`)
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, `data-status="idle"`)
}

func TestContactSubmitConfigError(t *testing.T) {
	h, _ := newTestHandler(t, "")

	rec := postForm(h, filledValues())

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `data-status="config_error"`)
	assert.Contains(t, body, "Contact form is not configured yet.")
	assert.Contains(t, body, `value="Ada"`)
}

func TestContactSubmitSuccessClearsForm(t *testing.T) {
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	h, _ := newTestHandler(t, srv.URL)
	rec := postForm(h, filledValues())

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `data-status="success"`)
	assert.Contains(t, body, "Thank you for your message!")
	assert.NotContains(t, body, `value="Ada"`)
	assert.JSONEq(t, `{"name":"Ada","email":"ada@example.com","company":"Analytical Engines","message":"Hello"}`, received)
}

func TestContactSubmitWebhookFailureKeepsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	h, _ := newTestHandler(t, srv.URL)
	rec := postForm(h, filledValues())

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `data-status="error"`)
	assert.Contains(t, body, "Please try again or email us directly.")
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, ">Hello</textarea>")
}

func TestStatusMessage(t *testing.T) {
	for _, status := range []contact.Status{contact.StatusIdle, contact.StatusSending} {
		msg, tone := StatusMessage(status)
		assert.Empty(t, msg)
		assert.Empty(t, tone)
	}
	_, tone := StatusMessage(contact.StatusError)
	assert.Equal(t, "error", tone)
}
