package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/consulting-site/pkg/logging"
)

type recordingMetrics struct {
	mu    sync.Mutex
	codes []int
}

func (r *recordingMetrics) ObserveWebhook(code int, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, code)
}

func TestNewClient(t *testing.T) {
	t.Run("creates client with defaults", func(t *testing.T) {
		client := NewClient()
		require.NotNil(t, client)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})

	t.Run("custom HTTP client wins", func(t *testing.T) {
		custom := &http.Client{Timeout: time.Second}
		client := NewClient(WithHTTPClient(custom))
		assert.Same(t, custom, client.httpClient)
	})

	t.Run("timeout option", func(t *testing.T) {
		client := NewClient(WithTimeout(2 * time.Second))
		assert.Equal(t, 2*time.Second, client.httpClient.Timeout)
	})
}

func TestPostJSON_Success(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	m := &recordingMetrics{}
	client := NewClient(WithMetrics(m), WithUserAgent("test-agent"))
	err := client.PostJSON(context.Background(), server.URL, map[string]string{"name": "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, []int{http.StatusNoContent}, m.codes)
}

func TestPostJSON_LogsUnderWebhookComponent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: "debug", Output: &buf})
	client := NewClient(WithLogger(logger))
	require.NoError(t, client.PostJSON(context.Background(), server.URL, map[string]string{"name": "Ada"}))

	assert.Contains(t, buf.String(), `"component":"webhook"`)
	assert.Contains(t, buf.String(), "webhook delivered")
}

func TestPostJSON_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	m := &recordingMetrics{}
	client := NewClient(WithMetrics(m))
	err := client.PostJSON(context.Background(), server.URL, map[string]string{})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Contains(t, statusErr.Error(), "502")
	assert.Equal(t, []int{http.StatusBadGateway}, m.codes)
}

func TestPostJSON_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m := &recordingMetrics{}
	client := NewClient(WithMetrics(m))
	err := client.PostJSON(context.Background(), url, map[string]string{})
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.Equal(t, []int{0}, m.codes)
}

func TestPostJSON_MissingURL(t *testing.T) {
	client := NewClient()
	err := client.PostJSON(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, ErrMissingURL)
}

func TestPostJSON_UnmarshalablePayload(t *testing.T) {
	client := NewClient()
	err := client.PostJSON(context.Background(), "http://127.0.0.1:1", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal payload")
}

func TestStatusErrorFallsBackToStatusText(t *testing.T) {
	err := &StatusError{Code: http.StatusTooManyRequests}
	assert.Equal(t, "webhook: endpoint returned 429 (Too Many Requests)", err.Error())
}
