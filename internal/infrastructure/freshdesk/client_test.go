package freshdesk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/shared/config"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(&config.FreshdeskConfig{
		BaseURL:           baseURL,
		TimeoutSeconds:    2,
		DetailConcurrency: 10,
		Breaker: config.BreakerConfig{
			MaxRequests:      1,
			TimeoutSeconds:   60,
			MinRequests:      10,
			FailureThreshold: 0.6,
		},
	}, "secret-key", logger.NewDiscard())
	require.NoError(t, err)
	return c
}

func TestSearchTickets_SendsQuotedQueryAndBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "secret-key", user)
		assert.Equal(t, "X", pass)
		assert.Equal(t, "/api/v2/search/tickets", r.URL.Path)
		assert.Equal(t, `"status:5 AND updated_at:>'2025-01-01'"`, r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.NotContains(t, r.URL.RawQuery, "+")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total":2,"results":[{"id":100,"updated_at":"2025-01-02T10:00:00Z"},{"id":101,"updated_at":"2025-01-03T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv.URL).SearchTickets(context.Background(), "status:5 AND updated_at:>'2025-01-01'", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Results, 2)
	assert.EqualValues(t, 101, page.Results[1].ID)
}

func TestGetTicket_DecodesIncludes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/tickets/100", r.URL.Path)
		assert.Equal(t, "requester,company,stats", r.URL.Query().Get("include"))
		_, _ = w.Write([]byte(`{
			"id":100,"subject":"Printer jam","status":5,"priority":2,"type":"Incident",
			"requester":{"id":7,"name":"Ana","email":"ana@acme.mx"},
			"company":{"id":3,"name":"Acme Corp"},
			"stats":{"closed_at":"2025-01-02T10:00:00Z"},
			"custom_fields":{"cf_branch":"Centro"},
			"created_at":"2025-01-01T09:00:00Z","updated_at":"2025-01-02T10:00:00Z"}`))
	}))
	defer srv.Close()

	tk, err := newTestClient(t, srv.URL).GetTicket(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "Printer jam", tk.Subject)
	require.NotNil(t, tk.Company)
	assert.Equal(t, "Acme Corp", tk.Company.Name)
	require.NotNil(t, tk.Requester)
	assert.Equal(t, "ana@acme.mx", tk.Requester.Email)
	assert.Equal(t, "Centro", tk.CustomFields["cf_branch"])
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		header   map[string]string
		wantType apperrors.ErrorType
	}{
		{"rate limited", http.StatusTooManyRequests, `{}`, map[string]string{"Retry-After": "30"}, apperrors.ErrorTypeRateLimited},
		{"server error", http.StatusServiceUnavailable, `oops`, nil, apperrors.ErrorTypeRemoteUnavailable},
		{"bad query", http.StatusBadRequest, `{"description":"Validation failed"}`, nil, apperrors.ErrorTypeRemoteRejected},
		{"undecodable", http.StatusOK, `<html>`, nil, apperrors.ErrorTypeRemoteRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).SearchTickets(context.Background(), "status:5", 1)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestClient_RateLimitedCarriesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).GetTicket(context.Background(), 1)
	app := apperrors.GetAppError(err)
	require.NotNil(t, app)
	assert.Equal(t, 30*time.Second, app.RetryAfter)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).GetTicket(context.Background(), 1)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteUnavailable))
}

func TestClient_BreakerOpensAndFailsFast(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	for i := 0; i < 10; i++ {
		_, _ = c.GetTicket(context.Background(), int64(i))
	}
	require.EqualValues(t, 10, hits.Load())

	_, err := c.GetTicket(context.Background(), 99)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteUnavailable))
	assert.EqualValues(t, 10, hits.Load(), "open breaker must not reach the server")
}

func TestClient_RejectionsDoNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	for i := 0; i < 12; i++ {
		_, err := c.GetTicket(context.Background(), int64(i))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteRejected))
	}
	assert.EqualValues(t, 12, hits.Load())
}

func TestNewClient_RequiresKeyAndDomain(t *testing.T) {
	_, err := NewClient(&config.FreshdeskConfig{Domain: "acme"}, "", logger.NewDiscard())
	assert.Error(t, err)
	_, err = NewClient(&config.FreshdeskConfig{}, "key", logger.NewDiscard())
	assert.Error(t, err)
}
