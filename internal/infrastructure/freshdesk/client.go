// Package freshdesk is the HTTP client for the Freshdesk v2 API endpoints the
// closed-ticket sync consumes: ticket search and ticket detail.
package freshdesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"crmdesk/internal/infrastructure/metrics"
	"crmdesk/internal/shared/config"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/version"
)

const (
	maxResponseBytes = 10 << 20
	breakerName      = "freshdesk"
	detailIncludes   = "requester,company,stats"

	endpointSearch = "search"
	endpointDetail = "detail"
)

type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        logger.Interface
}

// NewClient builds a client for cfg. apiKey is passed separately because it is
// resolved from the environment or the keyring, not only from cfg.
func NewClient(cfg *config.FreshdeskConfig, apiKey string, log logger.Interface) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("freshdesk api key is not configured")
	}
	if cfg.BaseURL == "" && cfg.Domain == "" {
		return nil, fmt.Errorf("freshdesk domain or base_url is required")
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}
	burst := cfg.DetailConcurrency
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.GetBaseURL(), "/"),
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(limit, burst),
		log:        log.Named("freshdesk"),
	}
	c.breaker = newBreaker(cfg.Breaker, c.log)
	return c, nil
}

func newBreaker(cfg config.BreakerConfig, log logger.Interface) *gobreaker.CircuitBreaker[[]byte] {
	minRequests := cfg.MinRequests
	if minRequests == 0 {
		minRequests = 10
	}
	threshold := cfg.FailureThreshold
	if threshold <= 0 {
		threshold = 0.6
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= threshold
		},
		// a rejected request says nothing about the remote's health
		IsSuccessful: func(err error) bool {
			return err == nil || apperrors.IsType(err, apperrors.ErrorTypeRemoteRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// SearchTickets runs one page of a ticket search. The query is wrapped in
// double quotes as the search endpoint requires.
func (c *Client) SearchTickets(ctx context.Context, query string, page int) (*SearchPage, error) {
	params := url.Values{}
	params.Set("query", `"`+query+`"`)
	params.Set("page", strconv.Itoa(page))

	body, err := c.get(ctx, endpointSearch, "/api/v2/search/tickets", params)
	if err != nil {
		return nil, err
	}

	var result SearchPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.NewRemoteRejectedError("undecodable search response").WithCause(err)
	}
	return &result, nil
}

func (c *Client) GetTicket(ctx context.Context, id int64) (*Ticket, error) {
	params := url.Values{}
	params.Set("include", detailIncludes)

	body, err := c.get(ctx, endpointDetail, "/api/v2/tickets/"+strconv.FormatInt(id, 10), params)
	if err != nil {
		return nil, err
	}

	var t Ticket
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, apperrors.NewRemoteRejectedError("undecodable ticket response", strconv.FormatInt(id, 10)).WithCause(err)
	}
	return &t, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewRemoteUnavailableError("request not sent", err.Error()).WithCause(err)
	}

	started := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, path, params)
	})
	elapsed := time.Since(started)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordRemoteCall(endpoint, "rejected", elapsed)
			return nil, apperrors.NewRemoteUnavailableError("freshdesk circuit open").WithCause(err)
		}
		metrics.RecordRemoteCall(endpoint, outcome(err), elapsed)
		return nil, err
	}

	metrics.RecordRemoteCall(endpoint, "success", elapsed)
	return body, nil
}

func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// spaces as %20, not '+'
	target := c.baseURL + path + "?" + strings.ReplaceAll(params.Encode(), "+", "%20")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperrors.NewRemoteRejectedError("invalid request", err.Error()).WithCause(err)
	}
	req.SetBasicAuth(c.apiKey, "X")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		c.log.Warnw("freshdesk rate limit hit", "path", path, "retry_after", retryAfter)
		return nil, apperrors.NewRateLimitedError("freshdesk rate limit exceeded", retryAfter)
	case resp.StatusCode >= 500:
		return nil, apperrors.NewRemoteUnavailableError("freshdesk unavailable", resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apperrors.NewRemoteRejectedError("freshdesk rejected the request", resp.Status+": "+snippet(body))
	}
	return body, nil
}

func transportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewRemoteUnavailableError("freshdesk request timed out").WithCause(err)
	}
	return apperrors.NewRemoteUnavailableError("freshdesk unreachable", err.Error()).WithCause(err)
}

func outcome(err error) string {
	if app := apperrors.GetAppError(err); app != nil {
		return string(app.Type)
	}
	return "error"
}

// parseRetryAfter accepts delta-seconds; an HTTP date or garbage yields zero.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
