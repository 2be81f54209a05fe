// Package gagapi fetches live stock from the Grow a Garden inventory API.
package gagapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/stock"
	"github.com/example/gardenwatch/internal/metrics"
	"github.com/example/gardenwatch/internal/ports/secondary"
)

// DefaultBaseURL is the public inventory API.
const DefaultBaseURL = "https://gagapi.onrender.com"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	Category   category.Category
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s endpoint returned status %d", e.Category, e.StatusCode)
}

// Options configures a Fetcher.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client

	// Breaker settings. Zero values fall back to the defaults below.
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

const (
	defaultTimeout          = 10 * time.Second
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 60 * time.Second
)

// Fetcher implements secondary.StockFetcher with one circuit breaker per category.
type Fetcher struct {
	baseURL  string
	timeout  time.Duration
	client   *http.Client
	breakers map[category.Category]*gobreaker.CircuitBreaker
}

// NewFetcher creates a Fetcher for the given options.
func NewFetcher(opts Options) *Fetcher {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	threshold := opts.FailureThreshold
	if threshold == 0 {
		threshold = defaultFailureThreshold
	}
	openTimeout := opts.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = defaultOpenTimeout
	}

	f := &Fetcher{
		baseURL:  baseURL,
		timeout:  timeout,
		client:   client,
		breakers: make(map[category.Category]*gobreaker.CircuitBreaker, len(category.All())),
	}
	for _, c := range category.All() {
		f.breakers[c] = newBreaker(c, threshold, openTimeout)
	}
	return f
}

func newBreaker(c category.Category, threshold uint32, openTimeout time.Duration) *gobreaker.CircuitBreaker {
	metrics.CircuitBreakerState.WithLabelValues(string(c)).Set(0)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gagapi-" + string(c),
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("fetch circuit breaker state changed",
				"category", c,
				"from", from.String(),
				"to", to.String(),
			)
			metrics.CircuitBreakerState.WithLabelValues(string(c)).Set(stateToFloat(to))
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

var _ secondary.StockFetcher = (*Fetcher)(nil)

// Fetch returns the current stock for c in API order.
func (f *Fetcher) Fetch(ctx context.Context, c category.Category) ([]stock.Entry, error) {
	cb, ok := f.breakers[c]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", c)
	}

	start := time.Now()
	result, err := cb.Execute(func() (interface{}, error) {
		return f.get(ctx, c)
	})
	metrics.FetchDuration.WithLabelValues(string(c)).Observe(time.Since(start).Seconds())

	if err != nil {
		status := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			status = "breaker_open"
		}
		metrics.FetchTotal.WithLabelValues(string(c), status).Inc()
		return nil, fmt.Errorf("failed to fetch %s: %w", c, err)
	}

	metrics.FetchTotal.WithLabelValues(string(c), "success").Inc()
	return result.([]stock.Entry), nil
}

// BreakerState reports the breaker state for c (for status output and tests).
func (f *Fetcher) BreakerState(c category.Category) gobreaker.State {
	if cb, ok := f.breakers[c]; ok {
		return cb.State()
	}
	return gobreaker.StateClosed
}

func (f *Fetcher) get(ctx context.Context, c category.Category) ([]stock.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+c.Path(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Category: c, StatusCode: resp.StatusCode}
	}

	var entries []stock.Entry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if entries == nil {
		return nil, errors.New("response is not a JSON array")
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("malformed entry %d: %w", i, err)
		}
	}
	return entries, nil
}
