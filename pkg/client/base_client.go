package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Sentinel errors shared by both upstream clients. The forecast
// service classifies on these to decide between the fallback path and
// a direct failure reply.
var (
	ErrQuotaExceeded  = errors.New("upstream quota exceeded")
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	ErrEmptyForecast  = errors.New("upstream returned no forecast data")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BaseClient is the outbound HTTP plumbing shared by the provider
// clients: bounded timeout, circuit breaker, status classification.
// There are no retries; every upstream call is attempted at most once
// per inbound request, and an open circuit fails fast.
type BaseClient struct {
	name    string
	client  HTTPClient
	logger  *zap.Logger
	breaker *gobreaker.CircuitBreaker
}

type ClientConfig struct {
	Timeout        time.Duration
	BreakerTimeout time.Duration
}

func NewBaseClient(name string, cfg ClientConfig, logger *zap.Logger) *BaseClient {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("client", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BaseClient{
		name:    name,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Get issues a single GET through the circuit breaker and returns the
// response body on 2xx. Quota statuses (402, 429) and other non-2xx
// statuses surface as distinct sentinel errors.
func (c *BaseClient) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doGet(ctx, url, headers)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *BaseClient) doGet(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request failed: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("HTTP request failed",
			zap.String("client", c.name),
			zap.Error(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusTooManyRequests:
		// Logged distinguishably: quota exhaustion is the one status
		// class that escalates to the fallback provider.
		c.logger.Warn("upstream quota exhausted",
			zap.String("client", c.name),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: HTTP %d", ErrQuotaExceeded, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("request successful",
		zap.String("client", c.name),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_size", len(body)))

	return body, nil
}
