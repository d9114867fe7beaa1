package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"exchange-map-service/internal/domain/model"
	"exchange-map-service/internal/domain/ports"
	"exchange-map-service/internal/metrics"
	"exchange-map-service/pkg/logger"
)

const (
	DefaultTimeout = 15 * time.Second

	// Some sources reject Go's default client identifier.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"

	maxBodySize = 8 << 20
)

// Client is the HTTP transport shared by all source fetchers.
type Client struct {
	httpClient *http.Client
	userAgent  string
	log        *logger.Logger
	metrics    *metrics.Metrics
}

func NewClient(timeout time.Duration, userAgent string, log *logger.Logger, m *metrics.Metrics) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		log:       log,
		metrics:   m,
	}
}

// get issues a single GET and returns the body. Any failure, including a
// non-2xx status, comes back as a network FetchError.
func (c *Client) get(ctx context.Context, source model.SourceID, url string, headers map[string]string) ([]byte, error) {
	start := time.Now()
	body, err := c.do(ctx, url, headers)
	c.observe(source, start, err)
	if err != nil {
		return nil, model.NewNetworkError(source, err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("source returned non-2xx status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (c *Client) observe(source model.SourceID, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	c.metrics.SourceFetchTotal.WithLabelValues(source.String(), result).Inc()
	c.metrics.SourceFetchDuration.WithLabelValues(source.String()).Observe(time.Since(start).Seconds())
}

// cachedFetch serves key from cache when fresh, otherwise runs fetch and
// stores its result. Failures are never cached.
func cachedFetch(
	ctx context.Context,
	cache ports.RateCache,
	key model.SourceID,
	fetch func(ctx context.Context) ([]model.RateQuote, error),
) ([]model.RateQuote, error) {
	if rates, found := cache.Get(ctx, key); found {
		return rates, nil
	}

	rates, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	cache.Set(ctx, key, rates)
	return rates, nil
}
