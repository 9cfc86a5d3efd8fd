// Package grocer implements the retailer catalog search collaborator: a
// rate-limited HTTP client for the grocer product API plus the mapper
// that normalizes its varying payload shapes into domain.CatalogProduct.
package grocer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/grocermatch/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	searchPageSize = 20
	maxAttempts    = 3
)

// Client handles communication with the retailer product catalog API.
// It owns transport concerns the matching core must not see: rate
// limiting, retries, timeouts, and response caching.
type Client struct {
	http        *resty.Client
	apiKey      string
	rateLimiter *rate.Limiter
	cache       domain.CacheRepository
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewClient creates a catalog client. cache may be nil to disable
// search-response caching.
func NewClient(apiKey, baseURL string, cache domain.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("User-Agent", "GrocerMatch/1.0")

	// The retailer allows a generous per-second budget; the burst absorbs
	// the per-ingredient term fan-out.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		http:        httpClient,
		apiKey:      apiKey,
		rateLimiter: limiter,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Search queries the catalog for a term at a store location and returns
// normalized products. Transient failures are retried with exponential
// backoff; a 404 or an empty result list is returned as an empty slice,
// not an error, so retrieval can move on to the next term variant.
func (c *Client) Search(ctx context.Context, term, locationID string) ([]domain.CatalogProduct, error) {
	cacheKey := fmt.Sprintf("catalog:%s:%s", locationID, term)
	if products, ok := c.fromCache(ctx, cacheKey); ok {
		return products, nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(c.apiKey).
			SetQueryParams(map[string]string{
				"filter.term":       term,
				"filter.locationId": locationID,
				"filter.limit":      fmt.Sprintf("%d", searchPageSize),
			}).
			Get("/v1/products")
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrCatalogAPIFailure, err)
			c.logger.Warn("catalog request failed",
				zap.String("term", term), zap.Int("attempt", attempt), zap.Error(err))
			sleepContext(ctx, exponentialBackoff(attempt))
			continue
		}

		switch {
		case resp.StatusCode() == http.StatusNotFound:
			return nil, nil
		case resp.StatusCode() == http.StatusTooManyRequests:
			lastErr = domain.ErrRateLimited
			sleepContext(ctx, exponentialBackoff(attempt))
			continue
		case resp.StatusCode() != http.StatusOK:
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogAPIFailure, resp.StatusCode())
			c.logger.Warn("catalog API error",
				zap.String("term", term),
				zap.Int("status", resp.StatusCode()),
				zap.Int("attempt", attempt))
			sleepContext(ctx, exponentialBackoff(attempt))
			continue
		}

		var payload searchResponse
		if err := json.Unmarshal(resp.Body(), &payload); err != nil {
			return nil, fmt.Errorf("decode catalog response: %w", err)
		}

		products := mapSearchResponse(payload)
		c.toCache(ctx, cacheKey, products)
		c.logger.Debug("catalog search",
			zap.String("term", term),
			zap.String("location", locationID),
			zap.Int("products", len(products)))
		return products, nil
	}

	return nil, lastErr
}

// exponentialBackoff doubles the wait per attempt: 500ms, 1s, 2s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// fromCache loads a cached search response. Values are stored as JSON so
// the same code path works for both the memory and redis caches.
func (c *Client) fromCache(ctx context.Context, key string) ([]domain.CatalogProduct, bool) {
	if c.cache == nil {
		return nil, false
	}
	value, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	raw, ok := value.(string)
	if !ok {
		return nil, false
	}
	var products []domain.CatalogProduct
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *Client) toCache(ctx context.Context, key string, products []domain.CatalogProduct) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(raw), c.cacheTTL); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
