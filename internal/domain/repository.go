package domain

import (
	"context"
	"time"
)

// CatalogSearcher is the capability interface for the retailer catalog
// search collaborator. The matching core treats it as a black box:
// authentication, retries, and caching are the implementation's concern.
type CatalogSearcher interface {
	Search(ctx context.Context, term, locationID string) ([]CatalogProduct, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
