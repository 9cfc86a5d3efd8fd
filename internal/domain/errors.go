package domain

import "errors"

var (
	// ErrInvalidRequest is returned when the ingredient list itself is
	// invalid (empty or malformed); it is the only batch-level failure.
	ErrInvalidRequest = errors.New("invalid pricing request")

	// ErrNoCandidates is returned when every search term for an ingredient
	// produced zero candidates after deduplication.
	ErrNoCandidates = errors.New("no catalog candidates found")

	// ErrRetrievalFailed is returned when the catalog search transport
	// failed for every search term of an ingredient.
	ErrRetrievalFailed = errors.New("catalog retrieval failed for all search terms")

	// ErrNoPrice is returned when a matched product carries no resolvable
	// price at the current retailer location.
	ErrNoPrice = errors.New("product has no resolvable price")

	// ErrCatalogAPIFailure is returned when a retailer catalog API request fails
	ErrCatalogAPIFailure = errors.New("catalog API request failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
