package usecase

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/grocermatch/backend/internal/domain"
	"go.uber.org/zap"
)

// defaultCandidateLimit caps how many deduplicated candidates are
// accumulated per ingredient across all search terms. Once reached,
// remaining terms are not queried at all, bounding latency and API cost.
const defaultCandidateLimit = 20

// CandidateRetriever fetches and deduplicates catalog candidates for one
// ingredient, fanning a list of search terms into the catalog search
// collaborator.
type CandidateRetriever struct {
	searcher domain.CatalogSearcher
	limit    int
	logger   *zap.Logger
}

// NewCandidateRetriever creates a retriever. A non-positive limit falls
// back to the default candidate ceiling.
func NewCandidateRetriever(searcher domain.CatalogSearcher, limit int, logger *zap.Logger) *CandidateRetriever {
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateRetriever{searcher: searcher, limit: limit, logger: logger}
}

// Retrieve queries the catalog for each search term in order, merging and
// deduplicating results until the candidate ceiling is reached. A term
// whose transport call fails is skipped; retrieval only fails when every
// term fails. Zero candidates with at least one successful term returns
// ErrNoCandidates.
func (r *CandidateRetriever) Retrieve(ctx context.Context, terms []string, locationID string) ([]domain.CatalogProduct, error) {
	if len(terms) == 0 {
		return nil, domain.ErrNoCandidates
	}

	candidates := make([]domain.CatalogProduct, 0, r.limit)
	seen := make(map[string]struct{}, r.limit)
	failures := 0

	for _, term := range terms {
		if len(candidates) >= r.limit {
			break
		}
		if ctx.Err() != nil {
			return candidates, ctx.Err()
		}

		products, err := r.searcher.Search(ctx, term, locationID)
		if err != nil {
			failures++
			r.logger.Warn("catalog search term failed, skipping",
				zap.String("term", term),
				zap.String("location", locationID),
				zap.Error(err))
			continue
		}

		for _, product := range products {
			if len(candidates) >= r.limit {
				break
			}
			key := dedupKey(product)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, product)
		}
	}

	if failures == len(terms) {
		return nil, domain.ErrRetrievalFailed
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	return candidates, nil
}

// dedupKey identifies a product across search-term variants: productId
// first, then upc, then a structural hash of the payload. The key is
// independent of arrival order so deduplication stays deterministic.
func dedupKey(p domain.CatalogProduct) string {
	if p.ProductID != "" {
		return "id:" + p.ProductID
	}
	if p.UPC != "" {
		return "upc:" + p.UPC
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", p.Description, p.Brand, p.SizeLabel)
	return fmt.Sprintf("hash:%x", h.Sum64())
}
