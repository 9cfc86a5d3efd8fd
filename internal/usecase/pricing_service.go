package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/grocermatch/backend/internal/domain"
	"github.com/grocermatch/backend/internal/units"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fallbackConfidenceFactor discounts the match confidence when the cost
// came from the count-based fallback rather than a real pack-size
// proration.
const fallbackConfidenceFactor = 0.6

// maxAlternatives is how many scored candidates are kept per result as an
// audit/override list.
const maxAlternatives = 3

// PricingConfig holds configuration for the pricing service
type PricingConfig struct {
	// Concurrency bounds the per-ingredient worker pool. Ingredient
	// matching is independent and side-effect-free, but the retailer API
	// has rate limits, so fan-out is capped rather than unbounded.
	Concurrency int
	// CandidateLimit caps candidates accumulated per ingredient.
	CandidateLimit int
	Weights        ScoringWeights
}

// PricingService is the exposed matching and cost-estimation pipeline:
// ingredient -> search terms -> candidates -> ranked match -> cost.
type PricingService struct {
	retriever   *CandidateRetriever
	queries     *QueryBuilder
	scorer      *ScoringService
	estimator   *CostEstimator
	concurrency int
	logger      *zap.Logger
}

// NewPricingService wires the pipeline around a catalog search
// collaborator.
func NewPricingService(searcher domain.CatalogSearcher, cfg PricingConfig, logger *zap.Logger) *PricingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &PricingService{
		retriever:   NewCandidateRetriever(searcher, cfg.CandidateLimit, logger),
		queries:     NewQueryBuilder(),
		scorer:      NewScoringService(cfg.Weights, logger),
		estimator:   NewCostEstimator(logger),
		concurrency: concurrency,
		logger:      logger,
	}
}

// PriceIngredients prices every ingredient of a recipe and aggregates the
// results. The batch never fails because of one ingredient: unmatched or
// unpriced ingredients degrade to zero-cost, low-confidence records. The
// only batch-level failure is an invalid ingredient list, reported before
// any retrieval. Cancelling ctx stops further catalog calls; completed
// ingredients are still returned in the summary alongside the context
// error.
func (s *PricingService) PriceIngredients(
	ctx context.Context,
	ingredients []domain.Ingredient,
	servings int,
	locationID string,
) (*domain.RecipePricingSummary, error) {
	if len(ingredients) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	for _, ingredient := range ingredients {
		if !ingredient.Valid() {
			return nil, domain.ErrInvalidRequest
		}
	}

	results := make([]domain.PricingResult, len(ingredients))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, ingredient := range ingredients {
		i, ingredient := i, ingredient
		group.Go(func() error {
			if groupCtx.Err() != nil {
				results[i] = unavailableResult(ingredient)
				return nil
			}
			results[i] = s.priceOne(groupCtx, ingredient, locationID)
			return nil
		})
	}
	// Workers never return errors; degradation is per-result.
	_ = group.Wait()

	summary := &domain.RecipePricingSummary{
		RunID:    uuid.NewString(),
		Results:  results,
		Servings: servings,
	}
	for _, r := range results {
		summary.TotalCost += r.EstimatedCost
	}
	divisor := servings
	if divisor < 1 {
		divisor = 1
	}
	summary.CostPerServing = summary.TotalCost / float64(divisor)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// priceOne runs the full pipeline for a single ingredient. It never
// returns an error: every failure mode degrades to an unavailable or
// unpriced result.
func (s *PricingService) priceOne(ctx context.Context, ingredient domain.Ingredient, locationID string) domain.PricingResult {
	required := units.Quantity{
		Amount: ingredient.Amount,
		Unit:   units.Normalize(ingredient.Unit),
	}

	terms := s.queries.BuildSearchTerms(ingredient)
	hint := s.queries.ClassifyCategory(ingredient.Name)

	candidates, err := s.retriever.Retrieve(ctx, terms, locationID)
	if err != nil {
		s.logger.Info("ingredient unavailable",
			zap.String("ingredient", ingredient.Name),
			zap.Strings("terms", terms),
			zap.Error(err))
		return unavailableResult(ingredient)
	}

	ranked := s.scorer.Rank(ingredient, required, candidates, hint)
	winner := ranked[0]

	alternatives := ranked
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	estimate, priced := s.estimator.Estimate(ingredient, required, winner.Product)
	if !priced {
		result := unavailableResult(ingredient)
		result.MatchedProduct = &winner.Product
		result.Alternatives = alternatives
		return result
	}

	confidence := winner.Score
	if estimate.Fallback {
		confidence *= fallbackConfidenceFactor
	}

	return domain.PricingResult{
		IngredientName: ingredient.Name,
		UnitPrice:      estimate.UnitPrice,
		PortionCost:    estimate.EstimatedCost,
		EstimatedCost:  estimate.EstimatedCost,
		PackagesToBuy:  estimate.Packages,
		PackageSize:    estimate.PackageSize,
		PackagePrice:   estimate.PackagePrice,
		Confidence:     confidence,
		MatchedProduct: &winner.Product,
		Alternatives:   alternatives,
	}
}

// unavailableResult is the degraded record for an ingredient that could
// not be matched or priced: zero cost, zero confidence, flagged so the
// caller can prompt for a manual substitute.
func unavailableResult(ingredient domain.Ingredient) domain.PricingResult {
	return domain.PricingResult{
		IngredientName: ingredient.Name,
		Unavailable:    true,
	}
}
