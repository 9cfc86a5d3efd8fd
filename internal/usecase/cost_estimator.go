package usecase

import (
	"math"

	"github.com/grocermatch/backend/internal/domain"
	"github.com/grocermatch/backend/internal/units"
	"go.uber.org/zap"
)

// CostEstimator turns a matched product plus a required quantity into a
// monetary estimate: unit price, packages to buy, and the portion of the
// package price attributable to the recipe.
type CostEstimator struct {
	logger *zap.Logger
}

// NewCostEstimator creates a cost estimator
func NewCostEstimator(logger *zap.Logger) *CostEstimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CostEstimator{logger: logger}
}

// Estimate computes the cost estimate for one ingredient against its
// matched product. The estimator never returns NaN or Inf: when the pack
// size is unparseable or the unit families cannot be reconciled it falls
// back to a count-based purchase, and when no price is resolvable it
// returns an explicit zero estimate with ok=false.
func (e *CostEstimator) Estimate(
	ingredient domain.Ingredient,
	required units.Quantity,
	product domain.CatalogProduct,
) (domain.CostEstimate, bool) {
	price, priced := product.EffectivePrice()
	if !priced {
		// Unpriced product is not an error; the ingredient degrades to a
		// zero-cost, zero-confidence record upstream.
		return domain.CostEstimate{}, false
	}

	pack, parsed := units.ParsePackSize(product.SizeLabel)
	if !parsed {
		return e.countFallback(required, price, product.SizeLabel), true
	}

	packUnit := units.DisambiguateOunces(pack.Unit, units.FamilyOf(required.Unit))

	if units.FamilyOf(packUnit) == units.FamilyCount {
		// Count packs: whole packages, prorated portion.
		packages := int(math.Ceil(required.Amount / pack.Amount))
		if packages < 1 {
			packages = 1
		}
		portion := (required.Amount / pack.Amount) * price
		return domain.CostEstimate{
			UnitPrice:     price / pack.Amount,
			EstimatedCost: portion,
			Packages:      packages,
			PackageSize:   product.SizeLabel,
			PackagePrice:  price,
		}, true
	}

	requiredBase, requiredFamily := units.ToBase(required.Amount, required.Unit)
	packBase, packFamily := units.ToBase(pack.Amount, packUnit)
	if requiredFamily != packFamily || packBase <= 0 {
		est := e.countFallback(required, price, product.SizeLabel)
		e.logger.Debug("unit families unconvertible, using count fallback",
			zap.String("ingredient", ingredient.Name),
			zap.String("ingredientUnit", string(required.Unit)),
			zap.String("packUnit", string(packUnit)))
		return est, true
	}

	portion := (requiredBase / packBase) * price
	packages := int(math.Ceil(requiredBase / packBase))
	if packages < 1 {
		packages = 1
	}
	return domain.CostEstimate{
		UnitPrice:     price / packBase,
		EstimatedCost: portion,
		Packages:      packages,
		PackageSize:   product.SizeLabel,
		PackagePrice:  price,
	}, true
}

// countFallback treats the ingredient as discrete purchases when the pack
// size gives us nothing to prorate against: one package per counted item
// for each-type ingredients, a single package otherwise.
func (e *CostEstimator) countFallback(required units.Quantity, price float64, sizeLabel string) domain.CostEstimate {
	packages := 1
	if units.FamilyOf(required.Unit) == units.FamilyCount {
		packages = int(math.Ceil(math.Max(1, required.Amount)))
	}
	return domain.CostEstimate{
		UnitPrice:     price,
		EstimatedCost: price * float64(packages),
		Packages:      packages,
		PackageSize:   sizeLabel,
		PackagePrice:  price,
		Fallback:      true,
	}
}
