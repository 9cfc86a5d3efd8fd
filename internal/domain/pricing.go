package domain

// ScoreSignals records the individual signals that contributed to a
// candidate's score, so callers can explain why a product was chosen.
type ScoreSignals struct {
	NameSimilarity  float64 `json:"nameSimilarity"`
	SizeProximity   float64 `json:"sizeProximity"`
	CategoryMatched bool    `json:"categoryMatched"`
	Available       bool    `json:"available"`
	HasPromo        bool    `json:"hasPromo"`
	FormPenalty     float64 `json:"formPenalty,omitempty"`
}

// ScoredCandidate is a catalog product scored against one ingredient.
// Ephemeral: created per matching run, only the top few survive into the
// result as an audit/override list.
type ScoredCandidate struct {
	Product CatalogProduct `json:"product"`
	Score   float64        `json:"score"`
	Signals ScoreSignals   `json:"signals"`
}

// CostEstimate is the output of the cost estimator for one matched product.
type CostEstimate struct {
	UnitPrice     float64 `json:"unitPrice"`
	EstimatedCost float64 `json:"estimatedCost"`
	Packages      int     `json:"packages,omitempty"`
	PackageSize   string  `json:"packageSize,omitempty"`
	PackagePrice  float64 `json:"packagePrice,omitempty"`
	// Fallback is true when the count-based fallback path was used because
	// the pack size was unparseable or the unit families were unconvertible.
	Fallback bool `json:"-"`
}

// PricingResult is the per-ingredient output of a pricing run. When no
// product could be matched or priced, all cost fields are zero and
// Unavailable is set; a single unmatched ingredient never fails the batch.
type PricingResult struct {
	IngredientName string            `json:"ingredientName"`
	UnitPrice      float64           `json:"unitPrice"`
	PortionCost    float64           `json:"portionCost"`
	EstimatedCost  float64           `json:"estimatedCost"`
	PackagesToBuy  int               `json:"packagesToBuy,omitempty"`
	PackageSize    string            `json:"packageSize,omitempty"`
	PackagePrice   float64           `json:"packagePrice,omitempty"`
	Confidence     float64           `json:"confidence"`
	Unavailable    bool              `json:"unavailable,omitempty"`
	MatchedProduct *CatalogProduct   `json:"matchedProduct,omitempty"`
	Alternatives   []ScoredCandidate `json:"alternatives,omitempty"`
}

// RecipePricingSummary aggregates the ordered per-ingredient results for
// one recipe pricing run.
type RecipePricingSummary struct {
	RunID          string          `json:"runId"`
	Results        []PricingResult `json:"results"`
	TotalCost      float64         `json:"totalCost"`
	CostPerServing float64         `json:"costPerServing"`
	Servings       int             `json:"servings"`
}

// ConfidenceLevel buckets a 0-1 confidence score into a label the UI can
// render without knowing the scoring internals.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "high"
	case confidence >= 0.6:
		return "medium"
	case confidence > 0:
		return "low"
	default:
		return "none"
	}
}
