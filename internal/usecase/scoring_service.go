package usecase

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/grocermatch/backend/internal/domain"
	"github.com/grocermatch/backend/internal/units"
	"go.uber.org/zap"
)

// ScoringWeights are the tuning parameters of the ranking function. They
// are configuration, not law: injectable so they can be adjusted or
// A/B-tested without touching retrieval or estimation code.
type ScoringWeights struct {
	NameSimilarity float64 `mapstructure:"name_similarity"`
	SizeProximity  float64 `mapstructure:"size_proximity"`
	CategoryMatch  float64 `mapstructure:"category_match"`
	Availability   float64 `mapstructure:"availability"`
	Promo          float64 `mapstructure:"promo"`
	FormPenalty    float64 `mapstructure:"form_penalty"`
}

// DefaultScoringWeights returns the tuned production weights.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		NameSimilarity: 0.50,
		SizeProximity:  0.20,
		CategoryMatch:  0.15,
		Availability:   0.10,
		Promo:          0.05,
		FormPenalty:    0.25,
	}
}

// fuzzyEditDistance is the max Levenshtein distance for a fuzzy token
// match; only tokens longer than 4 runes are compared fuzzily to avoid
// false positives on short words.
const fuzzyEditDistance = 1

// neutralSizeScore is used when a candidate's pack size cannot be parsed
// or converted; unknown size neither helps nor hurts the candidate.
const neutralSizeScore = 0.5

// preparedFormWords flag product descriptions that indicate a prepared or
// derived food form. A raw-ingredient hint (produce/protein) with one of
// these in the description is almost always a wrong match that plain text
// similarity mis-ranks ("tomato soup" against "tomatoes").
var preparedFormWords = []string{
	"soup", "sauce", "juice", "chips", "snack", "candy", "cookie",
	"seasoning", "flavored", "flavor", "mix", "dinner", "meal kit",
	"baby food", "dip", "dressing", "spread", "drink", "soda", "extract",
}

// productStopWords are catalog-description tokens that carry no matching
// signal (size, packaging, marketing noise).
var productStopWords = map[string]bool{
	"oz": true, "fl": true, "lb": true, "lbs": true, "ml": true, "ct": true,
	"pack": true, "count": true, "each": true, "bag": true, "box": true,
	"bottle": true, "can": true, "jar": true, "carton": true, "pouch": true,
	"the": true, "a": true, "an": true, "of": true, "in": true, "with": true,
	"value": true, "family": true, "size": true, "brand": true, "per": true,
}

// ScoringService ranks deduplicated catalog candidates against an
// ingredient using weighted signals.
type ScoringService struct {
	weights ScoringWeights
	logger  *zap.Logger
}

// NewScoringService creates a scoring service. Zero-valued weights fall
// back to the defaults so a partially filled config cannot silently
// disable the whole ranking.
func NewScoringService(weights ScoringWeights, logger *zap.Logger) *ScoringService {
	if weights == (ScoringWeights{}) {
		weights = DefaultScoringWeights()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoringService{weights: weights, logger: logger}
}

// Score computes the weighted score of one candidate in [0,1] along with
// its signal breakdown. required is the ingredient's quantity in
// canonical units; hint may be CategoryUnknown, which makes the category
// signal neutral.
func (s *ScoringService) Score(
	ingredient domain.Ingredient,
	required units.Quantity,
	product domain.CatalogProduct,
	hint CategoryHint,
) domain.ScoredCandidate {
	signals := domain.ScoreSignals{
		NameSimilarity: nameSimilarity(ingredient.Name, product.Description),
		SizeProximity:  sizeProximity(required, product.SizeLabel),
		Available:      product.InStock,
		HasPromo:       product.OnPromo(),
	}

	w := s.weights
	score := w.NameSimilarity * signals.NameSimilarity
	score += w.SizeProximity * signals.SizeProximity

	switch {
	case hint == CategoryUnknown:
		// Neutral: half the category weight, neither bonus nor penalty.
		score += w.CategoryMatch * 0.5
	case categoryMatches(hint, product.Categories):
		signals.CategoryMatched = true
		score += w.CategoryMatch
	}

	if signals.Available {
		score += w.Availability
	}
	if signals.HasPromo {
		score += w.Promo
	}

	if penalized := wrongFormPenalty(ingredient.Name, product.Description, hint); penalized {
		signals.FormPenalty = w.FormPenalty
		score -= w.FormPenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return domain.ScoredCandidate{Product: product, Score: score, Signals: signals}
}

// Rank scores every candidate and returns them sorted best-first.
// Ties prefer a candidate that carries a resolvable price over a
// priceless one, then lexicographic productId so the ordering is
// deterministic regardless of arrival order.
func (s *ScoringService) Rank(
	ingredient domain.Ingredient,
	required units.Quantity,
	candidates []domain.CatalogProduct,
	hint CategoryHint,
) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, s.Score(ingredient, required, candidate, hint))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		_, iPriced := scored[i].Product.EffectivePrice()
		_, jPriced := scored[j].Product.EffectivePrice()
		if iPriced != jPriced {
			return iPriced
		}
		return scored[i].Product.ProductID < scored[j].Product.ProductID
	})

	if len(scored) > 0 {
		s.logger.Debug("ranked candidates",
			zap.String("ingredient", ingredient.Name),
			zap.String("winner", scored[0].Product.Description),
			zap.Float64("score", scored[0].Score))
	}
	return scored
}

// nameSimilarity combines token overlap with fuzzy per-token matching
// into a 0-1 score. Coverage of the ingredient tokens dominates: a
// product description mentioning every ingredient word is a strong match
// even when the description carries extra packaging detail.
func nameSimilarity(ingredientName, productDescription string) float64 {
	ingTokens := matchTokens(ingredientName)
	prodTokens := matchTokens(productDescription)
	if len(ingTokens) == 0 || len(prodTokens) == 0 {
		return 0
	}

	prodSet := make(map[string]struct{}, len(prodTokens))
	for _, t := range prodTokens {
		prodSet[t] = struct{}{}
	}

	var covered float64
	for _, t := range ingTokens {
		if _, ok := prodSet[t]; ok {
			covered++
			continue
		}
		if best := bestFuzzyMatch(t, prodTokens); best > 0 {
			covered += best
		}
	}
	coverage := covered / float64(len(ingTokens))

	// Secondary signal: how much of the product description is the
	// ingredient. Keeps "tomato" from scoring a 40-word listing as
	// highly as a plain "Tomatoes" listing.
	ingSet := make(map[string]struct{}, len(ingTokens))
	for _, t := range ingTokens {
		ingSet[t] = struct{}{}
	}
	var reverse float64
	for _, t := range prodTokens {
		if _, ok := ingSet[t]; ok {
			reverse++
		}
	}
	precision := reverse / float64(len(prodTokens))

	return clamp01(coverage*0.75 + precision*0.25)
}

// bestFuzzyMatch returns a discounted score for the closest fuzzy token
// match, or 0 when nothing is within the edit-distance threshold.
func bestFuzzyMatch(token string, candidates []string) float64 {
	if len(token) <= 4 {
		return 0
	}
	for _, c := range candidates {
		if len(c) <= 4 {
			continue
		}
		diff := len(token) - len(c)
		if diff < 0 {
			diff = -diff
		}
		if diff > fuzzyEditDistance {
			continue
		}
		if levenshtein.ComputeDistance(token, c) <= fuzzyEditDistance {
			return 0.8 // fuzzy matches count at 80% of an exact match
		}
	}
	return 0
}

// sizeProximity scores how close the pack size is to the quantity the
// recipe needs. Identical sizes score 1; a pack many multiples larger or
// smaller decays toward 0. Unparseable or unconvertible sizes score the
// neutral constant.
func sizeProximity(required units.Quantity, sizeLabel string) float64 {
	pack, ok := units.ParsePackSize(sizeLabel)
	if !ok || pack.Amount <= 0 || required.Amount <= 0 {
		return neutralSizeScore
	}

	packUnit := units.DisambiguateOunces(pack.Unit, units.FamilyOf(required.Unit))
	requiredInPack, err := units.Convert(required.Amount, required.Unit, packUnit)
	if err != nil {
		return neutralSizeScore
	}

	ratio := requiredInPack / pack.Amount
	if ratio > 1 {
		ratio = 1 / ratio
	}
	return ratio
}

// categoryMatches reports whether any of the product's own category tags
// agree with the classifier's hint.
func categoryMatches(hint CategoryHint, categories []string) bool {
	aliases, ok := categoryHintAliases[hint]
	if !ok {
		return false
	}
	for _, category := range categories {
		lowered := strings.ToLower(category)
		for _, alias := range aliases {
			if strings.Contains(lowered, alias) {
				return true
			}
		}
	}
	return false
}

// categoryHintAliases translates classifier hints into the retailer's
// category vocabulary.
var categoryHintAliases = map[CategoryHint][]string{
	CategoryProduce: {"produce", "fruit", "vegetable"},
	CategoryProtein: {"meat", "seafood", "poultry", "deli", "protein"},
	CategoryDairy:   {"dairy", "cheese", "eggs"},
	CategoryGrain:   {"bakery", "bread", "pasta", "grain", "rice", "cereal"},
	CategorySpice:   {"spice", "seasoning", "baking", "condiment"},
	CategoryPantry:  {"pantry", "condiment", "canned", "baking", "international"},
}

// wrongFormPenalty reports whether the product is a clearly wrong food
// form for the ingredient: a prepared-food description matched against a
// raw produce or protein ingredient, where the ingredient itself never
// asked for the prepared form.
func wrongFormPenalty(ingredientName, productDescription string, hint CategoryHint) bool {
	if hint != CategoryProduce && hint != CategoryProtein {
		return false
	}
	ingLower := strings.ToLower(ingredientName)
	descLower := strings.ToLower(productDescription)
	for _, form := range preparedFormWords {
		if strings.Contains(descLower, form) && !strings.Contains(ingLower, form) {
			return true
		}
	}
	return false
}

// matchTokens normalizes text into comparison tokens, dropping stop words
// and pure numbers.
func matchTokens(s string) []string {
	cleaned := normalizeName(s)
	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 1 || productStopWords[f] || isNumeric(f) {
			continue
		}
		tokens = append(tokens, singularize(f))
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
