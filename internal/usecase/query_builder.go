package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/grocermatch/backend/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)
	punctuationRegex   = regexp.MustCompile(`[^\w\s-]`)
	multiSpaceRegex    = regexp.MustCompile(`\s+`)
)

// CategoryHint is a coarse food-category guess used only as a scoring
// signal, never a strict classification.
type CategoryHint string

const (
	CategoryProduce CategoryHint = "produce"
	CategoryProtein CategoryHint = "protein"
	CategoryDairy   CategoryHint = "dairy"
	CategoryGrain   CategoryHint = "grain"
	CategorySpice   CategoryHint = "spice"
	CategoryPantry  CategoryHint = "pantry"
	CategoryUnknown CategoryHint = "unknown"
)

// descriptorWords are preparation and marketing qualifiers stripped when
// widening a search term. They rarely appear in catalog descriptions the
// same way they appear in recipe lines ("finely chopped fresh cilantro").
var descriptorWords = map[string]bool{
	"fresh": true, "frozen": true, "dried": true, "ground": true,
	"chopped": true, "diced": true, "minced": true, "sliced": true,
	"grated": true, "shredded": true, "crushed": true, "finely": true,
	"coarsely": true, "thinly": true, "roughly": true, "large": true,
	"medium": true, "small": true, "ripe": true, "raw": true,
	"cooked": true, "boneless": true, "skinless": true, "peeled": true,
	"seeded": true, "stemmed": true, "trimmed": true, "divided": true,
	"optional": true, "plus": true, "more": true, "taste": true,
	"to": true, "for": true, "of": true, "and": true, "or": true,
}

// categoryKeywords drives the best-effort classifier. Keyword presence
// anywhere in the normalized name assigns the hint; first table that
// matches wins, checked in a fixed order for determinism.
var categoryKeywords = []struct {
	hint  CategoryHint
	words []string
}{
	{CategorySpice, []string{
		"cumin", "coriander", "turmeric", "paprika", "cinnamon", "cardamom",
		"clove", "nutmeg", "oregano", "thyme", "rosemary", "bay", "chili powder",
		"curry powder", "garam masala", "saffron", "sumac", "za'atar", "zaatar",
		"allspice", "fennel seed", "mustard seed", "peppercorn", "cayenne",
		"spice", "seasoning", "salt",
	}},
	// Pantry precedes protein/dairy so phrase keywords like "fish sauce"
	// and "coconut milk" win over the bare "fish"/"milk" keywords.
	{CategoryPantry, []string{
		"oil", "vinegar", "sugar", "honey", "soy sauce", "fish sauce",
		"coconut milk", "tomato paste", "broth", "stock", "tahini",
		"miso", "sesame",
	}},
	{CategoryProtein, []string{
		"chicken", "beef", "pork", "lamb", "goat", "turkey", "duck",
		"fish", "salmon", "tilapia", "shrimp", "prawn", "crab", "tofu",
		"tempeh", "egg", "sausage", "bacon", "chorizo", "anchovy",
	}},
	{CategoryDairy, []string{
		"milk", "cheese", "yogurt", "yoghurt", "butter", "cream", "paneer",
		"ghee", "kefir", "queso", "crema", "labneh",
	}},
	{CategoryGrain, []string{
		"rice", "flour", "pasta", "noodle", "bread", "tortilla", "couscous",
		"quinoa", "barley", "oat", "cornmeal", "masa", "semolina", "bulgur",
		"vermicelli", "lentil", "bean", "chickpea",
	}},
	{CategoryProduce, []string{
		"onion", "garlic", "tomato", "pepper", "chile", "chili", "cilantro",
		"parsley", "spinach", "kale", "lettuce", "leaf", "cabbage", "carrot",
		"potato", "yam", "plantain", "banana", "lime", "lemon", "mango",
		"avocado", "cucumber", "eggplant", "okra", "zucchini", "squash",
		"ginger", "scallion", "celery", "mushroom", "broccoli", "cauliflower",
		"apple", "orange", "berry", "corn", "pea",
	}},
}

// QueryBuilder turns a recipe ingredient into an ordered list of catalog
// search terms and a coarse category hint.
type QueryBuilder struct{}

// NewQueryBuilder creates a new query builder
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// BuildSearchTerms generates search-term variants for an ingredient,
// most-specific first: the normalized raw name, then progressively more
// generic forms (parentheticals stripped, descriptors stripped,
// singularized, head noun only) to widen recall when earlier terms come
// up empty. Duplicates are removed preserving order.
func (b *QueryBuilder) BuildSearchTerms(ingredient domain.Ingredient) []string {
	base := normalizeName(ingredient.Name)
	if base == "" {
		return nil
	}

	variants := []string{base}

	noParens := normalizeName(parentheticalRegex.ReplaceAllString(ingredient.Name, " "))
	variants = append(variants, noParens)

	stripped := stripDescriptors(noParens)
	variants = append(variants, stripped)

	variants = append(variants, singularizeTerm(stripped))

	// Last resort: the final token, which is usually the head noun
	// ("boneless chicken thighs" -> "thighs" -> "thigh").
	if fields := strings.Fields(stripped); len(fields) > 1 {
		variants = append(variants, singularize(fields[len(fields)-1]))
	}

	seen := make(map[string]struct{}, len(variants))
	terms := make([]string, 0, len(variants))
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		terms = append(terms, v)
	}
	return terms
}

// ClassifyCategory assigns a coarse category hint from keywords in the
// ingredient name. Unmatched names get CategoryUnknown, which disables
// the category-match bonus without penalizing any candidate.
func (b *QueryBuilder) ClassifyCategory(name string) CategoryHint {
	normalized := " " + singularizeTerm(stripDescriptors(normalizeName(name))) + " "
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.words {
			if strings.Contains(normalized, " "+keyword+" ") ||
				strings.Contains(normalized, " "+keyword+"s ") {
				return entry.hint
			}
		}
	}
	return CategoryUnknown
}

// normalizeName lowercases, strips diacritics and punctuation, and
// collapses whitespace so "Jalapeño  (seeded)" and "jalapeno seeded"
// compare equal.
func normalizeName(name string) string {
	s := stripDiacritics(strings.ToLower(strings.TrimSpace(name)))
	s = punctuationRegex.ReplaceAllString(s, " ")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripDescriptors drops preparation and filler words from a normalized
// term, keeping at least one token.
func stripDescriptors(term string) string {
	fields := strings.Fields(term)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if descriptorWords[f] {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return term
	}
	return strings.Join(kept, " ")
}

// singularizeTerm singularizes every token of a term.
func singularizeTerm(term string) string {
	fields := strings.Fields(term)
	for i, f := range fields {
		fields[i] = singularize(f)
	}
	return strings.Join(fields, " ")
}

// singularize trims common English plural suffixes. Rough on purpose:
// catalog search is tolerant and the raw term is always tried first.
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "oes") && len(word) > 3:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ches") || strings.HasSuffix(word, "shes") ||
		strings.HasSuffix(word, "sses") || strings.HasSuffix(word, "xes"):
		if len(word) > 4 {
			return word[:len(word)-2]
		}
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 3:
		return word[:len(word)-1]
	}
	return word
}

// stripDiacritics removes combining marks after NFD decomposition so
// accented ingredient names match ASCII catalog text.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
