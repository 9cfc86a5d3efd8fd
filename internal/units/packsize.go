package units

import (
	"regexp"
	"strconv"
)

// packSizeRegex matches the first "number unit" pair in a retail size
// label. Compound tokens come first in the alternation so "16 fl oz" is
// not read as mass ounces.
var packSizeRegex = regexp.MustCompile(
	`(?i)(\d+(?:\.\d+)?)\s*(fl\.?\s?oz|fluid\s+ounces?|ounces?|oz|pounds?|lbs?|lb|kilograms?|kgs?|kg|grams?|gr?|milliliters?|millilitres?|ml|liters?|litres?|l\b|gallons?|gal|quarts?|qt|pints?|pt|cups?|tablespoons?|tbsp|teaspoons?|tsp|counts?|ct|each|ea|pk|pack|pieces?|pcs?)\b`,
)

var compoundToken = regexp.MustCompile(`(?i)^fl|^fluid`)

// packTokenScale maps label-only tokens (gallons, quarts, pints, packs)
// onto canonical units. Everything else goes through Normalize.
var packTokenScale = map[string]struct {
	unit  Unit
	scale float64
}{
	"gal":    {Liter, 3.78541},
	"gallon": {Liter, 3.78541},
	"qt":     {Liter, 0.946353},
	"quart":  {Liter, 0.946353},
	"pt":     {Milliliter, 473.176},
	"pint":   {Milliliter, 473.176},
	"pk":     {Each, 1},
	"pack":   {Each, 1},
}

// ParsePackSize extracts a quantity and canonical unit from a free-text
// retail package size label ("16 oz", "2 x 1.5 l", "12 ct"). It is
// deterministic: the first number-unit pair always wins. ok is false when
// no recognizable pattern is present, and the caller falls back to a
// count-based estimate.
func ParsePackSize(label string) (Quantity, bool) {
	if label == "" {
		return Quantity{}, false
	}

	m := packSizeRegex.FindStringSubmatch(label)
	if m == nil {
		return Quantity{}, false
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil || amount <= 0 {
		return Quantity{}, false
	}

	token := normalizePackToken(m[2])
	if scaled, ok := packTokenScale[token]; ok {
		return Quantity{Amount: amount * scaled.scale, Unit: scaled.unit}, true
	}

	unit := Normalize(token)
	return Quantity{Amount: amount, Unit: unit}, true
}

// normalizePackToken lowercases a matched unit token and collapses the
// compound fluid-ounce spellings to a single form before lookup.
func normalizePackToken(token string) string {
	cleaned := toLowerCompact(token)
	if compoundToken.MatchString(cleaned) {
		return "fl-oz"
	}
	// Trim plural "s" so packTokenScale stays short; Normalize handles
	// plurals for the canonical tags on its own.
	if len(cleaned) > 3 && cleaned[len(cleaned)-1] == 's' {
		if _, ok := packTokenScale[cleaned[:len(cleaned)-1]]; ok {
			return cleaned[:len(cleaned)-1]
		}
	}
	return cleaned
}

func toLowerCompact(s string) string {
	out := make([]byte, 0, len(s))
	lastSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c == ' ' || c == '\t' || c == '.' {
			lastSpace = true
			continue
		}
		if lastSpace && len(out) > 0 {
			out = append(out, ' ')
		}
		lastSpace = false
		out = append(out, c)
	}
	return string(out)
}
