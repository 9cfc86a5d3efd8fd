// Package units implements the canonical measurement model for ingredient
// matching: unit normalization, within-family conversion, and pack-size
// label parsing. Mass converts through grams, culinary volume through
// milliliters, and discrete items are counted as "each".
package units

import (
	"errors"
	"strings"
)

// Family identifies a measurement family. Units convert freely within a
// family and never across one.
type Family string

const (
	FamilyMass   Family = "mass"
	FamilyVolume Family = "volume"
	FamilyCount  Family = "count"
)

// Unit is a canonical unit tag produced by Normalize.
type Unit string

const (
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Ounce      Unit = "oz"
	Pound      Unit = "lb"
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Cup        Unit = "cup"
	Tablespoon Unit = "tbsp"
	Teaspoon   Unit = "tsp"
	FluidOunce Unit = "fl-oz"
	Each       Unit = "each"
)

// ErrUnconvertible is returned by Convert for cross-family conversions.
// Cross-family conversion is a defined failure, never a silent zero.
var ErrUnconvertible = errors.New("units belong to different families")

type unitDef struct {
	family Family
	// toBase is the factor to the family base unit: grams for mass,
	// milliliters for volume, items for count.
	toBase float64
}

// conversionTable is the single canonical lookup for unit metadata.
// Factors match common culinary convention (cup = 240 ml, not the exact
// US legal cup).
var conversionTable = map[Unit]unitDef{
	Gram:       {family: FamilyMass, toBase: 1},
	Kilogram:   {family: FamilyMass, toBase: 1000},
	Ounce:      {family: FamilyMass, toBase: 28.3495},
	Pound:      {family: FamilyMass, toBase: 453.592},
	Milliliter: {family: FamilyVolume, toBase: 1},
	Liter:      {family: FamilyVolume, toBase: 1000},
	Cup:        {family: FamilyVolume, toBase: 240},
	Tablespoon: {family: FamilyVolume, toBase: 15},
	Teaspoon:   {family: FamilyVolume, toBase: 5},
	FluidOunce: {family: FamilyVolume, toBase: 29.5735},
	Each:       {family: FamilyCount, toBase: 1},
}

// synonyms maps lowercased raw unit spellings to canonical tags. Plural
// forms are generated in init rather than listed one by one.
var synonyms = map[string]Unit{
	"g":           Gram,
	"gram":        Gram,
	"gr":          Gram,
	"kg":          Kilogram,
	"kilogram":    Kilogram,
	"kilo":        Kilogram,
	"oz":          Ounce,
	"ounce":       Ounce,
	"lb":          Pound,
	"lbs":         Pound,
	"pound":       Pound,
	"ml":          Milliliter,
	"milliliter":  Milliliter,
	"millilitre":  Milliliter,
	"l":           Liter,
	"liter":       Liter,
	"litre":       Liter,
	"cup":         Cup,
	"c":           Cup,
	"tbsp":        Tablespoon,
	"tbs":         Tablespoon,
	"tablespoon":  Tablespoon,
	"tsp":         Teaspoon,
	"teaspoon":    Teaspoon,
	"fl-oz":       FluidOunce,
	"floz":        FluidOunce,
	"fl oz":       FluidOunce,
	"fluid ounce": FluidOunce,
	"each":        Each,
	"ea":          Each,
	"ct":          Each,
	"count":       Each,
	"piece":       Each,
	"pc":          Each,
	"item":        Each,
	"whole":       Each,
	"clove":       Each,
	"bunch":       Each,
	"can":         Each,
	"package":     Each,
	"pkg":         Each,
}

func init() {
	plurals := make(map[string]Unit, len(synonyms))
	for raw, unit := range synonyms {
		if strings.HasSuffix(raw, "s") || len(raw) <= 2 {
			continue
		}
		plurals[raw+"s"] = unit
	}
	for raw, unit := range plurals {
		if _, exists := synonyms[raw]; !exists {
			synonyms[raw] = unit
		}
	}
}

// Normalize maps a free-text unit to its canonical tag. Unrecognized input
// maps to Each, the safe default for discrete items; Normalize never fails
// and is idempotent.
func Normalize(raw string) Unit {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return Each
	}
	if unit, ok := synonyms[cleaned]; ok {
		return unit
	}
	// Compact spellings like "fl  oz" with irregular spacing.
	if unit, ok := synonyms[strings.Join(strings.Fields(cleaned), " ")]; ok {
		return unit
	}
	return Each
}

// FamilyOf returns the measurement family of a canonical unit.
func FamilyOf(u Unit) Family {
	if def, ok := conversionTable[u]; ok {
		return def.family
	}
	return FamilyCount
}

// DisambiguateOunces resolves the mass-vs-volume ambiguity of a bare "oz":
// ounces stay weight ounces unless the surrounding context family is
// volume, matching the convention that recipes default to weight.
func DisambiguateOunces(u Unit, context Family) Unit {
	if u == Ounce && context == FamilyVolume {
		return FluidOunce
	}
	return u
}

// Convert converts a quantity between two units of the same family using
// the canonical table. Cross-family conversion returns ErrUnconvertible.
func Convert(quantity float64, from, to Unit) (float64, error) {
	fromDef, ok := conversionTable[from]
	if !ok {
		return 0, ErrUnconvertible
	}
	toDef, ok := conversionTable[to]
	if !ok {
		return 0, ErrUnconvertible
	}
	if fromDef.family != toDef.family {
		return 0, ErrUnconvertible
	}
	return quantity * fromDef.toBase / toDef.toBase, nil
}

// ToBase converts a quantity to its family base unit (grams, milliliters,
// or items) and reports the family.
func ToBase(quantity float64, u Unit) (float64, Family) {
	def, ok := conversionTable[u]
	if !ok {
		return quantity, FamilyCount
	}
	return quantity * def.toBase, def.family
}

// Quantity pairs an amount with a canonical unit.
type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   Unit    `json:"unit"`
}
