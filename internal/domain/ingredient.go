package domain

import "strings"

// Ingredient is a single recipe line item: a free-text name, a quantity,
// and a free-text unit that gets normalized downstream.
type Ingredient struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Unit   string  `json:"unit"`
}

// PriceRequest represents a recipe pricing request
type PriceRequest struct {
	Ingredients []Ingredient `json:"ingredients" binding:"required"`
	Servings    int          `json:"servings"`
	LocationID  string       `json:"locationId"`
}

// Valid reports whether the ingredient is usable as matching input.
func (i Ingredient) Valid() bool {
	return strings.TrimSpace(i.Name) != "" && i.Amount > 0
}
