package usecase

import (
	"reflect"
	"testing"

	"github.com/grocermatch/backend/internal/domain"
)

func TestBuildSearchTerms(t *testing.T) {
	builder := NewQueryBuilder()

	t.Run("raw name comes first", func(t *testing.T) {
		terms := builder.BuildSearchTerms(domain.Ingredient{Name: "boneless chicken thighs", Amount: 2})
		if len(terms) == 0 {
			t.Fatal("expected at least one term")
		}
		if terms[0] != "boneless chicken thighs" {
			t.Errorf("terms[0] = %q, want raw name first", terms[0])
		}
	})

	t.Run("widens from specific to generic", func(t *testing.T) {
		terms := builder.BuildSearchTerms(domain.Ingredient{Name: "fresh cilantro (roughly chopped)", Amount: 1})

		want := []string{
			"fresh cilantro roughly chopped",
			"fresh cilantro",
			"cilantro",
		}
		if !reflect.DeepEqual(terms, want) {
			t.Errorf("terms = %v, want %v", terms, want)
		}
	})

	t.Run("singularizes plural names", func(t *testing.T) {
		terms := builder.BuildSearchTerms(domain.Ingredient{Name: "roma tomatoes", Amount: 3})
		found := false
		for _, term := range terms {
			if term == "roma tomato" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected singularized variant in %v", terms)
		}
	})

	t.Run("falls back to head noun", func(t *testing.T) {
		terms := builder.BuildSearchTerms(domain.Ingredient{Name: "boneless skinless chicken thighs", Amount: 4})
		last := terms[len(terms)-1]
		if last != "thigh" {
			t.Errorf("last term = %q, want head noun %q", last, "thigh")
		}
	})

	t.Run("strips diacritics", func(t *testing.T) {
		terms := builder.BuildSearchTerms(domain.Ingredient{Name: "jalapeño", Amount: 2})
		if len(terms) == 0 || terms[0] != "jalapeno" {
			t.Errorf("terms = %v, want jalapeno first", terms)
		}
	})

	t.Run("empty name yields no terms", func(t *testing.T) {
		terms := builder.BuildSearchTerms(domain.Ingredient{Name: "   ", Amount: 1})
		if len(terms) != 0 {
			t.Errorf("terms = %v, want none", terms)
		}
	})

	t.Run("no duplicate terms", func(t *testing.T) {
		terms := builder.BuildSearchTerms(domain.Ingredient{Name: "salt", Amount: 1})
		seen := map[string]bool{}
		for _, term := range terms {
			if seen[term] {
				t.Errorf("duplicate term %q in %v", term, terms)
			}
			seen[term] = true
		}
	})
}

func TestClassifyCategory(t *testing.T) {
	builder := NewQueryBuilder()

	tests := []struct {
		name string
		want CategoryHint
	}{
		{"boneless chicken thighs", CategoryProtein},
		{"ground beef", CategoryProtein},
		{"whole milk", CategoryDairy},
		{"paneer", CategoryDairy},
		{"basmati rice", CategoryGrain},
		{"red lentils", CategoryGrain},
		{"fresh cilantro", CategoryProduce},
		{"bell pepper", CategoryProduce},
		{"roma tomatoes", CategoryProduce},
		{"ground cumin", CategorySpice},
		{"garam masala", CategorySpice},
		{"olive oil", CategoryPantry},
		{"coconut milk", CategoryPantry},
		{"mystery ingredient", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := builder.ClassifyCategory(tt.name); got != tt.want {
				t.Errorf("ClassifyCategory(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
