package units

import (
	"math"
	"testing"
)

func TestParsePackSize(t *testing.T) {
	tests := []struct {
		label      string
		wantAmount float64
		wantUnit   Unit
		wantOK     bool
	}{
		{"16 oz", 16, Ounce, true},
		{"16oz", 16, Ounce, true},
		{"12 fl oz", 12, FluidOunce, true},
		{"12 FL OZ", 12, FluidOunce, true},
		{"1.5 l", 1.5, Liter, true},
		{"750 ml", 750, Milliliter, true},
		{"2 lb bag", 2, Pound, true},
		{"500 g", 500, Gram, true},
		{"1 gal", 3.78541, Liter, true},
		{"1 quart", 0.946353, Liter, true},
		{"1 pint", 473.176, Milliliter, true},
		{"12 ct", 12, Each, true},
		{"6 pack", 6, Each, true},
		{"10 each", 10, Each, true},
		{"about 8.5 oz total", 8.5, Ounce, true},
		{"assorted", 0, "", false},
		{"", 0, "", false},
		{"fresh produce", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParsePackSize(tt.label)
			if ok != tt.wantOK {
				t.Fatalf("ParsePackSize(%q) ok = %v, want %v", tt.label, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got.Amount-tt.wantAmount) > 1e-6 {
				t.Errorf("amount = %v, want %v", got.Amount, tt.wantAmount)
			}
			if got.Unit != tt.wantUnit {
				t.Errorf("unit = %v, want %v", got.Unit, tt.wantUnit)
			}
		})
	}
}

func TestParsePackSizeDeterministic(t *testing.T) {
	// Multi-pair labels always resolve to the first number-unit pair.
	got, ok := ParsePackSize("64 fl oz (2 qt)")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.Unit != FluidOunce || got.Amount != 64 {
		t.Errorf("got %v %v, want 64 fl-oz", got.Amount, got.Unit)
	}

	for i := 0; i < 5; i++ {
		again, _ := ParsePackSize("64 fl oz (2 qt)")
		if again != got {
			t.Fatal("ParsePackSize is not deterministic")
		}
	}
}
