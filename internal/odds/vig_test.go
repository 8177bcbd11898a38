package odds

import (
	"math"
	"testing"
)

func TestRemoveVig(t *testing.T) {
	tests := []struct {
		name      string
		impliedA  float64
		impliedB  float64
		expectedA float64
		expectedB float64
	}{
		{
			name:      "Symmetric -110/-110 market",
			impliedA:  0.5238,
			impliedB:  0.5238,
			expectedA: 0.5,
			expectedB: 0.5,
		},
		{
			name:      "Asymmetric market",
			impliedA:  0.6,
			impliedB:  0.45,
			expectedA: 0.6 / 1.05,
			expectedB: 0.45 / 1.05,
		},
		{
			name:      "Invalid zero input",
			impliedA:  0,
			impliedB:  0.5,
			expectedA: 0,
			expectedB: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotA, gotB := RemoveVig(tt.impliedA, tt.impliedB)
			if math.Abs(gotA-tt.expectedA) > 1e-9 || math.Abs(gotB-tt.expectedB) > 1e-9 {
				t.Errorf("RemoveVig(%.4f, %.4f) = (%.4f, %.4f), want (%.4f, %.4f)",
					tt.impliedA, tt.impliedB, gotA, gotB, tt.expectedA, tt.expectedB)
			}
		})
	}
}

func TestRemoveVigSumsToOne(t *testing.T) {
	pairs := [][2]int{
		{-110, -110},
		{-150, 130},
		{-240, 195},
		{105, -125},
	}

	for _, pair := range pairs {
		a, b := RemoveVigFromAmerican(pair[0], pair[1])
		if math.Abs(a+b-1.0) > 1e-9 {
			t.Errorf("RemoveVigFromAmerican(%d, %d): probabilities sum to %.6f", pair[0], pair[1], a+b)
		}
	}
}

func TestRemoveVigPower(t *testing.T) {
	// Power method must also produce probabilities summing to 1.
	a, b := RemoveVigPowerFromAmerican(-110, -110)
	if math.Abs(a+b-1.0) > 1e-6 {
		t.Errorf("power method sum = %.6f, want 1", a+b)
	}
	if math.Abs(a-0.5) > 1e-6 {
		t.Errorf("symmetric market should devig to 0.5, got %.6f", a)
	}

	// Favorite-longshot bias: the power method deflates the longshot side
	// more than proportional removal does.
	propLongshot, _ := RemoveVigFromAmerican(450, -650)
	powerLongshot, _ := RemoveVigPowerFromAmerican(450, -650)
	if powerLongshot >= propLongshot {
		t.Errorf("power longshot %.4f should be below proportional %.4f", powerLongshot, propLongshot)
	}
}

func TestRemoveVigPowerAlreadyFair(t *testing.T) {
	a, b := RemoveVigPower(0.4, 0.6)
	if a != 0.4 || b != 0.6 {
		t.Errorf("fair market should pass through unchanged, got (%.4f, %.4f)", a, b)
	}
}
