package odds

import "math"

// AmericanToImplied converts American odds to implied probability
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func AmericanToImplied(price int) float64 {
	if price == 0 {
		return 0
	}

	if price > 0 {
		// Underdog: probability = 100 / (price + 100)
		return 100.0 / (float64(price) + 100.0)
	}
	// Favorite: probability = |price| / (|price| + 100)
	return math.Abs(float64(price)) / (math.Abs(float64(price)) + 100.0)
}

// AmericanToDecimal converts American odds to decimal odds
// Example: +150 → 2.50, -150 → 1.667
func AmericanToDecimal(price int) float64 {
	if price == 0 {
		return 0
	}

	if price > 0 {
		return float64(price)/100.0 + 1.0
	}
	return 100.0/math.Abs(float64(price)) + 1.0
}

// ImpliedToAmerican converts a probability to the American price that
// implies it. A probability of exactly 0.5 maps to -100: the favorite
// branch takes the tie, so a symmetric market renders as -100/-100
// rather than an asymmetric +100/-100.
func ImpliedToAmerican(prob float64) int {
	if prob <= 0 || prob >= 1 {
		return 0
	}

	if prob >= 0.5 {
		// Favorite: negative price
		return -int(math.Round(100.0 * prob / (1.0 - prob)))
	}
	// Underdog: positive price
	return int(math.Round(100.0 * (1.0 - prob) / prob))
}

// ProfitMultiplier returns the net profit per unit staked when a bet at
// the given American price wins.
// Example: +150 → 1.5, -150 → 0.667
func ProfitMultiplier(price int) float64 {
	if price == 0 {
		return 0
	}

	if price > 0 {
		return float64(price) / 100.0
	}
	return 100.0 / math.Abs(float64(price))
}
