package detect

import (
	"math"

	"line-scanner/internal/odds"
)

// Kelly computes the Kelly criterion stake fraction for a bet at an
// American price, scaled by fraction (e.g. 0.25 for quarter Kelly).
// Kelly formula: f* = (p*b - q) / b
// where: p = probability of winning, q = 1-p, b = net profit per unit staked
func Kelly(trueProb float64, price int, fraction float64) float64 {
	if trueProb <= 0 || trueProb >= 1 {
		return 0
	}

	b := odds.ProfitMultiplier(price)
	if b <= 0 {
		return 0
	}

	p := trueProb
	q := 1.0 - p
	kelly := (p*b - q) / b

	// Floor at 0 and never recommend more than the whole bankroll.
	kelly = math.Max(0, kelly)
	kelly = math.Min(kelly, 1.0)

	return kelly * fraction
}
