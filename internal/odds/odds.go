package odds

import (
	"errors"
	"fmt"
)

// ErrNoPrice is returned when a payout is requested from Odds that were
// built from a bare probability. A fair probability has no payout: that
// needs an actual offered price.
var ErrNoPrice = errors.New("odds carry no American price")

// Odds is a single betting price viewed as a probability. It can be built
// from any quoting convention (American, decimal, fractional, a vig-free
// probability, or a vigged two-way pair) and converted back out.
//
// The probability and the attached American price are tracked separately:
// FromVig keeps the real offered price alongside the de-vigged probability,
// so payout math still uses what the book actually pays.
type Odds struct {
	prob     float64
	american int
	hasPrice bool
}

// FromAmerican builds Odds from an American price.
// -150 → 60% implied, +150 → 40% implied.
func FromAmerican(price int) (Odds, error) {
	if price == 0 {
		return Odds{}, fmt.Errorf("invalid American odds: cannot be 0")
	}
	return Odds{
		prob:     AmericanToImplied(price),
		american: price,
		hasPrice: true,
	}, nil
}

// FromDecimal builds Odds from decimal odds. 2.50 → 40% implied.
func FromDecimal(decimal float64) (Odds, error) {
	if decimal <= 1.0 {
		return Odds{}, fmt.Errorf("invalid decimal odds %.3f: must be > 1.0", decimal)
	}
	prob := 1.0 / decimal
	return Odds{
		prob:     prob,
		american: ImpliedToAmerican(prob),
		hasPrice: true,
	}, nil
}

// FromFractional builds Odds from fractional odds. 3/2 (1.5) → 40% implied.
func FromFractional(fractional float64) (Odds, error) {
	if fractional <= 0 {
		return Odds{}, fmt.Errorf("invalid fractional odds %.3f: must be > 0", fractional)
	}
	prob := 1.0 / (fractional + 1.0)
	return Odds{
		prob:     prob,
		american: ImpliedToAmerican(prob),
		hasPrice: true,
	}, nil
}

// FromProbability builds price-less Odds from a fair probability.
// PayoutMultiplier on the result fails: there is no offered price.
func FromProbability(prob float64) (Odds, error) {
	if prob <= 0 || prob >= 1 {
		return Odds{}, fmt.Errorf("invalid probability %.4f: must be in (0, 1)", prob)
	}
	return Odds{prob: prob}, nil
}

// FromVig builds vig-free Odds for the desired side of a two-way market.
// Both sides' raw implied probabilities are normalized to sum to 1, which
// removes the overround under the usual proportional-margin assumption.
// The desired side's actual price stays attached for payout math.
//
// FromVig(-110, -110) → exactly 50%.
func FromVig(desiredPrice, undesiredPrice int) (Odds, error) {
	if desiredPrice == 0 || undesiredPrice == 0 {
		return Odds{}, fmt.Errorf("invalid American odds: cannot be 0")
	}

	desired, undesired := RemoveVig(
		AmericanToImplied(desiredPrice),
		AmericanToImplied(undesiredPrice),
	)
	if desired <= 0 || undesired <= 0 {
		return Odds{}, fmt.Errorf("invalid vig pair %d/%d", desiredPrice, undesiredPrice)
	}

	return Odds{
		prob:     desired,
		american: desiredPrice,
		hasPrice: true,
	}, nil
}

// Probability returns the implied (or vig-free, for FromVig) probability.
func (o Odds) Probability() float64 {
	return o.prob
}

// ToAmerican converts the probability back to an American price.
// Probabilities ≥ 0.5 take the negative (favorite) branch.
func (o Odds) ToAmerican() int {
	return ImpliedToAmerican(o.prob)
}

// ToDecimal returns the decimal odds implied by the probability.
func (o Odds) ToDecimal() float64 {
	if o.prob <= 0 {
		return 0
	}
	return 1.0 / o.prob
}

// PayoutMultiplier returns the net profit per unit staked at the attached
// American price. Fails for probability-only Odds.
func (o Odds) PayoutMultiplier() (float64, error) {
	if !o.hasPrice {
		return 0, ErrNoPrice
	}
	return ProfitMultiplier(o.american), nil
}

// American returns the attached American price and whether one exists.
func (o Odds) American() (int, bool) {
	return o.american, o.hasPrice
}
