// Package consensus turns an equivalence group's book prices into a
// single vig-free probability estimate, weighted by how sharp each book
// is considered for the league.
package consensus

import (
	"line-scanner/internal/group"
	"line-scanner/internal/market"
	"line-scanner/internal/mathutil"
	"line-scanner/internal/odds"
)

// Standard deviations of the result-vs-line distribution, used when
// translating a cover probability from one line value to a neighbor.
// Spread and game total come from historical NBA margin data; team totals
// and props use tighter empirical spreads.
const (
	SpreadStdDev    = 11.5
	GameTotalStdDev = 17.0
	TeamTotalStdDev = 10.0
	PropStdDev      = 6.0

	// NeutralLikelihood is what a group with zero usable weight gets.
	// A policy placeholder, not a derived value: with every book either
	// weighted out or missing a complement there is nothing to estimate.
	NeutralLikelihood = 0.5
)

// VigMethod selects how a two-way pair is de-vigged.
type VigMethod int

const (
	// MethodProportional normalizes the two implied probabilities to sum
	// to 1 (equal-margin assumption).
	MethodProportional VigMethod = iota
	// MethodPower solves p1^k + p2^k = 1, deflating longshots harder to
	// correct for favorite-longshot bias.
	MethodPower
)

// Aggregator computes weighted consensus likelihoods against one weight
// table. Safe for concurrent use: it only reads.
type Aggregator struct {
	weights WeightTable
	method  VigMethod
}

// New builds an Aggregator using proportional vig removal.
func New(weights WeightTable) *Aggregator {
	return &Aggregator{weights: weights}
}

// NewWithMethod builds an Aggregator with an explicit vig method.
func NewWithMethod(weights WeightTable, method VigMethod) *Aggregator {
	return &Aggregator{weights: weights, method: method}
}

// Likelihood estimates the probability that the group's outcome hits.
//
// Each price point contributes its one-sided vig-free probability,
// de-vigged against the same book's complementary price: the record's own
// stored opposite price, or failing that the book's price found in the
// linked opposite group. Points with no complement anywhere are skipped
// rather than failing the group. Contributions are averaged with the
// league's book weights; an unknown league fails before any arithmetic,
// and zero total weight yields NeutralLikelihood.
func (a *Aggregator) Likelihood(g *group.Group, league market.League) (float64, error) {
	if !a.weights.Known(league) {
		return 0, ErrUnknownLeague
	}

	var probs, weights []float64
	for _, point := range g.Prices() {
		complement := a.complementPrice(g, point)
		if complement == 0 {
			continue
		}

		w, err := a.weights.Weight(league, point.Book)
		if err != nil {
			return 0, err
		}
		if w == 0 {
			continue
		}

		prob := a.devig(point.Price, complement)
		if prob <= 0 || prob >= 1 {
			continue
		}

		probs = append(probs, prob)
		weights = append(weights, w)
	}

	mean, total := mathutil.WeightedMean(probs, weights)
	if total == 0 {
		return NeutralLikelihood, nil
	}
	return mean, nil
}

// FairPrice returns the American price implied by the consensus
// likelihood.
func (a *Aggregator) FairPrice(g *group.Group, league market.League) (int, error) {
	p, err := a.Likelihood(g, league)
	if err != nil {
		return 0, err
	}
	return odds.ImpliedToAmerican(p), nil
}

// complementPrice finds the price of the complementary choice quoted by
// the same book, preferring the record's own paired price.
func (a *Aggregator) complementPrice(g *group.Group, point group.PricePoint) int {
	if point.OppositePrice != 0 {
		return point.OppositePrice
	}
	if g.Opposite == nil {
		return 0
	}
	for _, opp := range g.Opposite.Prices() {
		if opp.Book == point.Book {
			return opp.Price
		}
	}
	return 0
}

func (a *Aggregator) devig(price, complement int) float64 {
	if a.method == MethodPower {
		p, _ := odds.RemoveVigPowerFromAmerican(price, complement)
		return p
	}
	p, _ := odds.RemoveVigFromAmerican(price, complement)
	return p
}

// TranslateLikelihood moves a cover probability from one line value to a
// neighboring value using a normal model of the result around the line:
// the probability's z-score shifts by the line difference over the
// market's standard deviation.
//
// Direction depends on the side. A spread gets easier for the chosen team
// as its number rises (-2.5 beats -3.5); an over gets harder as the total
// rises; an under gets easier.
func TranslateLikelihood(prob, fromValue, toValue float64, kind market.Kind, side market.Side) float64 {
	if fromValue == toValue || prob <= 0 || prob >= 1 {
		return prob
	}

	sigma := stdDevFor(kind)
	z := mathutil.NormalInvCDF(prob)
	shift := (toValue - fromValue) / sigma

	if side == market.SideOver {
		shift = -shift
	}
	translated := mathutil.NormalCDF(z + shift)

	return mathutil.Clamp(translated, 0.01, 0.99)
}

func stdDevFor(kind market.Kind) float64 {
	switch kind {
	case market.KindGameTotal:
		return GameTotalStdDev
	case market.KindTeamTotal:
		return TeamTotalStdDev
	case market.KindPlayerProp:
		return PropStdDev
	default:
		return SpreadStdDev
	}
}
