package detect

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"line-scanner/internal/group"
	"line-scanner/internal/market"
	"line-scanner/internal/odds"
)

// ArbOpportunity is a price pair across a group and its opposite whose
// implied probabilities sum below 1: backing both sides locks in profit.
type ArbOpportunity struct {
	ID      string
	Outcome string // the primary side's label

	SideA, SideB   market.Side
	BookA, BookB   market.Book
	PriceA, PriceB int

	// InverseSum is 1/decimal(PriceA) + 1/decimal(PriceB); the margin is
	// its shortfall from 1. Smaller sum = larger guaranteed margin.
	InverseSum float64
	Margin     float64

	// StakeA and StakeB split a 1-unit total stake so both legs pay the
	// same amount.
	StakeA, StakeB float64
}

// FindArbs scans every group/opposite pairing for arbitrage. All price
// pairs across the two sides are checked, every qualifying pair is
// emitted, and the result is ranked by ascending inverse sum.
func FindArbs(groups []*group.Group, cfg Config) []ArbOpportunity {
	var opps []ArbOpportunity

	seen := make(map[*group.Group]bool)
	for _, g := range groups {
		opp := g.Opposite
		if opp == nil || seen[g] || seen[opp] {
			continue
		}
		seen[g], seen[opp] = true, true

		for _, a := range g.Prices() {
			decA := odds.AmericanToDecimal(a.Price)
			if decA <= 1 {
				continue
			}
			for _, b := range opp.Prices() {
				decB := odds.AmericanToDecimal(b.Price)
				if decB <= 1 {
					continue
				}

				sum := 1/decA + 1/decB
				if sum >= 1 || 1-sum < cfg.MinArbMargin {
					continue
				}

				stakeA, stakeB := SplitStakes(1, decA, decB)
				arb := ArbOpportunity{
					ID:         uuid.New().String(),
					Outcome:    g.Label(),
					SideA:      g.Side(),
					SideB:      opp.Side(),
					BookA:      a.Book,
					BookB:      b.Book,
					PriceA:     a.Price,
					PriceB:     b.Price,
					InverseSum: sum,
					Margin:     1 - sum,
					StakeA:     stakeA,
					StakeB:     stakeB,
				}
				if !arb.payoutsBalance(1) {
					continue
				}
				opps = append(opps, arb)
			}
		}
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].InverseSum < opps[j].InverseSum
	})
	return opps
}

// SplitStakes divides totalStake across two legs with the given decimal
// prices so that both legs return the same payout. Each stake is inversely
// proportional to its own price:
// stakeA = total / (decA/decB + 1), stakeB = total - stakeA,
// which gives stakeA*decA == stakeB*decB.
func SplitStakes(totalStake, decA, decB float64) (stakeA, stakeB float64) {
	stakeA = totalStake / (decA/decB + 1)
	return stakeA, totalStake - stakeA
}

// payoutsBalance confirms both legs return more than the total stake,
// within a cent of rounding slack per unit staked.
func (a ArbOpportunity) payoutsBalance(totalStake float64) bool {
	const slack = 0.01

	decA := odds.AmericanToDecimal(a.PriceA)
	decB := odds.AmericanToDecimal(a.PriceB)
	payoutA := a.StakeA * decA
	payoutB := a.StakeB * decB

	if math.Abs(payoutA-payoutB) > slack {
		return false
	}
	return payoutA > totalStake-slack && payoutB > totalStake-slack
}
