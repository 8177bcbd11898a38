package detect

import (
	"sort"

	"github.com/google/uuid"

	"line-scanner/internal/consensus"
	"line-scanner/internal/group"
	"line-scanner/internal/market"
	"line-scanner/internal/odds"
)

// ValueOpportunity is one book's price beating the consensus probability
// for an outcome group.
type ValueOpportunity struct {
	ID      string
	Outcome string

	Book  market.Book
	Price int

	// Likelihood is the consensus probability, FairPrice its American
	// equivalent. EV is the expected profit per unit staked at Price.
	Likelihood float64
	FairPrice  int
	EV         float64

	// Strong marks plays past the highlight threshold.
	Strong bool

	// KellyStake is the recommended stake fraction at the configured
	// Kelly fraction.
	KellyStake float64
}

// CalculateEV is the expected profit per unit staked:
// EV = p × payout(price) − (1 − p)
func CalculateEV(trueProb float64, price int) float64 {
	return trueProb*odds.ProfitMultiplier(price) - (1 - trueProb)
}

// FindValue emits one play per (group, book) whose EV clears the floor.
// An unknown league is fatal: that is a configuration error, not a data
// glitch, and guessing weights would poison every result.
func FindValue(groups []*group.Group, league market.League, agg *consensus.Aggregator, cfg Config) ([]ValueOpportunity, error) {
	var opps []ValueOpportunity

	for _, g := range groups {
		p, err := agg.Likelihood(g, league)
		if err != nil {
			return nil, err
		}
		if p <= 0 || p >= 1 {
			continue
		}

		for _, point := range g.Prices() {
			ev := CalculateEV(p, point.Price)
			if ev <= cfg.MinEV {
				continue
			}

			opps = append(opps, ValueOpportunity{
				ID:         uuid.New().String(),
				Outcome:    g.Label(),
				Book:       point.Book,
				Price:      point.Price,
				Likelihood: p,
				FairPrice:  odds.ImpliedToAmerican(p),
				EV:         ev,
				Strong:     ev >= cfg.StrongEV,
				KellyStake: Kelly(p, point.Price, cfg.KellyFraction),
			})
		}
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].EV > opps[j].EV
	})
	return opps, nil
}
