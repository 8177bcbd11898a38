package detect

import (
	"sort"

	"github.com/google/uuid"

	"line-scanner/internal/consensus"
	"line-scanner/internal/group"
	"line-scanner/internal/market"
	"line-scanner/internal/odds"
)

// DirectionSlack softens the favored/disfavored checks around the coin
// flip: a rung counts as favored above 0.495 rather than 0.5, so a
// ladder leaning one way is not broken by a single rung sitting on the
// fence.
const DirectionSlack = 0.005

// MisvalueOpportunity flags a price at the extreme value of an
// alternate-line ladder that disagrees with what the neighboring lines'
// consensus implies for that value.
type MisvalueOpportunity struct {
	ID      string
	Outcome string

	Book  market.Book
	Price int
	Value float64

	// Likelihood is the neighbors' consensus translated to the extreme
	// value for the played side; Deviation is its surplus over the
	// price's implied probability.
	Likelihood float64
	Deviation  float64
}

// FindMisvalued walks every alternate-line ladder (a group plus its
// Related set) and checks whether the market strictly favors one
// direction. When every rung above the lowest value is favored, the
// lowest rung's best price is checked against the consensus translated
// down to its value; when every rung below the highest value is
// disfavored, the play moves to the highest rung's opposite side.
// Results are ranked by descending deviation.
func FindMisvalued(groups []*group.Group, league market.League, agg *consensus.Aggregator, cfg Config) ([]MisvalueOpportunity, error) {
	var opps []MisvalueOpportunity

	seen := make(map[*group.Group]bool)
	for _, g := range groups {
		if seen[g] || len(g.Related) == 0 {
			continue
		}

		rungs := append([]*group.Group{g}, g.Related...)
		for _, r := range rungs {
			seen[r] = true
		}
		if len(rungs) < cfg.MinRungs {
			continue
		}

		ladder, err := buildLadder(rungs, league, agg)
		if err != nil {
			return nil, err
		}

		if opp, ok := checkLowExtreme(ladder, cfg); ok {
			opps = append(opps, opp)
			continue
		}
		if opp, ok := checkHighExtreme(ladder, league, agg, cfg); ok {
			opps = append(opps, opp)
		}
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].Deviation > opps[j].Deviation
	})
	return opps, nil
}

// rung is one line value of a ladder with its consensus likelihood.
type rung struct {
	group      *group.Group
	value      float64
	likelihood float64
}

func buildLadder(groups []*group.Group, league market.League, agg *consensus.Aggregator) ([]rung, error) {
	ladder := make([]rung, 0, len(groups))
	for _, g := range groups {
		v, ok := g.Value()
		if !ok {
			continue
		}
		p, err := agg.Likelihood(g, league)
		if err != nil {
			return nil, err
		}
		ladder = append(ladder, rung{group: g, value: v, likelihood: p})
	}

	sort.SliceStable(ladder, func(i, j int) bool {
		return ladder[i].value < ladder[j].value
	})
	return ladder, nil
}

// checkLowExtreme fires when every rung above the lowest value is
// favored: the lowest line should then be priced well past the coin
// flip, and a book that is not doing so is leaving value.
func checkLowExtreme(ladder []rung, cfg Config) (MisvalueOpportunity, bool) {
	if len(ladder) < 2 {
		return MisvalueOpportunity{}, false
	}

	for _, r := range ladder[1:] {
		if r.likelihood <= 0.5-DirectionSlack {
			return MisvalueOpportunity{}, false
		}
	}

	extreme := ladder[0]
	implied := neighborConsensus(ladder[1:], extreme)
	return playAgainst(extreme.group, implied, cfg)
}

// checkHighExtreme mirrors checkLowExtreme: every rung below the highest
// value disfavored means the highest line's opposite side is the play.
func checkHighExtreme(ladder []rung, league market.League, agg *consensus.Aggregator, cfg Config) (MisvalueOpportunity, bool) {
	if len(ladder) < 2 {
		return MisvalueOpportunity{}, false
	}

	for _, r := range ladder[:len(ladder)-1] {
		if r.likelihood >= 0.5+DirectionSlack {
			return MisvalueOpportunity{}, false
		}
	}

	extreme := ladder[len(ladder)-1]
	opposite := extreme.group.Opposite
	if opposite == nil {
		return MisvalueOpportunity{}, false
	}

	implied := 1 - neighborConsensus(ladder[:len(ladder)-1], extreme)
	return playAgainst(opposite, implied, cfg)
}

// neighborConsensus translates each neighbor rung's likelihood to the
// extreme rung's value and averages them.
func neighborConsensus(neighbors []rung, extreme rung) float64 {
	var sum float64
	for _, r := range neighbors {
		sum += consensus.TranslateLikelihood(
			r.likelihood, r.value, extreme.value,
			r.group.Kind(), r.group.Side(),
		)
	}
	return sum / float64(len(neighbors))
}

// playAgainst pairs the group's best price against the implied consensus
// likelihood for that side at that value.
func playAgainst(g *group.Group, implied float64, cfg Config) (MisvalueOpportunity, bool) {
	best, ok := bestPrice(g)
	if !ok {
		return MisvalueOpportunity{}, false
	}

	deviation := implied - odds.AmericanToImplied(best.Price)
	if deviation < cfg.MinDeviation {
		return MisvalueOpportunity{}, false
	}

	value, _ := g.Value()
	return MisvalueOpportunity{
		ID:         uuid.New().String(),
		Outcome:    g.Label(),
		Book:       best.Book,
		Price:      best.Price,
		Value:      value,
		Likelihood: implied,
		Deviation:  deviation,
	}, true
}

// bestPrice is the bettor's best quote in the group: the highest payout.
func bestPrice(g *group.Group) (group.PricePoint, bool) {
	points := g.Prices()
	if len(points) == 0 {
		return group.PricePoint{}, false
	}

	best := points[0]
	for _, p := range points[1:] {
		if odds.AmericanToDecimal(p.Price) > odds.AmericanToDecimal(best.Price) {
			best = p
		}
	}
	return best, true
}
