// Package match decides whether two odds records refer to the same
// real-world bettable outcome. Different books disagree on naming and on
// sign conventions, so subject identity is fuzzy while market, period,
// side and value are structural.
package match

import (
	"line-scanner/internal/market"
	"line-scanner/internal/similarity"
)

// CombinedThreshold is the summed home+away score required in combined
// subject mode.
const CombinedThreshold = 1.5

// SubjectMode selects how game subjects are compared.
type SubjectMode int

const (
	// SubjectIndependent requires each of the home and away names to
	// clear the threshold on its own.
	SubjectIndependent SubjectMode = iota
	// SubjectCombined requires the two scores to clear a summed
	// threshold, letting a strong match on one name carry a weaker one.
	SubjectCombined
)

// ValueMode selects how line values are compared.
type ValueMode int

const (
	// ValueAbsolute matches |a| == |b|: same outcome quoted under either
	// book's sign convention.
	ValueAbsolute ValueMode = iota
	// ValueSigned matches a == b exactly.
	ValueSigned
	// ValueNegated matches a == -b: the opposite side of a symmetric
	// market (spread).
	ValueNegated
	// ValueAny ignores the line value: used when hunting alternate lines
	// for the same subject and side.
	ValueAny
)

// Options control a single equivalence query.
type Options struct {
	// SameChoice true looks for the identical choice; false looks for
	// the complementary one (over↔under, home↔away).
	SameChoice bool
	Subject    SubjectMode
	Value      ValueMode
}

// SameOutcome returns the options that find another book's quote for the
// identical outcome of the given market kind.
func SameOutcome(market.Kind) Options {
	return Options{
		SameChoice: true,
		Subject:    SubjectIndependent,
		Value:      ValueAbsolute,
	}
}

// OppositeOutcome returns the options that find the complementary side of
// the given market kind: mirrored value for spreads, same value for
// totals and props, no value for moneylines.
func OppositeOutcome(kind market.Kind) Options {
	opts := Options{
		SameChoice: false,
		Subject:    SubjectIndependent,
		Value:      ValueSigned,
	}
	if kind.Symmetric() {
		opts.Value = ValueNegated
	}
	return opts
}

// Matcher answers equivalence queries using a fuzzy name scorer.
type Matcher struct {
	scorer    similarity.Scorer
	threshold float64
	combined  float64
}

// New builds a Matcher with the default thresholds (0.85 per name,
// 1.5 combined).
func New(scorer similarity.Scorer) *Matcher {
	return &Matcher{
		scorer:    scorer,
		threshold: similarity.DefaultThreshold,
		combined:  CombinedThreshold,
	}
}

// Equivalent reports whether b represents the outcome of a selected by
// opts: the identical outcome when opts.SameChoice, otherwise the
// complementary one.
func (m *Matcher) Equivalent(a, b market.Record, opts Options) bool {
	if a.Kind != b.Kind || a.Period != b.Period {
		return false
	}

	if !m.sameSubject(a, b, opts.Subject) {
		return false
	}

	wantSide := a.Side
	if !opts.SameChoice {
		wantSide = a.Side.Complement()
	}
	if b.Side != wantSide {
		return false
	}

	// A team total is anchored to one team's score: over and under of the
	// same outcome both carry that team, so the team side must agree no
	// matter which choice we are looking for.
	if a.Kind == market.KindTeamTotal && a.TeamSide != b.TeamSide {
		return false
	}

	return valuesMatch(a, b, opts.Value)
}

// Matches returns the indexes of every pool record equivalent to seed
// under opts. All matches are returned, not just the first; callers
// choose how to reduce.
func (m *Matcher) Matches(seed market.Record, pool []market.Record, opts Options) []int {
	var matched []int
	for i, r := range pool {
		if m.Equivalent(seed, r, opts) {
			matched = append(matched, i)
		}
	}
	return matched
}

func (m *Matcher) sameSubject(a, b market.Record, mode SubjectMode) bool {
	switch {
	case a.Game != nil && b.Game != nil:
		home := m.scorer.Score(a.Game.Home, b.Game.Home)
		away := m.scorer.Score(a.Game.Away, b.Game.Away)
		if mode == SubjectCombined {
			return home+away > m.combined
		}
		return home > m.threshold && away > m.threshold

	case a.Player != nil && b.Player != nil:
		if a.Stat != b.Stat {
			return false
		}
		if m.scorer.Score(a.Player.Name, b.Player.Name) <= m.threshold {
			return false
		}
		// Team narrows the match only when both books name one.
		if a.Player.Team != "" && b.Player.Team != "" {
			return m.scorer.Score(a.Player.Team, b.Player.Team) > m.threshold
		}
		return true
	}

	return false
}

func valuesMatch(a, b market.Record, mode ValueMode) bool {
	if mode == ValueAny {
		return true
	}
	if a.Value == nil && b.Value == nil {
		return true
	}
	if a.Value == nil || b.Value == nil {
		return false
	}

	av, bv := *a.Value, *b.Value
	switch mode {
	case ValueSigned:
		return av == bv
	case ValueNegated:
		return av == -bv
	default:
		return abs(av) == abs(bv)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
