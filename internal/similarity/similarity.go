// Package similarity provides the fuzzy name comparison used when deciding
// whether two books are quoting the same team or player. Books never agree
// on naming ("Kansas City Chiefs" vs "KC Chiefs"), so exact matching is
// hopeless and approximate matching is accepted by design.
package similarity

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultThreshold is the score above which two names are treated as the
// same subject.
const DefaultThreshold = 0.85

// Scorer rates how alike two names are: 0 = unrelated, 1 = identical.
type Scorer interface {
	Score(a, b string) float64
}

// NameScorer scores names with a string metric on the full normalized
// strings, and also on the final token. The final token carries the
// discriminating part of a team name (the nickname) and of most player
// names (the surname), so "KC Chiefs" still lines up with
// "Kansas City Chiefs" while "Denver Broncos" does not.
type NameScorer struct {
	full  strutil.StringMetric
	token strutil.StringMetric
}

// NewScorer returns the default NameScorer.
func NewScorer() *NameScorer {
	return &NameScorer{
		full:  metrics.NewSorensenDice(),
		token: metrics.NewJaroWinkler(),
	}
}

// Score returns the similarity of two names in [0, 1].
func (s *NameScorer) Score(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	score := strutil.Similarity(na, nb, s.full)

	// Nickname/surname fallback: identical final tokens outrank a weak
	// whole-string score.
	if last := strutil.Similarity(lastToken(na), lastToken(nb), s.token); last > score {
		score = last
	}

	return score
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), " ")
}

func lastToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}
