// Package group partitions a flat batch of odds records into equivalence
// groups, one group per bettable outcome, and cross-links each group to
// its alternate lines and to its complementary side.
package group

import (
	"fmt"

	"line-scanner/internal/market"
	"line-scanner/internal/match"
)

// PricePoint is one book's quote inside a group.
type PricePoint struct {
	Book          market.Book
	Price         int
	OppositePrice int
}

// Group is a set of records judged to price the identical outcome. The
// seed is the canonical record the other members matched against; group
// membership is seed-relative, not transitively closed (see Partition).
type Group struct {
	Seed    market.Record
	Records []market.Record

	// Related are groups for the same subject/market/period/side at a
	// different line value (alternate lines). Opposite is the single
	// group for the complementary side. Both are filled by CrossLink.
	Related  []*Group
	Opposite *Group
}

// Kind returns the group's market kind.
func (g *Group) Kind() market.Kind { return g.Seed.Kind }

// Side returns the group's bettable choice.
func (g *Group) Side() market.Side { return g.Seed.Side }

// Value returns the group's line value and whether it has one.
func (g *Group) Value() (float64, bool) {
	if g.Seed.Value == nil {
		return 0, false
	}
	return *g.Seed.Value, true
}

// Subject renders the group's subject for keys and log lines.
func (g *Group) Subject() string { return g.Seed.Subject() }

// Prices returns one PricePoint per member record, in member order.
func (g *Group) Prices() []PricePoint {
	points := make([]PricePoint, 0, len(g.Records))
	for _, r := range g.Records {
		points = append(points, PricePoint{
			Book:          r.Book,
			Price:         r.Price,
			OppositePrice: r.OppositePrice,
		})
	}
	return points
}

// Label renders a short identity string for logs and alert dedupe keys.
func (g *Group) Label() string {
	if v, ok := g.Value(); ok {
		return fmt.Sprintf("%s %s %s %s %.1f", g.Subject(), g.Seed.Period, g.Kind(), g.Side(), v)
	}
	return fmt.Sprintf("%s %s %s %s", g.Subject(), g.Seed.Period, g.Kind(), g.Side())
}

// Partition splits records into equivalence groups with a greedy
// single-pass pool drain: the first ungrouped record seeds a group, every
// pool record pricing the same outcome joins it, and the records pricing
// the opposite outcome are drained in the same step as their own group
// seeded by the first of them. Deterministic for a fixed input order, and
// order-dependent by construction: membership is judged against the seed,
// not transitively closed across the whole batch. PartitionStrict gives
// the transitive guarantee at extra cost.
//
// Every input record lands in exactly one group; Partition fails loudly
// if the bookkeeping ever breaks that.
func Partition(records []market.Record, m *match.Matcher) ([]*Group, error) {
	pool := make([]market.Record, len(records))
	copy(pool, records)

	var groups []*Group
	for len(pool) > 0 {
		seed := pool[0]
		rest := pool[1:]

		sameIdx := m.Matches(seed, rest, match.SameOutcome(seed.Kind))
		oppIdx := m.Matches(seed, rest, match.OppositeOutcome(seed.Kind))

		g := &Group{Seed: seed, Records: append([]market.Record{seed}, pick(rest, sameIdx)...)}
		groups = append(groups, g)

		consumed := make(map[int]bool, len(sameIdx)+len(oppIdx))
		for _, i := range sameIdx {
			consumed[i] = true
		}

		// Drain the opposite side as its own group now, seeded by its
		// first record. Opposite records that don't price the opposite
		// seed's exact outcome stay in the pool for a later seed instead
		// of being dropped.
		if len(oppIdx) > 0 {
			oppSeed := rest[oppIdx[0]]
			opp := &Group{Seed: oppSeed, Records: []market.Record{oppSeed}}
			consumed[oppIdx[0]] = true
			for _, i := range oppIdx[1:] {
				if m.Equivalent(oppSeed, rest[i], match.SameOutcome(oppSeed.Kind)) {
					opp.Records = append(opp.Records, rest[i])
					consumed[i] = true
				}
			}
			groups = append(groups, opp)
		}

		next := pool[:0]
		for i, r := range rest {
			if !consumed[i] {
				next = append(next, r)
			}
		}
		pool = next
	}

	if err := verifyCoverage(records, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// PartitionStrict partitions by union-find over the pairwise same-outcome
// predicate. Unlike Partition, membership is transitively closed: if A
// matches B and B matches C, all three share a group even when A and C
// would not match directly.
func PartitionStrict(records []market.Record, m *match.Matcher) ([]*Group, error) {
	parent := make([]int, len(records))
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			if rb < ra {
				ra, rb = rb, ra
			}
			parent[rb] = ra // lowest index wins, keeps output order stable
		}
	}

	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			if m.Equivalent(records[i], records[j], match.SameOutcome(records[i].Kind)) {
				union(i, j)
			}
		}
	}

	byRoot := make(map[int]*Group)
	var groups []*Group
	for i, r := range records {
		root := find(i)
		g, ok := byRoot[root]
		if !ok {
			g = &Group{Seed: records[root]}
			byRoot[root] = g
			groups = append(groups, g)
		}
		g.Records = append(g.Records, r)
	}

	if err := verifyCoverage(records, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CrossLink fills Related and Opposite on every group. Related collects
// alternate lines: same subject, market, period and side at a different
// value. Opposite is the complementary side at the same value for
// moneylines and totals, or the mirrored value for spreads; the first
// match in group order wins, which makes ties deterministic for a fixed
// input order.
//
// Opposite linking uses the combined subject threshold rather than the
// per-name one: losing a pairable opposite side costs the downstream
// detectors an arbitrage or a complement price, so a strong match on one
// team name is allowed to carry a book's abbreviation of the other.
func CrossLink(groups []*Group, m *match.Matcher) {
	for i, g := range groups {
		oppOpts := match.OppositeOutcome(g.Kind())
		oppOpts.Subject = match.SubjectCombined

		for j, other := range groups {
			if i == j {
				continue
			}

			if isAlternateLine(g, other, m) {
				g.Related = append(g.Related, other)
				continue
			}

			if g.Opposite == nil && m.Equivalent(g.Seed, other.Seed, oppOpts) {
				g.Opposite = other
			}
		}
	}
}

func isAlternateLine(g, other *Group, m *match.Matcher) bool {
	gv, gok := g.Value()
	ov, ook := other.Value()
	if !gok || !ook || gv == ov {
		return false
	}

	opts := match.SameOutcome(g.Kind())
	opts.Value = match.ValueAny
	return m.Equivalent(g.Seed, other.Seed, opts)
}

func pick(pool []market.Record, idx []int) []market.Record {
	out := make([]market.Record, 0, len(idx))
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func verifyCoverage(records []market.Record, groups []*Group) error {
	grouped := 0
	for _, g := range groups {
		grouped += len(g.Records)
	}
	if grouped != len(records) {
		return fmt.Errorf("grouping dropped records: %d in, %d grouped", len(records), grouped)
	}
	return nil
}
