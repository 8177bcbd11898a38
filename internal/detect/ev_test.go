package detect

import (
	"math"
	"testing"

	"line-scanner/internal/consensus"
	"line-scanner/internal/group"
	"line-scanner/internal/market"
)

func totalRecord(t *testing.T, side market.Side, book market.Book, price, opp int) market.Record {
	t.Helper()
	r, err := market.NewGameTotal(
		market.Game{Home: "Boston Celtics", Away: "Miami Heat", Start: kickoff},
		market.PeriodFullGame, side, 221.5, book, price, opp,
	)
	if err != nil {
		t.Fatalf("building total: %v", err)
	}
	return r
}

func TestCalculateEV(t *testing.T) {
	tests := []struct {
		name     string
		trueProb float64
		price    int
		expected float64
	}{
		{"Consensus 55% at plus 110", 0.55, 110, 0.55*1.1 - 0.45},
		{"Coin flip at minus 110", 0.5, -110, 0.5*(100.0/110.0) - 0.5},
		{"Coin flip at plus 100 is fair", 0.5, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEV(tt.trueProb, tt.price)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CalculateEV(%.2f, %d) = %.6f, want %.6f", tt.trueProb, tt.price, got, tt.expected)
			}
		})
	}
}

func TestFindValueEmitsPositiveEVOnly(t *testing.T) {
	// Pinnacle's symmetric pair anchors consensus at 0.5. Its own -110
	// is -EV against that; BetMGM's +110 beats it. BetMGM carries no
	// complement so it prices the play without moving the consensus.
	g := &group.Group{}
	records := []market.Record{
		totalRecord(t, market.SideOver, market.BookPinnacle, -110, -110),
		totalRecord(t, market.SideOver, market.BookBetMGM, 110, 0),
	}
	g.Seed = records[0]
	g.Records = records

	agg := consensus.New(consensus.DefaultWeights())
	opps, err := FindValue([]*group.Group{g}, market.LeagueNBA, agg, DefaultConfig())
	if err != nil {
		t.Fatalf("FindValue: %v", err)
	}

	if len(opps) != 1 {
		t.Fatalf("got %d plays, want 1", len(opps))
	}

	play := opps[0]
	if play.Book != market.BookBetMGM || play.Price != 110 {
		t.Errorf("play = %s @ %d, want betmgm @ 110", play.Book, play.Price)
	}
	if math.Abs(play.EV-0.05) > 1e-9 {
		t.Errorf("EV = %.6f, want 0.05", play.EV)
	}
	if play.Likelihood != 0.5 {
		t.Errorf("Likelihood = %v, want 0.5", play.Likelihood)
	}
	if play.FairPrice != -100 {
		t.Errorf("FairPrice = %d, want -100", play.FairPrice)
	}
	if play.KellyStake <= 0 {
		t.Errorf("KellyStake = %v, want positive", play.KellyStake)
	}
}

func TestFindValueStrongThreshold(t *testing.T) {
	g := &group.Group{}
	records := []market.Record{
		totalRecord(t, market.SideOver, market.BookPinnacle, -110, -110),
		totalRecord(t, market.SideOver, market.BookBetMGM, 110, 0),
	}
	g.Seed = records[0]
	g.Records = records

	cfg := DefaultConfig()
	cfg.StrongEV = 0.04
	agg := consensus.New(consensus.DefaultWeights())

	opps, err := FindValue([]*group.Group{g}, market.LeagueNBA, agg, cfg)
	if err != nil {
		t.Fatalf("FindValue: %v", err)
	}
	if len(opps) != 1 || !opps[0].Strong {
		t.Error("a 5% EV play should be strong at a 4% threshold")
	}
}

func TestFindValueRanksByEV(t *testing.T) {
	mk := func(book market.Book, price int) *group.Group {
		g := &group.Group{}
		records := []market.Record{
			totalRecord(t, market.SideOver, market.BookPinnacle, -110, -110),
			totalRecord(t, market.SideOver, book, price, 0),
		}
		g.Seed = records[0]
		g.Records = records
		return g
	}

	agg := consensus.New(consensus.DefaultWeights())
	opps, err := FindValue(
		[]*group.Group{mk(market.BookBetMGM, 105), mk(market.BookCaesars, 120)},
		market.LeagueNBA, agg, DefaultConfig(),
	)
	if err != nil {
		t.Fatalf("FindValue: %v", err)
	}

	if len(opps) != 2 {
		t.Fatalf("got %d plays, want 2", len(opps))
	}
	if opps[0].Book != market.BookCaesars {
		t.Errorf("strongest play first: got %s", opps[0].Book)
	}
}

func TestFindValueUnknownLeague(t *testing.T) {
	g := &group.Group{}
	records := []market.Record{totalRecord(t, market.SideOver, market.BookPinnacle, -110, -110)}
	g.Seed = records[0]
	g.Records = records

	agg := consensus.New(consensus.DefaultWeights())
	if _, err := FindValue([]*group.Group{g}, market.League("darts"), agg, DefaultConfig()); err == nil {
		t.Fatal("unknown league must fail, not default")
	}
}

func TestKelly(t *testing.T) {
	tests := []struct {
		name     string
		trueProb float64
		price    int
		fraction float64
		expected float64
	}{
		// f* = (0.55*1.1 - 0.45) / 1.1 ≈ 0.1409, quartered.
		{"Quarter Kelly on a value price", 0.55, 110, 0.25, (0.55*1.1 - 0.45) / 1.1 * 0.25},
		{"Negative edge floors at zero", 0.45, -110, 0.25, 0},
		{"Invalid probability", 1.2, 110, 0.25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Kelly(tt.trueProb, tt.price, tt.fraction)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Kelly = %.6f, want %.6f", got, tt.expected)
			}
		})
	}
}
