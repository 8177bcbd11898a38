package consensus

import (
	"errors"
	"testing"

	"line-scanner/internal/market"
)

func TestWeightLookup(t *testing.T) {
	table := WeightTable{
		market.LeagueNFL: {
			market.BookPinnacle: 3,
			market.BookKalshi:   0,
		},
	}

	tests := []struct {
		name    string
		league  market.League
		book    market.Book
		want    float64
		wantErr bool
	}{
		{"Listed book", market.LeagueNFL, market.BookPinnacle, 3, false},
		{"Zero weight preserved", market.LeagueNFL, market.BookKalshi, 0, false},
		{"Unlisted book defaults to 1", market.LeagueNFL, market.BookFanDuel, 1, false},
		{"Unknown league fails", market.LeagueNHL, market.BookPinnacle, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Weight(tt.league, tt.book)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLeague) {
					t.Fatalf("expected ErrUnknownLeague, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Weight: %v", err)
			}
			if got != tt.want {
				t.Errorf("Weight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultWeightsCoverAllLeagues(t *testing.T) {
	table := DefaultWeights()
	for _, league := range []market.League{market.LeagueNBA, market.LeagueNFL, market.LeagueMLB, market.LeagueNHL} {
		if !table.Known(league) {
			t.Errorf("default table missing %s", league)
		}
	}

	// Prop platforms are display-only by default.
	w, err := table.Weight(market.LeagueNBA, market.BookPrizePicks)
	if err != nil {
		t.Fatalf("Weight: %v", err)
	}
	if w != 0 {
		t.Errorf("prizepicks weight = %v, want 0", w)
	}
}
