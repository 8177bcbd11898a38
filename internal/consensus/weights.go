package consensus

import (
	"errors"

	"line-scanner/internal/market"
)

// ErrUnknownLeague is returned when a weight lookup names a league the
// table does not carry. Callers must skip or report that league, never
// fall back to silent defaults.
var ErrUnknownLeague = errors.New("unknown league")

// WeightTable maps league → book → consensus weight. Higher weight means
// the book's prices are treated as sharper when aggregating. A book
// missing from its league defaults to 1; a weight of 0 keeps the book's
// prices visible downstream but excludes them from the consensus.
//
// One table serves the whole process; it is read-only after construction.
type WeightTable map[market.League]map[market.Book]float64

// Weight resolves the consensus weight for a book in a league.
func (t WeightTable) Weight(league market.League, book market.Book) (float64, error) {
	books, ok := t[league]
	if !ok {
		return 0, ErrUnknownLeague
	}
	w, ok := books[book]
	if !ok {
		return 1, nil
	}
	return w, nil
}

// Known reports whether the table carries the league at all.
func (t WeightTable) Known(league market.League) bool {
	_, ok := t[league]
	return ok
}

// DefaultWeights returns the stock table. Pinnacle anchors every league;
// the prop platforms are priced for display only.
func DefaultWeights() WeightTable {
	sharp := map[market.Book]float64{
		market.BookPinnacle:   3.0,
		market.BookDraftKings: 1.5,
		market.BookFanDuel:    1.5,
		market.BookCaesars:    1.0,
		market.BookESPNBet:    1.0,
		market.BookBetMGM:     0.7,
		market.BookKalshi:     0.0,
		market.BookPrizePicks: 0.0,
		market.BookUnderdog:   0.0,
	}

	table := WeightTable{}
	for _, league := range []market.League{market.LeagueNBA, market.LeagueNFL, market.LeagueMLB, market.LeagueNHL} {
		books := make(map[market.Book]float64, len(sharp))
		for book, w := range sharp {
			books[book] = w
		}
		table[league] = books
	}
	return table
}
