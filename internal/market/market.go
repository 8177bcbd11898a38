package market

import (
	"fmt"
	"time"
)

// League identifies the competition a record belongs to.
type League string

const (
	LeagueNBA League = "nba"
	LeagueNFL League = "nfl"
	LeagueMLB League = "mlb"
	LeagueNHL League = "nhl"
)

// Kind discriminates the market variants. Records are a tagged union over
// these kinds: each constructor only accepts the fields that kind carries.
type Kind string

const (
	KindMoneyline  Kind = "moneyline"
	KindSpread     Kind = "spread"
	KindGameTotal  Kind = "game-total"
	KindTeamTotal  Kind = "team-total"
	KindPlayerProp Kind = "player-prop"
)

// Symmetric reports whether the opposite side of this market mirrors the
// line value (home -3 pairs with away +3). Totals and props share the value
// on both sides.
func (k Kind) Symmetric() bool {
	return k == KindSpread
}

// Side is the bettable choice on a record.
type Side string

const (
	SideHome  Side = "home"
	SideAway  Side = "away"
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// Complement returns the opposing choice (over↔under, home↔away).
func (s Side) Complement() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	case SideOver:
		return SideUnder
	case SideUnder:
		return SideOver
	}
	return s
}

// Period is the game segment a record prices.
type Period string

const (
	PeriodFullGame   Period = "full"
	PeriodFirstHalf  Period = "1h"
	PeriodSecondHalf Period = "2h"
	PeriodQ1         Period = "q1"
	PeriodQ2         Period = "q2"
	PeriodQ3         Period = "q3"
	PeriodQ4         Period = "q4"
)

// Book identifies the source book or prop platform. Closed enumeration:
// import adapters must map their vendor strings onto one of these.
type Book string

const (
	BookDraftKings Book = "draftkings"
	BookFanDuel    Book = "fanduel"
	BookBetMGM     Book = "betmgm"
	BookCaesars    Book = "caesars"
	BookPinnacle   Book = "pinnacle"
	BookESPNBet    Book = "espnbet"
	BookKalshi     Book = "kalshi"
	BookPrizePicks Book = "prizepicks"
	BookUnderdog   Book = "underdog"
)

// Game identifies a matchup by team names and start time.
type Game struct {
	Home  string
	Away  string
	Start time.Time
}

// Player identifies a prop subject. Team is optional: some platforms only
// expose the player name.
type Player struct {
	Name string
	Team string
}

// Record is the atomic priced observation: one book's price for one choice
// of one market. Immutable after construction; grouping and detection only
// read and filter.
type Record struct {
	Kind   Kind
	Period Period

	// Game is set for game-based kinds, Player (plus Stat) for player props.
	Game   *Game
	Player *Player
	Stat   string

	// TeamSide is which team a team total belongs to. Empty otherwise.
	TeamSide Side

	// Value is the line (spread points, total). Nil only for moneyline.
	Value *float64

	Side Side
	Book Book

	// Price is the American price for Side. OppositePrice is the same
	// book's price for the complementary choice, 0 when unknown.
	Price         int
	OppositePrice int
}

// HasValue reports whether the record carries a line value.
func (r Record) HasValue() bool {
	return r.Value != nil
}

// ValueOr returns the line value, or def when the record has none.
func (r Record) ValueOr(def float64) float64 {
	if r.Value == nil {
		return def
	}
	return *r.Value
}

// validatePrice rejects the prices no American book quotes.
func validatePrice(price int) error {
	if price == 0 {
		return fmt.Errorf("invalid price: American odds cannot be 0")
	}
	return nil
}

// NewMoneyline builds a moneyline record. Side must be home or away.
func NewMoneyline(game Game, period Period, side Side, book Book, price, oppositePrice int) (Record, error) {
	if err := validatePrice(price); err != nil {
		return Record{}, err
	}
	if side != SideHome && side != SideAway {
		return Record{}, fmt.Errorf("moneyline side must be home or away, got %q", side)
	}
	return Record{
		Kind:          KindMoneyline,
		Period:        period,
		Game:          &game,
		Side:          side,
		Book:          book,
		Price:         price,
		OppositePrice: oppositePrice,
	}, nil
}

// NewSpread builds a point spread record. Value is signed from the chosen
// team's perspective (home -3.5 covers when home wins by 4+).
func NewSpread(game Game, period Period, side Side, value float64, book Book, price, oppositePrice int) (Record, error) {
	if err := validatePrice(price); err != nil {
		return Record{}, err
	}
	if side != SideHome && side != SideAway {
		return Record{}, fmt.Errorf("spread side must be home or away, got %q", side)
	}
	return Record{
		Kind:          KindSpread,
		Period:        period,
		Game:          &game,
		Side:          side,
		Value:         &value,
		Book:          book,
		Price:         price,
		OppositePrice: oppositePrice,
	}, nil
}

// NewGameTotal builds a game total (over/under) record.
func NewGameTotal(game Game, period Period, side Side, value float64, book Book, price, oppositePrice int) (Record, error) {
	if err := validatePrice(price); err != nil {
		return Record{}, err
	}
	if side != SideOver && side != SideUnder {
		return Record{}, fmt.Errorf("total side must be over or under, got %q", side)
	}
	return Record{
		Kind:          KindGameTotal,
		Period:        period,
		Game:          &game,
		Side:          side,
		Value:         &value,
		Book:          book,
		Price:         price,
		OppositePrice: oppositePrice,
	}, nil
}

// NewTeamTotal builds a team total record. teamSide says which team's
// points the total counts; side is still over/under.
func NewTeamTotal(game Game, period Period, teamSide, side Side, value float64, book Book, price, oppositePrice int) (Record, error) {
	if err := validatePrice(price); err != nil {
		return Record{}, err
	}
	if teamSide != SideHome && teamSide != SideAway {
		return Record{}, fmt.Errorf("team total team side must be home or away, got %q", teamSide)
	}
	if side != SideOver && side != SideUnder {
		return Record{}, fmt.Errorf("total side must be over or under, got %q", side)
	}
	return Record{
		Kind:          KindTeamTotal,
		Period:        period,
		Game:          &game,
		TeamSide:      teamSide,
		Side:          side,
		Value:         &value,
		Book:          book,
		Price:         price,
		OppositePrice: oppositePrice,
	}, nil
}

// NewPlayerProp builds a player prop record. stat is the prop category
// ("points", "rebounds", ...).
func NewPlayerProp(player Player, stat string, period Period, side Side, value float64, book Book, price, oppositePrice int) (Record, error) {
	if err := validatePrice(price); err != nil {
		return Record{}, err
	}
	if side != SideOver && side != SideUnder {
		return Record{}, fmt.Errorf("prop side must be over or under, got %q", side)
	}
	if stat == "" {
		return Record{}, fmt.Errorf("prop stat is required")
	}
	return Record{
		Kind:          KindPlayerProp,
		Period:        period,
		Player:        &player,
		Stat:          stat,
		Side:          side,
		Value:         &value,
		Book:          book,
		Price:         price,
		OppositePrice: oppositePrice,
	}, nil
}

// Subject renders the record's subject for keys and log lines.
func (r Record) Subject() string {
	if r.Player != nil {
		return fmt.Sprintf("%s (%s)", r.Player.Name, r.Stat)
	}
	if r.Game != nil {
		return fmt.Sprintf("%s@%s", r.Game.Away, r.Game.Home)
	}
	return "unknown"
}
