package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"line-scanner/internal/market"
)

const (
	defaultBaseURL    = "https://api.sportslines.io/v1"
	requestsPerMinute = 600
	requestTimeout    = 10 * time.Second
	maxRetries        = 3
)

// LinesClient pulls game lines and player props from the lines API.
type LinesClient struct {
	baseURL string
	apiKey  string
	client  *RateLimitedClient
}

// NewLinesClient creates a provider for the hosted lines API.
func NewLinesClient(apiKey string) *LinesClient {
	return &LinesClient{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		client:  NewRateLimitedClient(requestsPerMinute, requestTimeout, maxRetries),
	}
}

// NewLinesClientURL is NewLinesClient against a custom endpoint, used
// for the mock server in tests.
func NewLinesClientURL(baseURL, apiKey string) *LinesClient {
	c := NewLinesClient(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *LinesClient) Name() string { return "sportslines" }

// linesResponse is the paginated /lines payload.
type linesResponse struct {
	Data []gameLines `json:"data"`
	Meta meta        `json:"meta"`
}

type meta struct {
	NextCursor int `json:"next_cursor"`
	PerPage    int `json:"per_page"`
	TotalCount int `json:"total_count"`
}

type gameLines struct {
	GameID  int      `json:"game_id"`
	Game    gameInfo `json:"game"`
	Vendors []vendor `json:"vendors"`
}

type gameInfo struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	DateTime string `json:"datetime"` // ISO 8601
	Status   string `json:"status"`
}

// vendor carries one book's quotes for a game. Absent markets are nil.
type vendor struct {
	Name       string       `json:"name"`
	Moneyline  *moneyline   `json:"moneyline,omitempty"`
	Spread     *spreadLine  `json:"spread,omitempty"`
	Total      *totalLine   `json:"total,omitempty"`
	TeamTotals []*teamTotal `json:"team_totals,omitempty"`
}

type moneyline struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type spreadLine struct {
	HomeSpread float64 `json:"home_spread"`
	HomeOdds   int     `json:"home_odds"`
	AwaySpread float64 `json:"away_spread"`
	AwayOdds   int     `json:"away_odds"`
}

type totalLine struct {
	Line      float64 `json:"line"`
	OverOdds  int     `json:"over_odds"`
	UnderOdds int     `json:"under_odds"`
}

type teamTotal struct {
	Team      string  `json:"team"` // "home" or "away"
	Line      float64 `json:"line"`
	OverOdds  int     `json:"over_odds"`
	UnderOdds int     `json:"under_odds"`
}

// propsResponse is the paginated /props payload.
type propsResponse struct {
	Data []playerProp `json:"data"`
	Meta meta         `json:"meta"`
}

type playerProp struct {
	PlayerName string  `json:"player_name"`
	Team       string  `json:"team"`
	Vendor     string  `json:"vendor"`
	PropType   string  `json:"prop_type"` // points, rebounds, assists, ...
	Line       float64 `json:"line_value"`
	OverOdds   int     `json:"over_odds"`
	UnderOdds  int     `json:"under_odds"`
}

// FetchLines returns every vendor's game markets for today's slate,
// following pagination. Quotes the record constructors reject are
// dropped with a debug log, not fatal: one book's bad price must not
// sink the scan.
func (c *LinesClient) FetchLines(ctx context.Context, league market.League) ([]market.Record, error) {
	headers := map[string]string{"Authorization": c.apiKey}

	var records []market.Record
	cursor := 0

	for {
		url := fmt.Sprintf("%s/lines?league=%s&date=%s", c.baseURL, league, time.Now().Format("2006-01-02"))
		if cursor > 0 {
			url = fmt.Sprintf("%s&cursor=%d", url, cursor)
		}

		body, err := c.client.Get(ctx, url, headers)
		if err != nil {
			return nil, fmt.Errorf("fetching lines: %w", err)
		}

		var resp linesResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("parsing lines response: %w", err)
		}

		for _, gl := range resp.Data {
			records = append(records, c.gameRecords(gl)...)
		}

		if resp.Meta.NextCursor == 0 {
			break
		}
		cursor = resp.Meta.NextCursor
	}

	return records, nil
}

// FetchProps returns every vendor's player props, following pagination.
func (c *LinesClient) FetchProps(ctx context.Context, league market.League) ([]market.Record, error) {
	headers := map[string]string{"Authorization": c.apiKey}

	var records []market.Record
	cursor := 0

	for {
		url := fmt.Sprintf("%s/props?league=%s", c.baseURL, league)
		if cursor > 0 {
			url = fmt.Sprintf("%s&cursor=%d", url, cursor)
		}

		body, err := c.client.Get(ctx, url, headers)
		if err != nil {
			return nil, fmt.Errorf("fetching props: %w", err)
		}

		var resp propsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("parsing props response: %w", err)
		}

		for _, prop := range resp.Data {
			records = append(records, c.propRecords(prop)...)
		}

		if resp.Meta.NextCursor == 0 {
			break
		}
		cursor = resp.Meta.NextCursor
	}

	return records, nil
}

func (c *LinesClient) gameRecords(gl gameLines) []market.Record {
	game := market.Game{
		Home:  gl.Game.HomeTeam,
		Away:  gl.Game.AwayTeam,
		Start: parseStart(gl.Game.DateTime),
	}

	var records []market.Record
	add := func(r market.Record, err error) {
		if err != nil {
			slog.Debug("Dropping quote", "game", gl.GameID, "err", err)
			return
		}
		records = append(records, r)
	}

	for _, v := range gl.Vendors {
		book, ok := parseBook(v.Name)
		if !ok {
			continue
		}

		if ml := v.Moneyline; ml != nil {
			add(market.NewMoneyline(game, market.PeriodFullGame, market.SideHome, book, ml.Home, ml.Away))
			add(market.NewMoneyline(game, market.PeriodFullGame, market.SideAway, book, ml.Away, ml.Home))
		}

		if sp := v.Spread; sp != nil {
			add(market.NewSpread(game, market.PeriodFullGame, market.SideHome, sp.HomeSpread, book, sp.HomeOdds, sp.AwayOdds))
			add(market.NewSpread(game, market.PeriodFullGame, market.SideAway, sp.AwaySpread, book, sp.AwayOdds, sp.HomeOdds))
		}

		if tot := v.Total; tot != nil {
			add(market.NewGameTotal(game, market.PeriodFullGame, market.SideOver, tot.Line, book, tot.OverOdds, tot.UnderOdds))
			add(market.NewGameTotal(game, market.PeriodFullGame, market.SideUnder, tot.Line, book, tot.UnderOdds, tot.OverOdds))
		}

		for _, tt := range v.TeamTotals {
			teamSide := market.SideHome
			if tt.Team == "away" {
				teamSide = market.SideAway
			}
			add(market.NewTeamTotal(game, market.PeriodFullGame, teamSide, market.SideOver, tt.Line, book, tt.OverOdds, tt.UnderOdds))
			add(market.NewTeamTotal(game, market.PeriodFullGame, teamSide, market.SideUnder, tt.Line, book, tt.UnderOdds, tt.OverOdds))
		}
	}

	return records
}

func (c *LinesClient) propRecords(prop playerProp) []market.Record {
	book, ok := parseBook(prop.Vendor)
	if !ok {
		return nil
	}

	player := market.Player{Name: prop.PlayerName, Team: prop.Team}

	var records []market.Record
	add := func(r market.Record, err error) {
		if err != nil {
			slog.Debug("Dropping prop quote", "player", prop.PlayerName, "err", err)
			return
		}
		records = append(records, r)
	}

	add(market.NewPlayerProp(player, prop.PropType, market.PeriodFullGame, market.SideOver, prop.Line, book, prop.OverOdds, prop.UnderOdds))
	add(market.NewPlayerProp(player, prop.PropType, market.PeriodFullGame, market.SideUnder, prop.Line, book, prop.UnderOdds, prop.OverOdds))
	return records
}

func parseStart(ts string) time.Time {
	if ts == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05Z", ts)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// parseBook maps the API's vendor names onto the book enumeration.
// Unknown vendors are skipped rather than guessed at: every record must
// carry one of the known book identities, since those are what alert
// keys, weight lookups and stored opportunities are written against.
func parseBook(name string) (market.Book, bool) {
	switch strings.ToLower(strings.ReplaceAll(name, " ", "")) {
	case "draftkings":
		return market.BookDraftKings, true
	case "fanduel":
		return market.BookFanDuel, true
	case "betmgm":
		return market.BookBetMGM, true
	case "caesars":
		return market.BookCaesars, true
	case "pinnacle":
		return market.BookPinnacle, true
	case "espnbet":
		return market.BookESPNBet, true
	case "kalshi":
		return market.BookKalshi, true
	case "prizepicks":
		return market.BookPrizePicks, true
	case "underdog":
		return market.BookUnderdog, true
	default:
		return "", false
	}
}
