package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"line-scanner/internal/market"
)

const linesFixture = `{
	"data": [{
		"game_id": 77,
		"game": {
			"home_team": "Boston Celtics",
			"away_team": "Miami Heat",
			"datetime": "2026-01-18T23:30:00Z",
			"status": "scheduled"
		},
		"vendors": [
			{
				"name": "DraftKings",
				"moneyline": {"home": -150, "away": 130},
				"spread": {"home_spread": -3.5, "home_odds": -110, "away_spread": 3.5, "away_odds": -110},
				"total": {"line": 221.5, "over_odds": -108, "under_odds": -112}
			},
			{
				"name": "SomeOffshoreBook",
				"moneyline": {"home": -145, "away": 125}
			}
		]
	}],
	"meta": {"next_cursor": 0}
}`

const propsFixture = `{
	"data": [{
		"player_name": "Jayson Tatum",
		"team": "Boston Celtics",
		"vendor": "FanDuel",
		"prop_type": "points",
		"line_value": 28.5,
		"over_odds": -115,
		"under_odds": -105
	}],
	"meta": {"next_cursor": 0}
}`

func TestFetchLinesParsesVendorMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("missing auth header")
		}
		w.Write([]byte(linesFixture))
	}))
	defer srv.Close()

	client := NewLinesClientURL(srv.URL, "test-key")
	records, err := client.FetchLines(context.Background(), market.LeagueNBA)
	if err != nil {
		t.Fatalf("FetchLines: %v", err)
	}

	// DraftKings: 2 moneyline + 2 spread + 2 total sides. The unknown
	// vendor's markets are skipped entirely.
	if len(records) != 6 {
		t.Fatalf("got %d records, want 6", len(records))
	}

	byKind := make(map[market.Kind]int)
	for _, r := range records {
		if r.Book != market.BookDraftKings {
			t.Errorf("unexpected book %s", r.Book)
		}
		byKind[r.Kind]++
	}
	for _, kind := range []market.Kind{market.KindMoneyline, market.KindSpread, market.KindGameTotal} {
		if byKind[kind] != 2 {
			t.Errorf("%s: got %d records, want both sides", kind, byKind[kind])
		}
	}

	// Complements must point at each other's price.
	for _, r := range records {
		if r.Kind == market.KindGameTotal && r.Side == market.SideOver {
			if r.Price != -108 || r.OppositePrice != -112 {
				t.Errorf("over total = %d opp %d, want -108 opp -112", r.Price, r.OppositePrice)
			}
		}
	}
}

func TestFetchPropsBuildsBothSides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(propsFixture))
	}))
	defer srv.Close()

	client := NewLinesClientURL(srv.URL, "test-key")
	records, err := client.FetchProps(context.Background(), market.LeagueNBA)
	if err != nil {
		t.Fatalf("FetchProps: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want over and under", len(records))
	}
	for _, r := range records {
		if r.Kind != market.KindPlayerProp || r.Player == nil {
			t.Fatalf("bad prop record: %+v", r)
		}
		if r.Player.Name != "Jayson Tatum" || r.Stat != "points" {
			t.Errorf("subject = %s %s, want Jayson Tatum points", r.Player.Name, r.Stat)
		}
	}
}

func TestFetchLinesFollowsCursor(t *testing.T) {
	page := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page++
		if r.URL.Query().Get("cursor") == "" {
			w.Write([]byte(`{"data": [], "meta": {"next_cursor": 25}}`))
			return
		}
		w.Write([]byte(linesFixture))
	}))
	defer srv.Close()

	client := NewLinesClientURL(srv.URL, "test-key")
	records, err := client.FetchLines(context.Background(), market.LeagueNBA)
	if err != nil {
		t.Fatalf("FetchLines: %v", err)
	}
	if page != 2 {
		t.Errorf("made %d requests, want 2", page)
	}
	if len(records) != 6 {
		t.Errorf("got %d records from page 2, want 6", len(records))
	}
}
