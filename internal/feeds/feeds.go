package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"line-scanner/internal/market"
)

// Provider is one source of betting lines. FetchLines returns the game
// markets (moneylines, spreads, totals), FetchProps the player props.
// Providers that carry no props return an empty slice, not an error.
type Provider interface {
	Name() string
	FetchLines(ctx context.Context, league market.League) ([]market.Record, error)
	FetchProps(ctx context.Context, league market.League) ([]market.Record, error)
}

// LineSet is one poll's worth of records for a league.
type LineSet struct {
	League    market.League
	Records   []market.Record
	FetchedAt time.Time
}

// FetchAll queries every provider concurrently and merges whatever came
// back. A failing provider is logged and skipped so one outage does not
// blank the whole scan; the error is non-nil only when every provider
// failed.
func FetchAll(ctx context.Context, providers []Provider, league market.League) (LineSet, error) {
	set := LineSet{League: league, FetchedAt: time.Now()}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	for _, p := range providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()

			lines, err := p.FetchLines(ctx, league)
			if err != nil {
				slog.Warn("Provider lines fetch failed", "provider", p.Name(), "league", league, "err", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			props, err := p.FetchProps(ctx, league)
			if err != nil {
				// Keep the game lines; props are additive.
				slog.Warn("Provider props fetch failed", "provider", p.Name(), "league", league, "err", err)
			}

			mu.Lock()
			set.Records = append(set.Records, lines...)
			set.Records = append(set.Records, props...)
			mu.Unlock()
		}(p)
	}

	wg.Wait()

	if len(providers) > 0 && failed == len(providers) {
		return set, fmt.Errorf("all %d providers failed for %s", failed, league)
	}
	return set, nil
}
