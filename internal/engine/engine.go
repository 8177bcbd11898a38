package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"line-scanner/internal/alerts"
	"line-scanner/internal/config"
	"line-scanner/internal/consensus"
	"line-scanner/internal/detect"
	"line-scanner/internal/feeds"
	"line-scanner/internal/group"
	"line-scanner/internal/market"
	"line-scanner/internal/match"
	"line-scanner/internal/similarity"
	"line-scanner/internal/store"
)

// Engine is the main orchestrator: it polls the providers, groups
// equivalent lines, and runs the detectors over each league's slate.
type Engine struct {
	providers []feeds.Provider
	matcher   *match.Matcher
	agg       *consensus.Aggregator
	notifier  *alerts.Notifier
	db        *store.DB
	cfg       config.Config
	detectCfg detect.Config
}

// New creates a new Engine with all dependencies. db may be nil to run
// without persistence.
func New(providers []feeds.Provider, notifier *alerts.Notifier, db *store.DB, cfg config.Config) *Engine {
	method := consensus.MethodProportional
	if cfg.UsePowerDevig {
		method = consensus.MethodPower
	}

	return &Engine{
		providers: providers,
		matcher:   match.New(similarity.NewScorer()),
		agg:       consensus.NewWithMethod(consensus.DefaultWeights(), method),
		notifier:  notifier,
		db:        db,
		cfg:       cfg,
		detectCfg: detect.Config{
			MinEV:         cfg.EVThreshold,
			StrongEV:      cfg.StrongEV,
			KellyFraction: cfg.KellyFraction,
			MinArbMargin:  cfg.MinArbMargin,
			MinRungs:      cfg.MinRungs,
			MinDeviation:  cfg.MinDeviation,
		},
	}
}

// Run starts the main polling loop. It blocks until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(config.DefaultCleanupInterval)
	defer cleanupTicker.Stop()

	slog.Info("Starting polling loop", "leagues", e.cfg.Leagues, "interval", e.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scanner stopped gracefully")
			return

		case <-cleanupTicker.C:
			e.notifier.CleanupOldAlerts()
			if e.db != nil {
				if gone, err := e.db.Prune(time.Now().Add(-e.cfg.Retention)); err != nil {
					e.notifier.LogError("pruning opportunity log", err)
				} else if gone > 0 {
					slog.Debug("Pruned opportunity log", "rows", gone)
				}
			}

		case <-ticker.C:
			e.Scan(ctx)
		}
	}
}

// Scan runs one cycle over every configured league.
func (e *Engine) Scan(ctx context.Context) {
	for _, league := range e.cfg.Leagues {
		if _, err := e.ScanLeague(ctx, league); err != nil {
			e.notifier.LogError(fmt.Sprintf("scanning %s", league), err)
		}
	}
}

// ScanResult summarizes one league scan.
type ScanResult struct {
	Records   int
	Groups    int
	Arbs      []detect.ArbOpportunity
	Values    []detect.ValueOpportunity
	Misvalues []detect.MisvalueOpportunity
}

// ScanLeague fetches one league's lines and runs every detector:
// arbitrage over the linked groups, then value plays against the
// consensus, then ladder mispricings. Each hit is alerted and, when a
// store is attached, logged.
func (e *Engine) ScanLeague(ctx context.Context, league market.League) (ScanResult, error) {
	var res ScanResult

	set, err := feeds.FetchAll(ctx, e.providers, league)
	if err != nil {
		return res, err
	}
	res.Records = len(set.Records)
	if res.Records == 0 {
		return res, nil
	}

	groups, err := group.Partition(set.Records, e.matcher)
	if err != nil {
		return res, fmt.Errorf("grouping %d records: %w", len(set.Records), err)
	}
	group.CrossLink(groups, e.matcher)
	res.Groups = len(groups)

	res.Arbs = detect.FindArbs(groups, e.detectCfg)

	res.Values, err = detect.FindValue(groups, league, e.agg, e.detectCfg)
	if err != nil {
		return res, fmt.Errorf("finding value plays: %w", err)
	}

	res.Misvalues, err = detect.FindMisvalued(groups, league, e.agg, e.detectCfg)
	if err != nil {
		return res, fmt.Errorf("finding mispriced ladders: %w", err)
	}

	e.report(league, res)
	return res, nil
}

func (e *Engine) report(league market.League, res ScanResult) {
	for _, arb := range res.Arbs {
		e.notifier.AlertArb(league, arb)
		e.persist(store.Opportunity{
			ID:      arb.ID,
			Kind:    store.KindArb,
			League:  string(league),
			Outcome: arb.Outcome,
			Book:    string(arb.BookA),
			Price:   arb.PriceA,
			Edge:    arb.Margin,
			Detail:  fmt.Sprintf("%s %+d vs %s %+d", arb.BookA, arb.PriceA, arb.BookB, arb.PriceB),
		})
	}

	for _, opp := range res.Values {
		e.notifier.AlertValue(league, opp)
		e.persist(store.Opportunity{
			ID:      opp.ID,
			Kind:    store.KindValue,
			League:  string(league),
			Outcome: opp.Outcome,
			Book:    string(opp.Book),
			Price:   opp.Price,
			Edge:    opp.EV,
			Detail:  fmt.Sprintf("prob=%.4f fair=%+d kelly=%.4f", opp.Likelihood, opp.FairPrice, opp.KellyStake),
		})
	}

	for _, opp := range res.Misvalues {
		e.notifier.AlertMisvalue(league, opp)
		e.persist(store.Opportunity{
			ID:      opp.ID,
			Kind:    store.KindMisvalue,
			League:  string(league),
			Outcome: opp.Outcome,
			Book:    string(opp.Book),
			Price:   opp.Price,
			Edge:    opp.Deviation,
			Detail:  fmt.Sprintf("neighbors imply %.4f at %.1f", opp.Likelihood, opp.Value),
		})
	}

	e.notifier.LogScan(league, res.Groups, len(res.Arbs), len(res.Values), len(res.Misvalues))
}

func (e *Engine) persist(opp store.Opportunity) {
	if e.db == nil {
		return
	}
	if e.alreadyLogged(opp) {
		return
	}
	if err := e.db.Add(opp); err != nil {
		e.notifier.LogError("storing opportunity", err)
	}
}

// alreadyLogged checks the outcome's stored history so a standing edge
// seen on every poll produces one row, not one per cycle. A price move or
// the cooldown expiring logs a fresh row.
func (e *Engine) alreadyLogged(opp store.Opportunity) bool {
	history, err := e.db.ByOutcome(opp.Outcome, opp.Book)
	if err != nil {
		e.notifier.LogError("reading opportunity history", err)
		return false
	}

	cutoff := time.Now().Add(-e.cfg.AlertCooldown)
	for _, prev := range history {
		if prev.Kind == opp.Kind && prev.Price == opp.Price && prev.CreatedAt.After(cutoff) {
			return true
		}
	}
	return false
}
