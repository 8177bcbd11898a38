// Package detect turns grouped, consensus-priced outcomes into ranked
// opportunity lists: guaranteed-profit arbitrage pairs, positive-EV
// prices, and alternate-line misvaluations.
package detect

// Config holds detector thresholds. EV and deviation floors are
// presentation policy: the raw signal numbers are always carried on the
// opportunities, so callers can re-filter.
type Config struct {
	MinEV         float64 // minimum raw EV for a value play
	StrongEV      float64 // highlight threshold for strong value plays
	KellyFraction float64 // fraction of full Kelly for stake sizing
	MinArbMargin  float64 // minimum guaranteed arbitrage margin
	MinRungs      int     // alternate lines needed before misvaluation runs
	MinDeviation  float64 // minimum consensus-vs-price gap for misvaluation
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinEV:         0.0,
		StrongEV:      0.05,
		KellyFraction: 0.25,
		MinArbMargin:  0.0,
		MinRungs:      3,
		MinDeviation:  0.02,
	}
}
