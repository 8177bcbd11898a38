package alerts

import (
	"fmt"
	"log"
	"sync"
	"time"

	"line-scanner/internal/detect"
	"line-scanner/internal/market"
)

// Notifier handles alert notifications
type Notifier struct {
	mu         sync.Mutex
	lastAlerts map[string]time.Time // Dedupe alerts
	cooldown   time.Duration        // Minimum time between same alerts
}

// NewNotifier creates a new notifier
func NewNotifier(cooldown time.Duration) *Notifier {
	return &Notifier{
		lastAlerts: make(map[string]time.Time),
		cooldown:   cooldown,
	}
}

// checkCooldown records the key and reports whether the alert should be
// suppressed because the same key fired within the cooldown.
func (n *Notifier) checkCooldown(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if lastTime, ok := n.lastAlerts[key]; ok {
		if time.Since(lastTime) < n.cooldown {
			return true
		}
	}
	n.lastAlerts[key] = time.Now()
	return false
}

// AlertArb sends an alert for a cross-book arbitrage
func (n *Notifier) AlertArb(league market.League, arb detect.ArbOpportunity) {
	key := fmt.Sprintf("arb-%s-%s-%s-%d-%s-%d",
		arb.Outcome, arb.BookA, arb.SideA, arb.PriceA, arb.BookB, arb.PriceB)
	if n.checkCooldown(key) {
		return
	}

	log.Printf("ARB [%s]: %s | %s %s %+d / %s %s %+d | margin=%.2f%% split=%.1f%%/%.1f%%",
		league, arb.Outcome,
		arb.BookA, arb.SideA, arb.PriceA,
		arb.BookB, arb.SideB, arb.PriceB,
		arb.Margin*100, arb.StakeA*100, arb.StakeB*100,
	)
}

// AlertValue sends an alert for a price beating the consensus
func (n *Notifier) AlertValue(league market.League, opp detect.ValueOpportunity) {
	key := fmt.Sprintf("value-%s-%s-%d", opp.Outcome, opp.Book, opp.Price)
	if n.checkCooldown(key) {
		return
	}

	tag := "+EV"
	if opp.Strong {
		tag = "+EV STRONG"
	}
	log.Printf("%s [%s]: %s @ %s %+d | prob=%.1f%% fair=%+d ev=%.2f%% kelly=%.1f%%",
		tag, league, opp.Outcome, opp.Book, opp.Price,
		opp.Likelihood*100, opp.FairPrice, opp.EV*100, opp.KellyStake*100,
	)
}

// AlertMisvalue sends an alert for a mispriced alternate line
func (n *Notifier) AlertMisvalue(league market.League, opp detect.MisvalueOpportunity) {
	key := fmt.Sprintf("misvalue-%s-%s-%d", opp.Outcome, opp.Book, opp.Price)
	if n.checkCooldown(key) {
		return
	}

	log.Printf("MISPRICE [%s]: %s @ %s %+d | neighbors imply %.1f%% (edge %.1f%%)",
		league, opp.Outcome, opp.Book, opp.Price,
		opp.Likelihood*100, opp.Deviation*100,
	)
}

// LogScan logs a scan completion
func (n *Notifier) LogScan(league market.League, groups, arbs, values, misvalues int) {
	log.Printf("Scan complete [%s]: %d groups, %d arbs, %d value plays, %d mispriced lines",
		league, groups, arbs, values, misvalues)
}

// LogError logs an error
func (n *Notifier) LogError(context string, err error) {
	log.Printf("ERROR [%s]: %v", context, err)
}

// LogStartup logs scanner startup
func (n *Notifier) LogStartup(config string) {
	log.Printf("Scanner started |%s", config)
}

// CleanupOldAlerts removes stale alert records
func (n *Notifier) CleanupOldAlerts() {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := time.Now().Add(-1 * time.Hour)
	for key, t := range n.lastAlerts {
		if t.Before(cutoff) {
			delete(n.lastAlerts, key)
		}
	}
}
