// Package stock holds the cross-message report state and the urgency
// decision for finished reports.
package stock

import (
	"strings"
	"sync"
	"time"
)

const reportSeparator = "\n\n"

// Aggregator keeps the single most recent egg-category report and
// combines it with freshly arriving seed/gear reports. Safe for
// concurrent use: an egg update and a seed/gear combine may arrive
// close together on separate goroutines.
type Aggregator struct {
	mu        sync.RWMutex
	eggReport string
	eggSeenAt time.Time
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// UpdateEgg replaces the cached egg report wholesale.
func (a *Aggregator) UpdateEgg(report string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.eggReport = report
	a.eggSeenAt = time.Now()
}

// Combine joins a seed/gear report with the cached egg report,
// seed/gear first, separated by one blank line. An empty side is
// dropped; the cache is read, never cleared.
func (a *Aggregator) Combine(seedGear string) string {
	a.mu.RLock()
	egg := a.eggReport
	a.mu.RUnlock()

	parts := make([]string, 0, 2)
	if seedGear != "" {
		parts = append(parts, seedGear)
	}

	if egg != "" {
		parts = append(parts, egg)
	}

	return strings.Join(parts, reportSeparator)
}

// EggAge returns the time since the last egg update. The second return
// is false until the first update arrives.
func (a *Aggregator) EggAge(now time.Time) (time.Duration, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.eggSeenAt.IsZero() {
		return 0, false
	}

	return now.Sub(a.eggSeenAt), true
}
