package observe

import (
	"sync"
	"time"

	"triage/internal/app/engine"
)

// Board keeps the latest tick report for the ops surface. The tick loop
// publishes after every scheduler pass; HTTP handlers read concurrently.
type Board struct {
	mu        sync.RWMutex
	last      engine.TickReport
	updatedAt time.Time
	published bool
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Publish(report engine.TickReport, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = report
	b.updatedAt = at
	b.published = true
}

// Last returns the most recent report and its publish time. ok is false
// until the first tick lands.
func (b *Board) Last() (engine.TickReport, time.Time, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last, b.updatedAt, b.published
}
