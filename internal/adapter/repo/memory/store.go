package memory

import (
	"sync"

	"triage/internal/app/ports"
)

// Store backs the in-memory twins of the journal repositories. It is safe
// for concurrent use; every repo method locks it individually, and the tx
// manager only serializes whole transactions against each other.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	runs      map[string]ports.RunRecord
	decisions map[string][]ports.DecisionRecord
}

func NewStore() *Store {
	return &Store{
		runs:      make(map[string]ports.RunRecord),
		decisions: make(map[string][]ports.DecisionRecord),
	}
}

func (s *Store) SeedRun(run ports.RunRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.RunID] = run
}
