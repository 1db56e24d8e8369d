package memory

import (
	"context"

	"triage/internal/app/ports"
)

type DecisionRepo struct {
	store *Store
}

func NewDecisionRepo(store *Store) DecisionRepo {
	return DecisionRepo{store: store}
}

func (r DecisionRepo) Append(_ context.Context, records []ports.DecisionRecord) error {
	if len(records) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rec := range records {
		r.store.decisions[rec.RunID] = append(r.store.decisions[rec.RunID], rec)
	}
	return nil
}

// ListRecent returns the newest records first, matching the postgres twin's
// tick-descending order.
func (r DecisionRepo) ListRecent(_ context.Context, runID string, limit int) ([]ports.DecisionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := r.store.decisions[runID]
	out := make([]ports.DecisionRecord, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

var _ ports.DecisionJournal = DecisionRepo{}
