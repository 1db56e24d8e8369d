package memory

import (
	"context"
	"time"

	"triage/internal/app/ports"
)

type RunRepo struct {
	store *Store
}

func NewRunRepo(store *Store) RunRepo {
	return RunRepo{store: store}
}

func (r RunRepo) Create(_ context.Context, run ports.RunRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.runs[run.RunID]; ok {
		return ports.ErrConflict
	}
	r.store.runs[run.RunID] = run
	return nil
}

func (r RunRepo) Get(_ context.Context, runID string) (ports.RunRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	run, ok := r.store.runs[runID]
	if !ok {
		return ports.RunRecord{}, ports.ErrNotFound
	}
	return run, nil
}

func (r RunRepo) BumpTicks(_ context.Context, runID string, ticks uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	run, ok := r.store.runs[runID]
	if !ok {
		return ports.ErrNotFound
	}
	run.TickCount += ticks
	r.store.runs[runID] = run
	return nil
}

func (r RunRepo) Close(_ context.Context, runID string, endedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	run, ok := r.store.runs[runID]
	if !ok {
		return ports.ErrNotFound
	}
	run.Status = ports.RunStatusClosed
	run.EndedAt = &endedAt
	r.store.runs[runID] = run
	return nil
}

var _ ports.RunRepository = RunRepo{}
