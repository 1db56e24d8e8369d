package observe

import (
	"context"
	"errors"

	"triage/internal/app/engine"
	"triage/internal/app/ports"
)

// ErrNoTicksYet means the board has nothing to report: the engine has not
// completed a single tick since startup.
var ErrNoTicksYet = errors.New("no ticks observed yet")

// MetricsSource exposes whatever the metrics recorder counts, shape-free so
// the recorder can evolve without touching this package.
type MetricsSource interface {
	SnapshotAny() any
}

type UseCase struct {
	Board   *Board
	Config  ports.ConfigProvider
	Metrics MetricsSource
}

func (u UseCase) Status(_ context.Context) (StatusResponse, error) {
	report, at, ok := u.Board.Last()
	if !ok {
		return StatusResponse{}, ErrNoTicksYet
	}
	prof := u.Config.Snapshot()
	resp := StatusResponse{
		Tick:           report.Tick,
		UpdatedAt:      at,
		Disabled:       report.Disabled,
		Moving:         report.Moving,
		InCombat:       report.InCombat,
		CombatDuration: report.CombatDuration.Seconds(),
		Gauge:          report.Gauge,
		Strategy:       prof.Strategy,
		GaugeMode:      prof.GaugeMode,
		Actions:        report.Actions,
		Reserved:       report.Reserved,
		Fault:          report.Fault,
	}
	if resp.Actions == nil {
		resp.Actions = []engine.ActionRecord{}
	}
	return resp, nil
}

func (u UseCase) Candidates(_ context.Context) (CandidatesResponse, error) {
	report, _, ok := u.Board.Last()
	if !ok {
		return CandidatesResponse{}, ErrNoTicksYet
	}
	out := CandidatesResponse{Tick: report.Tick, Candidates: report.Candidates}
	if out.Candidates == nil {
		out.Candidates = []ports.HealCandidate{}
	}
	return out, nil
}

func (u UseCase) KPI(_ context.Context) (any, error) {
	if u.Metrics == nil {
		return map[string]any{}, nil
	}
	return u.Metrics.SnapshotAny(), nil
}
