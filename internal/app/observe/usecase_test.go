package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	"triage/internal/app/engine"
	"triage/internal/app/ports"
	"triage/internal/app/profile"
	"triage/internal/domain/combat"
)

type observeConfig struct {
	prof profile.Snapshot
}

func (c observeConfig) Snapshot() profile.Snapshot { return c.prof }

type observeMetrics struct {
	snap any
}

func (m observeMetrics) SnapshotAny() any { return m.snap }

func TestStatus_BeforeFirstTick(t *testing.T) {
	uc := UseCase{Board: NewBoard(), Config: observeConfig{prof: profile.Default()}}
	if _, err := uc.Status(context.Background()); !errors.Is(err, ErrNoTicksYet) {
		t.Fatalf("expected ErrNoTicksYet, got %v", err)
	}
	if _, err := uc.Candidates(context.Background()); !errors.Is(err, ErrNoTicksYet) {
		t.Fatalf("expected ErrNoTicksYet from Candidates, got %v", err)
	}
}

func TestStatus_ReflectsLatestReport(t *testing.T) {
	board := NewBoard()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	board.Publish(engine.TickReport{
		Tick:           41,
		Moving:         true,
		InCombat:       true,
		CombatDuration: 90 * time.Second,
		Gauge:          combat.GaugePair{Primary: 2, Secondary: 1},
		Actions: []engine.ActionRecord{
			{Module: "heal", Slot: combat.SlotPrimary, Ability: combat.AbilityBloom, TargetID: "tank-1", Amount: 1944},
		},
		Reserved: []string{"tank-1"},
	}, at)

	uc := UseCase{Board: board, Config: observeConfig{prof: profile.Default()}}
	resp, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if got, want := resp.Tick, uint64(41); got != want {
		t.Fatalf("Tick = %d, want %d", got, want)
	}
	if !resp.UpdatedAt.Equal(at) {
		t.Fatalf("UpdatedAt = %v, want %v", resp.UpdatedAt, at)
	}
	if got, want := resp.CombatDuration, 90.0; got != want {
		t.Fatalf("CombatDuration = %v, want %v", got, want)
	}
	if got, want := resp.Strategy, profile.StrategyTiered; got != want {
		t.Fatalf("Strategy = %q, want %q", got, want)
	}
	if len(resp.Actions) != 1 || resp.Actions[0].Ability != combat.AbilityBloom {
		t.Fatalf("Actions = %+v, want one bloom cast", resp.Actions)
	}
}

func TestStatus_EmptyActionsMarshalAsList(t *testing.T) {
	board := NewBoard()
	board.Publish(engine.TickReport{Tick: 1}, time.Now())
	uc := UseCase{Board: board, Config: observeConfig{prof: profile.Default()}}
	resp, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if resp.Actions == nil {
		t.Fatal("Actions should be an empty slice, not nil")
	}
}

func TestCandidates_ReturnsRingContents(t *testing.T) {
	board := NewBoard()
	board.Publish(engine.TickReport{
		Tick: 7,
		Candidates: []ports.HealCandidate{
			{Seq: 0, Ability: combat.AbilityBloom, Valid: false, Reason: combat.ReasonHeldByPolicy},
			{Seq: 1, Ability: combat.AbilityVerdure, Amount: 1125, Valid: true, Selected: true},
		},
	}, time.Now())
	uc := UseCase{Board: board, Config: observeConfig{prof: profile.Default()}}
	resp, err := uc.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates error: %v", err)
	}
	if got, want := len(resp.Candidates), 2; got != want {
		t.Fatalf("len(Candidates) = %d, want %d", got, want)
	}
	if !resp.Candidates[1].Selected {
		t.Fatal("second candidate should be the selected one")
	}
}

func TestKPI_DelegatesToMetrics(t *testing.T) {
	uc := UseCase{Metrics: observeMetrics{snap: map[string]uint64{"decision_total": 3}}}
	snap, err := uc.KPI(context.Background())
	if err != nil {
		t.Fatalf("KPI error: %v", err)
	}
	m, ok := snap.(map[string]uint64)
	if !ok || m["decision_total"] != 3 {
		t.Fatalf("KPI snapshot = %#v, want decision_total 3", snap)
	}
}
