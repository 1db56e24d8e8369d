package engine

import (
	"fmt"
	"time"

	"triage/internal/app/ports"
	"triage/internal/app/profile"
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

type stubConfig struct {
	prof profile.Snapshot
}

func (c *stubConfig) Snapshot() profile.Snapshot { return c.prof }

type stubStatus struct {
	notReady      map[combat.AbilityID]bool
	charges       map[combat.AbilityID]int
	primaryOpen   bool
	secondaryOpen bool
	weave         bool
}

func openStatus() *stubStatus {
	return &stubStatus{primaryOpen: true, secondaryOpen: true}
}

func (s *stubStatus) IsReady(id combat.AbilityID) bool                 { return !s.notReady[id] }
func (s *stubStatus) CooldownRemaining(combat.AbilityID) time.Duration { return 0 }
func (s *stubStatus) Charges(id combat.AbilityID) int {
	if s.charges == nil {
		return 1
	}
	return s.charges[id]
}
func (s *stubStatus) PrimarySlotOpen() bool   { return s.primaryOpen }
func (s *stubStatus) SecondarySlotOpen() bool { return s.secondaryOpen }
func (s *stubStatus) WeaveWindow() bool       { return s.weave }

type executedCall struct {
	Ability  combat.AbilityID
	TargetID string
	Slot     combat.SlotType
}

type stubExecutor struct {
	refuse map[combat.AbilityID]bool
	calls  []executedCall
}

func (e *stubExecutor) ExecutePrimary(id combat.AbilityID, targetID string) bool {
	if e.refuse[id] {
		return false
	}
	e.calls = append(e.calls, executedCall{Ability: id, TargetID: targetID, Slot: combat.SlotPrimary})
	return true
}

func (e *stubExecutor) ExecuteSecondary(id combat.AbilityID, targetID string) bool {
	if e.refuse[id] {
		return false
	}
	e.calls = append(e.calls, executedCall{Ability: id, TargetID: targetID, Slot: combat.SlotSecondary})
	return true
}

type stubRoster struct {
	allies []party.Ally
	panicV any
}

func (r *stubRoster) Allies() []party.Ally {
	if r.panicV != nil {
		panic(r.panicV)
	}
	out := make([]party.Ally, len(r.allies))
	copy(out, r.allies)
	party.SortByID(out)
	return out
}

func (r *stubRoster) LowestHealthAlly() (party.Ally, bool) {
	if r.panicV != nil {
		panic(r.panicV)
	}
	return party.LowestHealth(r.allies)
}

func (r *stubRoster) CountInjuredWithin(center party.Point, radius, maxHealthPct float64) int {
	return party.CountInjuredWithin(r.allies, center, radius, maxHealthPct)
}

type stubPending struct {
	amounts map[string]int
}

func newStubPending() *stubPending { return &stubPending{amounts: map[string]int{}} }

func (p *stubPending) RegisterPendingHeal(allyID string, amount int) { p.amounts[allyID] += amount }
func (p *stubPending) ClearPendingHeals(allyID string)               { delete(p.amounts, allyID) }
func (p *stubPending) PendingAmount(allyID string) int               { return p.amounts[allyID] }

type stubMetrics struct {
	ticks      int
	decisions  []string
	noAction   int
	faults     map[ports.FaultTier]int
	suppressed uint64
}

func newStubMetrics() *stubMetrics { return &stubMetrics{faults: map[ports.FaultTier]int{}} }

func (m *stubMetrics) RecordTick(time.Duration) { m.ticks++ }
func (m *stubMetrics) RecordDecision(module string, slot combat.SlotType, ability combat.AbilityID) {
	m.decisions = append(m.decisions, fmt.Sprintf("%s/%s/%s", module, slot, ability))
}
func (m *stubMetrics) RecordNoAction(combat.SlotType)   { m.noAction++ }
func (m *stubMetrics) RecordFault(tier ports.FaultTier) { m.faults[tier]++ }
func (m *stubMetrics) RecordSuppressedLogs(n uint64)    { m.suppressed += n }

type stubTrend struct {
	rates  map[string]float64
	spikes map[string]bool
}

func (t *stubTrend) RatePerSecond(allyID string) float64 { return t.rates[allyID] }
func (t *stubTrend) SpikeExpected(allyID string) bool    { return t.spikes[allyID] }

type stubTargets struct {
	hasEnemy bool
	effects  map[combat.AbilityID]time.Duration
}

func (t *stubTargets) HasEnemyTarget() bool { return t.hasEnemy }
func (t *stubTargets) EnemyEffectRemaining(id combat.AbilityID) time.Duration {
	return t.effects[id]
}

type fixture struct {
	config   *stubConfig
	status   *stubStatus
	executor *stubExecutor
	roster   *stubRoster
	pending  *stubPending
	metrics  *stubMetrics
	targets  *stubTargets
	trend    *stubTrend
	logs     []string
}

func newFixture() *fixture {
	return &fixture{
		config:   &stubConfig{prof: profile.Default()},
		status:   openStatus(),
		executor: &stubExecutor{},
		roster: &stubRoster{allies: []party.Ally{
			{ID: "dps-1", MaxHealth: 30000, Health: 30000},
			{ID: "dps-2", MaxHealth: 30000, Health: 30000},
			{ID: "tank-1", Role: party.RoleTank, MaxHealth: 40000, Health: 22000},
		}},
		pending: newStubPending(),
		metrics: newStubMetrics(),
		targets: &stubTargets{},
		trend:   &stubTrend{rates: map[string]float64{}, spikes: map[string]bool{}},
	}
}

func (f *fixture) scheduler() *Scheduler {
	s := New(Deps{
		Config:   f.config,
		Status:   f.status,
		Executor: f.executor,
		Roster:   f.roster,
		Pending:  f.pending,
		Metrics:  f.metrics,
		Trend:    f.trend,
		Targets:  f.targets,
		Logf: func(format string, args ...any) {
			f.logs = append(f.logs, fmt.Sprintf(format, args...))
		},
	})
	return s
}

func snapshotAt(tick uint64, now time.Duration) AgentSnapshot {
	return AgentSnapshot{
		Tick:      tick,
		Now:       now,
		Level:     80,
		Stats:     combat.DefaultStats(),
		Health:    50000,
		MaxHealth: 50000,
		MP:        10000,
		MaxMP:     10000,
		InCombat:  true,
	}
}
