package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"triage/internal/app/ports"
	"triage/internal/domain/combat"
)

func TestExecute_HealsTheLowestAlly(t *testing.T) {
	f := newFixture()
	s := f.scheduler()

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Actions) != 1 {
		t.Fatalf("expected exactly one action, got %+v", report.Actions)
	}
	act := report.Actions[0]
	if act.Module != "heal" || act.TargetID != "tank-1" {
		t.Fatalf("expected a heal on tank-1, got %+v", act)
	}
	if act.Ability != combat.AbilityVerdure {
		t.Fatalf("55%% tank under calm damage should take the regen, got %s", act.Ability)
	}
	if f.pending.PendingAmount("tank-1") == 0 {
		t.Fatalf("successful cast must leave its pending heal registered")
	}
	if len(f.metrics.decisions) != 1 {
		t.Fatalf("expected one decision metric, got %v", f.metrics.decisions)
	}
}

func TestExecute_SecondaryPassRunsBeforePrimary(t *testing.T) {
	f := newFixture()
	s := f.scheduler()

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Passes) != 2 {
		t.Fatalf("expected two passes, got %+v", report.Passes)
	}
	if report.Passes[0].Slot != combat.SlotSecondary || report.Passes[1].Slot != combat.SlotPrimary {
		t.Fatalf("pass order wrong: %+v", report.Passes)
	}
}

func TestExecute_AtMostOneActionPerSlot(t *testing.T) {
	f := newFixture()
	// Full-health party and a full Seed gauge: healing stands down, damage
	// spends both slots.
	for i := range f.roster.allies {
		f.roster.allies[i].Health = f.roster.allies[i].MaxHealth
	}
	f.targets.hasEnemy = true
	s := f.scheduler()
	s.Gauges().Seed(combat.GaugePair{Primary: 0, Secondary: 3})

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Actions) != 2 {
		t.Fatalf("expected one action per slot, got %+v", report.Actions)
	}
	bySlot := map[combat.SlotType]combat.AbilityID{}
	for _, a := range report.Actions {
		if _, dup := bySlot[a.Slot]; dup {
			t.Fatalf("two actions on one slot: %+v", report.Actions)
		}
		bySlot[a.Slot] = a.Ability
	}
	if bySlot[combat.SlotSecondary] != combat.AbilityAssail {
		t.Fatalf("expected assail on the weave slot, got %s", bySlot[combat.SlotSecondary])
	}
	if bySlot[combat.SlotPrimary] != combat.AbilityFullbloom {
		t.Fatalf("full Seed gauge must fire the capstone, got %s", bySlot[combat.SlotPrimary])
	}
	if report.Gauge.Secondary != 0 {
		t.Fatalf("capstone must consume the Seed gauge, got %d", report.Gauge.Secondary)
	}
}

func TestExecute_ReservationBlocksSecondModule(t *testing.T) {
	f := newFixture()
	f.roster.allies[2].Health = 12000 // 30%: below the shield threshold
	f.trend.spikes["tank-1"] = true
	s := f.scheduler()

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Actions) != 1 || report.Actions[0].Ability != combat.AbilityAegis {
		t.Fatalf("expected only the shield to land, got %+v", report.Actions)
	}
	if report.Actions[0].TargetID != "tank-1" {
		t.Fatalf("shield missed the spiked ally: %+v", report.Actions[0])
	}
	var sawReserved bool
	for _, c := range report.Candidates {
		if c.Reason == combat.ReasonTargetReserved {
			sawReserved = true
		}
	}
	if !sawReserved {
		t.Fatalf("the blocked heal must surface target_reserved, got %+v", report.Candidates)
	}
	for _, call := range f.executor.calls {
		if call.TargetID == "tank-1" && call.Ability != combat.AbilityAegis {
			t.Fatalf("second module acted on a reserved ally: %+v", call)
		}
	}
}

func TestExecute_RefusedCastRollsBackBookkeeping(t *testing.T) {
	f := newFixture()
	f.executor.refuse = map[combat.AbilityID]bool{combat.AbilityVerdure: true}
	f.config.prof.GaugeMode = combat.GaugeModeDisabled
	f.config.prof = f.config.prof.WithDisabled(combat.AbilityRemedy, combat.AbilityMend)
	s := f.scheduler()

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Actions) != 0 {
		t.Fatalf("refused execution must not report an action, got %+v", report.Actions)
	}
	if got := f.pending.PendingAmount("tank-1"); got != 0 {
		t.Fatalf("pending heal must be rolled back, got %d", got)
	}
	if len(report.Reserved) != 0 {
		t.Fatalf("reservation must be released on rollback, got %v", report.Reserved)
	}
}

func TestExecute_RefusedCastIsNotSelectedInDiagnostics(t *testing.T) {
	f := newFixture()
	f.executor.refuse = map[combat.AbilityID]bool{combat.AbilityVerdure: true}
	f.config.prof.GaugeMode = combat.GaugeModeDisabled
	f.config.prof = f.config.prof.WithDisabled(combat.AbilityRemedy, combat.AbilityMend)
	s := f.scheduler()

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	for _, cand := range report.Candidates {
		if cand.Selected {
			t.Fatalf("refused cast must not stay selected in diagnostics: %+v", cand)
		}
	}
}

func TestExecute_SameTickIsIdempotent(t *testing.T) {
	f := newFixture()
	s := f.scheduler()
	snap := snapshotAt(7, 112*time.Millisecond)

	first, err := s.Execute(snap)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	// Restore collaborator state the first run advanced, then re-enter.
	f.pending = newStubPending()
	f.executor.calls = nil
	s.deps.Pending = f.pending

	second, err := s.Execute(snap)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-entering the same tick changed the decision (-first +second):\n%s", diff)
	}
}

func TestExecute_FatalFaultLatchesAndLogsOnce(t *testing.T) {
	f := newFixture()
	f.roster.panicV = ports.ErrHostCorrupted
	s := f.scheduler()

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("the faulting tick itself must not error: %v", err)
	}
	if report.Fault == "" || !report.Disabled {
		t.Fatalf("fatal fault must latch the engine, got %+v", report)
	}
	if f.metrics.faults[ports.FaultFatal] != 1 {
		t.Fatalf("expected one fatal fault metric, got %v", f.metrics.faults)
	}
	if len(f.logs) != 1 {
		t.Fatalf("fatal tier logs exactly once, got %v", f.logs)
	}

	if _, err := s.Execute(snapshotAt(2, 32*time.Millisecond)); !errors.Is(err, ports.ErrEngineDisabled) {
		t.Fatalf("latched engine must refuse to run, got %v", err)
	}
	if len(f.logs) != 1 {
		t.Fatalf("latched engine must not log again, got %v", f.logs)
	}

	// External re-enable restores service.
	f.roster.panicV = nil
	s.Enable()
	if _, err := s.Execute(snapshotAt(3, 48*time.Millisecond)); err != nil {
		t.Fatalf("re-enabled engine must run: %v", err)
	}
}

func TestExecute_StaleFaultAbortsTickSilently(t *testing.T) {
	f := newFixture()
	f.roster.panicV = ports.ErrStaleReference
	s := f.scheduler()

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Passes) != 0 {
		t.Fatalf("stale fault must abort the remaining passes, got %+v", report.Passes)
	}
	if f.metrics.faults[ports.FaultStale] != 1 {
		t.Fatalf("expected one stale metric, got %v", f.metrics.faults)
	}
	if len(f.logs) != 0 {
		t.Fatalf("stale tier must not log, got %v", f.logs)
	}

	f.roster.panicV = nil
	next, err := s.Execute(snapshotAt(2, 32*time.Millisecond))
	if err != nil || next.Fault != "" {
		t.Fatalf("next tick must run clean, got %+v err=%v", next, err)
	}
}

func TestExecute_OtherFaultsLogThrottled(t *testing.T) {
	f := newFixture()
	f.roster.panicV = "roster exploded"
	s := f.scheduler()

	s.Execute(snapshotAt(1, 16*time.Millisecond))
	s.Execute(snapshotAt(2, 32*time.Millisecond))
	s.Execute(snapshotAt(3, 48*time.Millisecond))

	if f.metrics.faults[ports.FaultOther] != 3 {
		t.Fatalf("expected three other-tier faults, got %v", f.metrics.faults)
	}
	if len(f.logs) != 1 {
		t.Fatalf("throttle window must keep it to one line, got %v", f.logs)
	}
	if f.metrics.suppressed != 2 {
		t.Fatalf("expected 2 suppressed logs recorded, got %d", f.metrics.suppressed)
	}

	// Past the window, the next fault logs again.
	s.Execute(snapshotAt(400, 6*time.Second))
	if len(f.logs) != 2 {
		t.Fatalf("expected a new line after the window, got %v", f.logs)
	}
}

func TestExecute_ProfileDisabledMeansNoDecisions(t *testing.T) {
	f := newFixture()
	f.config.prof.Enabled = false
	s := f.scheduler()

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !report.Disabled || len(report.Actions) != 0 {
		t.Fatalf("disabled profile must produce a zero report, got %+v", report)
	}
	if len(f.executor.calls) != 0 {
		t.Fatalf("disabled profile must not touch the executor")
	}
}

func TestExecute_AreaHealWhenPartyIsBroadlyHurt(t *testing.T) {
	f := newFixture()
	for i := range f.roster.allies {
		f.roster.allies[i].Health = f.roster.allies[i].MaxHealth / 2
	}
	s := f.scheduler()
	s.Gauges().Seed(combat.GaugePair{Primary: 1})

	report, err := s.Execute(snapshotAt(1, 16*time.Millisecond))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	var primary *ActionRecord
	for i := range report.Actions {
		if report.Actions[i].Slot == combat.SlotPrimary {
			primary = &report.Actions[i]
		}
	}
	if primary == nil {
		t.Fatalf("expected a primary-slot action, got %+v", report.Actions)
	}
	if primary.Ability != combat.AbilityOvergrowth {
		t.Fatalf("three injured allies with a Blossom must take the gauge area heal, got %s", primary.Ability)
	}
	if primary.TargetID != "" {
		t.Fatalf("area heal must anchor on the agent, got target %q", primary.TargetID)
	}
	if report.Gauge.Primary != 0 || report.Gauge.Secondary != 1 {
		t.Fatalf("gauge spend must grow a Seed, got %+v", report.Gauge)
	}
}

func TestExecute_CastLockSkipsBothPasses(t *testing.T) {
	f := newFixture()
	s := f.scheduler()

	snap := snapshotAt(1, 16*time.Millisecond)
	snap.CastLocked = true
	report, err := s.Execute(snap)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Passes) != 0 || len(report.Actions) != 0 {
		t.Fatalf("a cast-locked tick must decide nothing, got %+v", report)
	}
}
