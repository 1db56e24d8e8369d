package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"triage/internal/app/evaluate"
	"triage/internal/app/ports"
	"triage/internal/domain/combat"
)

// Deps wires the scheduler to its collaborators. Trend and Targets are
// optional; everything else is required.
type Deps struct {
	Kit      *combat.Catalog
	Config   ports.ConfigProvider
	Status   ports.ActionStatusProvider
	Executor ports.ActionExecutor
	Roster   ports.RosterProvider
	Pending  ports.PendingHealRegistry
	Metrics  ports.EngineMetrics

	Trend   ports.DamageTrendProvider
	Targets ports.TargetStatusProvider

	Logf func(format string, args ...any)
}

// Scheduler drives one decision cycle per host frame: refresh per-tick
// state, build the context, run the slot passes, contain faults.
type Scheduler struct {
	deps     Deps
	ev       *evaluate.Evaluator
	alog     ActionLog
	pipeline *Pipeline[*TickContext]

	gauges   GaugeTracker
	movement MovementTracker
	clock    CombatClock

	lastNow  time.Duration
	lastTick uint64
	haveLast bool

	// The disable latch is the only cross-goroutine state: the ops API
	// flips it from outside the tick thread.
	disabled atomic.Bool

	throttleStart  time.Duration
	throttleSeeded bool
	suppressed     uint64
}

func New(deps Deps) *Scheduler {
	if deps.Kit == nil {
		deps.Kit = combat.DefaultKit()
	}
	if deps.Logf == nil {
		deps.Logf = log.Printf
	}
	prof := deps.Config.Snapshot()
	s := &Scheduler{
		deps: deps,
		ev:   evaluate.New(prof.DiagnosticsCap),
	}
	s.pipeline = NewPipeline[*TickContext](
		NewReviveModule(deps.Kit, &s.alog, 5),
		NewMitigationModule(deps.Kit, &s.alog, 10),
		NewBuffModule(deps.Kit, &s.alog, 20),
		NewHealModule(deps.Kit, s.ev, &s.gauges, &s.alog, prof.HealPriority),
		NewDamageModule(deps.Kit, &s.gauges, &s.alog, 40),
	)
	return s
}

// Evaluator exposes the diagnostic ring for the observe surface.
func (s *Scheduler) Evaluator() *evaluate.Evaluator { return s.ev }

func (s *Scheduler) Gauges() *GaugeTracker { return &s.gauges }

func (s *Scheduler) Disabled() bool { return s.disabled.Load() }

// Disable latches the engine off. Only Enable clears it.
func (s *Scheduler) Disable() { s.disabled.Store(true) }

// Enable is the external re-enable for the fatal tier.
func (s *Scheduler) Enable() { s.disabled.Store(false) }

// Execute runs one tick. A latched engine returns immediately with a zero
// report; everything else is contained per tick.
func (s *Scheduler) Execute(snap AgentSnapshot) (TickReport, error) {
	if s.disabled.Load() {
		return TickReport{Tick: snap.Tick, Disabled: true}, ports.ErrEngineDisabled
	}
	prof := s.deps.Config.Snapshot()
	if !prof.Enabled {
		return TickReport{Tick: snap.Tick, Disabled: true}, nil
	}

	s.ev.ClearCandidates()
	s.alog.Reset()
	res := NewReservations()

	elapsed := s.elapsedSince(snap)
	moving := s.movement.Update(snap.Tick, snap.Position, prof.Movement)
	combatDur := s.clock.Update(snap.Tick, elapsed, snap.InCombat)
	s.gauges.Refresh(snap.Tick, elapsed, snap.InCombat)

	ctx := &TickContext{
		Snap:           snap,
		Profile:        prof,
		Gauge:          s.gauges.Pair(),
		CombatDuration: combatDur,
		Status:         s.deps.Status,
		Executor:       s.deps.Executor,
		Roster:         s.deps.Roster,
		Pending:        s.deps.Pending,
		moving:         moving,
		trend:          s.deps.Trend,
		targets:        s.deps.Targets,
	}

	report := TickReport{
		Tick:           snap.Tick,
		Moving:         moving,
		InCombat:       snap.InCombat,
		CombatDuration: combatDur,
	}

	abort := false
	if !snap.CastLocked && s.deps.Status.SecondarySlotOpen() {
		abort = s.runPass(ctx, Pass{Slot: combat.SlotSecondary, WeaveWindow: s.deps.Status.WeaveWindow()}, res, &report)
	}
	if !abort && !snap.CastLocked && s.deps.Status.PrimarySlotOpen() {
		s.runPass(ctx, Pass{Slot: combat.SlotPrimary}, res, &report)
	}

	s.pipeline.UpdateDebugState(ctx)

	report.Actions = s.alog.Entries()
	report.Candidates = s.ev.GetCandidatesCopy()
	report.Reserved = res.IDs()
	report.Gauge = s.gauges.Pair()
	report.Disabled = s.disabled.Load()

	s.lastNow = snap.Now
	s.lastTick = snap.Tick
	s.haveLast = true

	return report, nil
}

// runPass contains one pipeline walk, including panics. The returned flag
// asks the caller to abandon the rest of the tick.
func (s *Scheduler) runPass(ctx *TickContext, pass Pass, res *Reservations, report *TickReport) (abort bool) {
	var result PassResult
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				if perr, ok := r.(error); ok {
					err = fmt.Errorf("panic in %s pass: %w", pass.Slot, perr)
				} else {
					err = fmt.Errorf("panic in %s pass: %v", pass.Slot, r)
				}
			}
		}()
		result, err = s.pipeline.RunPass(ctx, pass, res)
	}()

	if err != nil {
		report.Fault = err.Error()
		return s.containFault(ctx, err)
	}

	report.Passes = append(report.Passes, result)
	if result.Executed {
		if s.deps.Metrics != nil {
			ability := combat.AbilityID("")
			if entries := s.alog.Entries(); len(entries) > 0 {
				ability = entries[len(entries)-1].Ability
			}
			s.deps.Metrics.RecordDecision(result.Module, pass.Slot, ability)
		}
	} else if s.deps.Metrics != nil {
		s.deps.Metrics.RecordNoAction(pass.Slot)
	}
	return false
}

// containFault applies the three-tier model: fatal latches and logs once,
// stale aborts silently, everything else logs throttled. All three abort
// the remainder of the current tick and nothing more.
func (s *Scheduler) containFault(ctx *TickContext, err error) bool {
	switch {
	case errors.Is(err, ports.ErrHostCorrupted):
		s.recordFault(ports.FaultFatal)
		if !s.disabled.Swap(true) {
			s.deps.Logf("engine disabled after fatal host fault: %v", err)
		}
	case errors.Is(err, ports.ErrStaleReference):
		s.recordFault(ports.FaultStale)
	default:
		s.recordFault(ports.FaultOther)
		s.logThrottled(ctx.Snap.Now, ctx.Profile.LogThrottle, err)
	}
	return true
}

func (s *Scheduler) recordFault(tier ports.FaultTier) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordFault(tier)
	}
}

// logThrottled emits at most one line per window, carrying how many faults
// the window swallowed. Time comes from the snapshot, not the wall clock.
func (s *Scheduler) logThrottled(now, window time.Duration, err error) {
	if !s.throttleSeeded || now-s.throttleStart >= window {
		s.deps.Logf("tick fault: %v (suppressed %d)", err, s.suppressed)
		s.throttleStart = now
		s.throttleSeeded = true
		s.suppressed = 0
		return
	}
	s.suppressed++
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordSuppressedLogs(1)
	}
}

// elapsedSince keys regeneration on tick advancement: re-running the same
// tick contributes no time, so nothing advances twice.
func (s *Scheduler) elapsedSince(snap AgentSnapshot) time.Duration {
	if !s.haveLast || snap.Tick == s.lastTick {
		return 0
	}
	if snap.Now <= s.lastNow {
		return 0
	}
	return snap.Now - s.lastNow
}
