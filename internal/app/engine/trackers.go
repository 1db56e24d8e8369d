package engine

import (
	"time"

	"triage/internal/app/profile"
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

// The trackers below carry state across ticks but key every mutation on the
// tick index: re-running the same tick against non-advanced state returns
// the cached answer instead of advancing twice.

// GaugeTracker owns the authoritative gauge pair. Regeneration advances once
// per tick; spends and capstone consumption are applied only when modules
// report a successful execution.
type GaugeTracker struct {
	pair     combat.GaugePair
	lastTick uint64
	seeded   bool
}

func (t *GaugeTracker) Refresh(tick uint64, elapsed time.Duration, inCombat bool) {
	if t.seeded && tick == t.lastTick {
		return
	}
	t.pair.Tick(elapsed, inCombat)
	t.lastTick = tick
	t.seeded = true
}

func (t *GaugeTracker) Pair() combat.GaugePair { return t.pair }

func (t *GaugeTracker) ApplySpend() bool { return t.pair.SpendPrimary() }

func (t *GaugeTracker) ApplyCapstone() bool { return t.pair.ConsumeSecondary() }

// Seed overwrites the gauge state. Composition roots use it to start a run
// from a known position; the engine itself never calls it.
func (t *GaugeTracker) Seed(pair combat.GaugePair) { t.pair = pair }

// MovementTracker decides the moving flag from squared displacement, with a
// trailing grace of N ticks so brief pauses do not flicker cast-time logic.
type MovementTracker struct {
	lastPos  party.Point
	havePos  bool
	grace    int
	moving   bool
	lastTick uint64
	seeded   bool
}

func (m *MovementTracker) Update(tick uint64, pos party.Point, tuning profile.MovementTuning) bool {
	if m.seeded && tick == m.lastTick {
		return m.moving
	}
	if !m.havePos {
		m.lastPos = pos
		m.havePos = true
	}
	displaced := pos.DistanceSq(m.lastPos) > tuning.ThresholdSq
	if displaced {
		m.grace = tuning.GraceTicks
	} else if m.grace > 0 {
		m.grace--
	}
	m.moving = displaced || m.grace > 0
	m.lastPos = pos
	m.lastTick = tick
	m.seeded = true
	return m.moving
}

// CombatClock accrues encounter duration while the in-combat flag holds and
// resets the moment it drops.
type CombatClock struct {
	dur      time.Duration
	lastTick uint64
	seeded   bool
}

func (c *CombatClock) Update(tick uint64, elapsed time.Duration, inCombat bool) time.Duration {
	if c.seeded && tick == c.lastTick {
		return c.dur
	}
	if inCombat {
		c.dur += elapsed
	} else {
		c.dur = 0
	}
	c.lastTick = tick
	c.seeded = true
	return c.dur
}

func (c *CombatClock) Duration() time.Duration { return c.dur }
