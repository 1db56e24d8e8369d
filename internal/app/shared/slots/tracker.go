package slots

import (
	"time"

	"triage/internal/domain/combat"
)

type abilityState struct {
	recharge    time.Duration
	maxCharges  int
	charges     int
	nextReadyAt time.Duration
}

// Tracker is nextReadyAt-style recharge bookkeeping for both slots: one
// shared timer gating every primary-slot cast, per-ability timers plus
// charges for the secondary slot, and the weave window in between.
type Tracker struct {
	now time.Duration

	sharedRecharge time.Duration
	sharedReadyAt  time.Duration
	lastPrimaryAt  time.Duration
	castedPrimary  bool

	weaveWindow time.Duration

	perAbility map[combat.AbilityID]*abilityState
}

func NewTracker(sharedRecharge, weaveWindow time.Duration) *Tracker {
	return &Tracker{
		sharedRecharge: sharedRecharge,
		weaveWindow:    weaveWindow,
		perAbility:     make(map[combat.AbilityID]*abilityState),
	}
}

// RegisterKit seeds per-ability timers for every secondary-slot ability in
// the catalog. Primary-slot abilities ride the shared timer and need no
// entry.
func (t *Tracker) RegisterKit(kit *combat.Catalog) {
	for _, a := range kit.Ordered() {
		if a.Slot != combat.SlotSecondary {
			continue
		}
		charges := a.Charges
		if charges < 1 {
			charges = 1
		}
		t.perAbility[a.ID] = &abilityState{
			recharge:   a.Recharge,
			maxCharges: charges,
			charges:    charges,
		}
	}
}

// Advance moves the tracker clock and refills charges whose recharge
// completed. Time only moves forward.
func (t *Tracker) Advance(now time.Duration) {
	if now < t.now {
		return
	}
	t.now = now
	for _, st := range t.perAbility {
		for st.charges < st.maxCharges && st.nextReadyAt <= t.now {
			st.charges++
			if st.charges < st.maxCharges {
				st.nextReadyAt += st.recharge
			}
		}
	}
}

func (t *Tracker) IsReady(id combat.AbilityID) bool {
	if st, ok := t.perAbility[id]; ok {
		return st.charges > 0
	}
	return t.sharedReadyAt <= t.now
}

func (t *Tracker) CooldownRemaining(id combat.AbilityID) time.Duration {
	if st, ok := t.perAbility[id]; ok {
		if st.charges > 0 {
			return 0
		}
		return max(0, st.nextReadyAt-t.now)
	}
	return max(0, t.sharedReadyAt-t.now)
}

func (t *Tracker) Charges(id combat.AbilityID) int {
	if st, ok := t.perAbility[id]; ok {
		return st.charges
	}
	if t.sharedReadyAt <= t.now {
		return 1
	}
	return 0
}

func (t *Tracker) PrimarySlotOpen() bool { return t.sharedReadyAt <= t.now }

// SecondarySlotOpen reports whether any weave cast could fit; per-ability
// readiness still gates each candidate individually.
func (t *Tracker) SecondarySlotOpen() bool { return true }

// WeaveWindow is the gap after a primary cast while the shared recharge
// still runs: a secondary action there delays nothing.
func (t *Tracker) WeaveWindow() bool {
	if !t.castedPrimary || t.sharedReadyAt <= t.now {
		return false
	}
	return t.now-t.lastPrimaryAt <= t.weaveWindow
}

// NotePrimaryCast starts the shared recharge.
func (t *Tracker) NotePrimaryCast() {
	t.lastPrimaryAt = t.now
	t.castedPrimary = true
	t.sharedReadyAt = t.now + t.sharedRecharge
}

// NoteSecondaryCast spends one charge and starts that ability's recharge.
func (t *Tracker) NoteSecondaryCast(id combat.AbilityID) bool {
	st, ok := t.perAbility[id]
	if !ok || st.charges <= 0 {
		return false
	}
	if st.charges == st.maxCharges {
		st.nextReadyAt = t.now + st.recharge
	}
	st.charges--
	return true
}
