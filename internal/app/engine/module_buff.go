package engine

import (
	"time"

	"triage/internal/domain/combat"
)

const (
	// quicken is held until the encounter has settled and the agent is not
	// the one in danger.
	buffMinCombat  = 10 * time.Second
	buffHealthyPct = 0.8
)

// BuffModule weaves the haste buff during sustained, stable combat.
type BuffModule struct {
	kit      *combat.Catalog
	log      *ActionLog
	priority int
}

func NewBuffModule(kit *combat.Catalog, log *ActionLog, priority int) *BuffModule {
	return &BuffModule{kit: kit, log: log, priority: priority}
}

func (m *BuffModule) Name() string  { return "buff" }
func (m *BuffModule) Priority() int { return m.priority }

func (m *BuffModule) TryExecute(c *TickContext, pass Pass, _ *Reservations) (bool, error) {
	quicken := m.kit.MustByID(combat.AbilityQuicken)
	if pass.Slot != quicken.Slot {
		return false, nil
	}
	if !c.Snap.InCombat || c.CombatDuration < buffMinCombat {
		return false, nil
	}
	if c.Snap.HealthPct() < buffHealthyPct {
		return false, nil
	}
	if c.Snap.Level < quicken.MinLevel || !c.Profile.AbilityEnabled(quicken.ID) || !c.Status.IsReady(quicken.ID) {
		return false, nil
	}
	if !c.Executor.ExecuteSecondary(quicken.ID, "") {
		return false, nil
	}
	m.log.Record(ActionRecord{Module: m.Name(), Slot: pass.Slot, Ability: quicken.ID})
	return true, nil
}
