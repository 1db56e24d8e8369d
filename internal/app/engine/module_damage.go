package engine

import (
	"triage/internal/app/ports"
	"triage/internal/domain/combat"
)

// DamageModule spends leftover slot time on the enemy: the capstone when
// the Seed gauge is full, DoT upkeep, then the filler cast.
type DamageModule struct {
	kit      *combat.Catalog
	gauges   *GaugeTracker
	log      *ActionLog
	priority int
}

func NewDamageModule(kit *combat.Catalog, gauges *GaugeTracker, log *ActionLog, priority int) *DamageModule {
	return &DamageModule{kit: kit, gauges: gauges, log: log, priority: priority}
}

func (m *DamageModule) Name() string  { return "damage" }
func (m *DamageModule) Priority() int { return m.priority }

func (m *DamageModule) TryExecute(c *TickContext, pass Pass, _ *Reservations) (bool, error) {
	targets, ok := c.TargetStatus()
	if !ok || !targets.HasEnemyTarget() {
		return false, nil
	}
	if pass.Slot == combat.SlotSecondary {
		return m.trySecondary(c, pass), nil
	}
	return m.tryPrimary(c, pass, targets), nil
}

func (m *DamageModule) trySecondary(c *TickContext, pass Pass) bool {
	assail := m.kit.MustByID(combat.AbilityAssail)
	if !m.castable(c, assail) {
		return false
	}
	if !c.Executor.ExecuteSecondary(assail.ID, "") {
		return false
	}
	m.log.Record(ActionRecord{Module: m.Name(), Slot: pass.Slot, Ability: assail.ID})
	return true
}

func (m *DamageModule) tryPrimary(c *TickContext, pass Pass, targets ports.TargetStatusProvider) bool {
	// Capstone first: a full Seed gauge blocks further growth.
	fullbloom := m.kit.MustByID(combat.AbilityFullbloom)
	if c.Gauge.Secondary == combat.SecondaryGaugeCap && m.castable(c, fullbloom) {
		if c.Executor.ExecutePrimary(fullbloom.ID, "") {
			m.gauges.ApplyCapstone()
			m.log.Record(ActionRecord{Module: m.Name(), Slot: pass.Slot, Ability: fullbloom.ID})
			return true
		}
	}

	// DoT upkeep when missing or about to fall off.
	blight := m.kit.MustByID(combat.AbilityBlight)
	if m.castable(c, blight) && targets.EnemyEffectRemaining(blight.ID) <= combat.DoTRefreshWindow {
		if c.Executor.ExecutePrimary(blight.ID, "") {
			m.log.Record(ActionRecord{Module: m.Name(), Slot: pass.Slot, Ability: blight.ID})
			return true
		}
	}

	smite := m.kit.MustByID(combat.AbilitySmite)
	if !m.castable(c, smite) {
		return false
	}
	if !c.Executor.ExecutePrimary(smite.ID, "") {
		return false
	}
	m.log.Record(ActionRecord{Module: m.Name(), Slot: pass.Slot, Ability: smite.ID})
	return true
}

func (m *DamageModule) castable(c *TickContext, a combat.Ability) bool {
	if c.Snap.Level < a.MinLevel || !c.Profile.AbilityEnabled(a.ID) || !c.Status.IsReady(a.ID) {
		return false
	}
	if a.Cast == combat.CastTimed && c.IsMoving() {
		return false
	}
	if a.MPCost > 0 && c.Snap.MP < a.MPCost {
		return false
	}
	if a.ConsumesSeeds && c.Gauge.Secondary < combat.SecondaryGaugeCap {
		return false
	}
	return true
}
