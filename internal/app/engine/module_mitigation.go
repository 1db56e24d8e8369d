package engine

import (
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

// MitigationModule spends the defensive weave actions: a single-target
// shield ahead of a predicted spike and the ground regen field when the
// party is broadly hurt.
type MitigationModule struct {
	kit      *combat.Catalog
	log      *ActionLog
	priority int
}

func NewMitigationModule(kit *combat.Catalog, log *ActionLog, priority int) *MitigationModule {
	return &MitigationModule{kit: kit, log: log, priority: priority}
}

func (m *MitigationModule) Name() string  { return "mitigation" }
func (m *MitigationModule) Priority() int { return m.priority }

func (m *MitigationModule) TryExecute(c *TickContext, pass Pass, res *Reservations) (bool, error) {
	if pass.Slot != combat.SlotSecondary {
		return false, nil
	}
	if ok, err := m.tryShield(c, res, pass); ok || err != nil {
		return ok, err
	}
	return m.tryField(c, pass), nil
}

func (m *MitigationModule) tryShield(c *TickContext, res *Reservations, pass Pass) (bool, error) {
	aegis := m.kit.MustByID(combat.AbilityAegis)
	if c.Snap.Level < aegis.MinLevel || !c.Profile.AbilityEnabled(aegis.ID) || !c.Status.IsReady(aegis.ID) {
		return false, nil
	}
	target, ok := m.shieldTarget(c)
	if !ok || target.ShieldRemaining > 0 {
		return false, nil
	}
	if res.Reserved(target.ID) {
		return false, nil
	}
	if target.Position.DistanceSq(c.Snap.Position) > aegis.Range*aegis.Range {
		return false, nil
	}
	if !res.Reserve(target.ID) {
		return false, nil
	}
	if !c.Executor.ExecuteSecondary(aegis.ID, target.ID) {
		res.Release(target.ID)
		return false, nil
	}
	m.log.Record(ActionRecord{Module: m.Name(), Slot: pass.Slot, Ability: aegis.ID, TargetID: target.ID})
	return true, nil
}

// shieldTarget prefers a spike-threatened ally when the trend feed is
// present, otherwise the lowest-health ally once it is hurt enough to
// matter.
func (m *MitigationModule) shieldTarget(c *TickContext) (party.Ally, bool) {
	if trend, ok := c.DamageTrend(); ok {
		for _, a := range c.Roster.Allies() {
			if !a.Dead && trend.SpikeExpected(a.ID) {
				return a, true
			}
		}
	}
	lowest, ok := c.Roster.LowestHealthAlly()
	if !ok || lowest.HealthPct() > c.Profile.EmergencyHealthPct {
		return party.Ally{}, false
	}
	return lowest, true
}

func (m *MitigationModule) tryField(c *TickContext, pass Pass) bool {
	sanctum := m.kit.MustByID(combat.AbilitySanctum)
	if c.Snap.Level < sanctum.MinLevel || !c.Profile.AbilityEnabled(sanctum.ID) || !c.Status.IsReady(sanctum.ID) {
		return false
	}
	if c.Roster.CountInjuredWithin(c.Snap.Position, sanctum.Radius, injuredHealthPct) < c.Profile.AoEMinTargets {
		return false
	}
	if !c.Executor.ExecuteSecondary(sanctum.ID, "") {
		return false
	}
	m.log.Record(ActionRecord{Module: m.Name(), Slot: pass.Slot, Ability: sanctum.ID})
	return true
}
