package engine

import (
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

// ReviveModule raises dead allies. It outranks everything: a dead ally
// receives no heals, so nothing below it in the pipeline can help.
type ReviveModule struct {
	kit      *combat.Catalog
	log      *ActionLog
	priority int
}

func NewReviveModule(kit *combat.Catalog, log *ActionLog, priority int) *ReviveModule {
	return &ReviveModule{kit: kit, log: log, priority: priority}
}

func (m *ReviveModule) Name() string  { return "revive" }
func (m *ReviveModule) Priority() int { return m.priority }

func (m *ReviveModule) TryExecute(c *TickContext, pass Pass, res *Reservations) (bool, error) {
	revive := m.kit.MustByID(combat.AbilityRevive)
	if pass.Slot != revive.Slot {
		return false, nil
	}
	// An 8 second cast cannot start while moving.
	if c.IsMoving() || c.Snap.Level < revive.MinLevel || c.Snap.MP < revive.MPCost {
		return false, nil
	}
	if !c.Profile.AbilityEnabled(revive.ID) || !c.Status.IsReady(revive.ID) {
		return false, nil
	}
	dead, ok := party.FirstDead(c.Roster.Allies())
	if !ok {
		return false, nil
	}
	if !res.Reserve(dead.ID) {
		return false, nil
	}
	if !c.Executor.ExecutePrimary(revive.ID, dead.ID) {
		res.Release(dead.ID)
		return false, nil
	}
	m.log.Record(ActionRecord{Module: m.Name(), Slot: pass.Slot, Ability: revive.ID, TargetID: dead.ID})
	return true, nil
}
