package engine

import (
	"triage/internal/app/evaluate"
	"triage/internal/app/strategy"
	"triage/internal/domain/combat"
)

// injuredHealthPct is the "counts as hurt" cutoff for area-target counting.
const injuredHealthPct = 0.9

// HealModule owns target and ability choice for healing casts, delegating
// the choice itself to the configured selection strategy. Area healing is
// tried before single-target whenever enough allies are hurt.
type HealModule struct {
	kit      *combat.Catalog
	ev       *evaluate.Evaluator
	gauges   *GaugeTracker
	log      *ActionLog
	priority int

	lastPick strategy.Pick
}

func NewHealModule(kit *combat.Catalog, ev *evaluate.Evaluator, gauges *GaugeTracker, log *ActionLog, priority int) *HealModule {
	return &HealModule{kit: kit, ev: ev, gauges: gauges, log: log, priority: priority}
}

func (m *HealModule) Name() string  { return "heal" }
func (m *HealModule) Priority() int { return m.priority }

func (m *HealModule) TryExecute(c *TickContext, pass Pass, res *Reservations) (bool, error) {
	strat := strategy.ForProfile(c.Profile)
	in := m.baseInputs(c, pass)

	if pass.Slot == combat.SlotPrimary && in.InjuredInArea >= c.Profile.AoEMinTargets {
		if pick, _ := strat.SelectArea(m.ev, in); !pick.None() {
			if m.executeArea(c, pass, pick) {
				return true, nil
			}
		}
	}

	target, ok := c.Roster.LowestHealthAlly()
	if !ok {
		return false, nil
	}
	missing := target.MissingHealth() - c.Pending.PendingAmount(target.ID)
	if missing <= 0 {
		return false, nil
	}
	if res.Reserved(target.ID) {
		for _, a := range m.kit.HealCandidates(pass.Slot, false) {
			m.ev.TrackRejected(a, combat.PredictHeal(a.Potency, c.Snap.Stats), combat.ReasonTargetReserved)
			break
		}
		return false, nil
	}

	in.Target = target
	in.HasTarget = true
	in.MissingHealth = missing
	if trend, ok := c.DamageTrend(); ok {
		in.DamageRate = trend.RatePerSecond(target.ID)
	}

	pick, _ := strat.SelectSingle(m.ev, in)
	if pick.None() {
		return false, nil
	}
	if pick.Ability.Range > 0 && target.Position.DistanceSq(c.Snap.Position) > pick.Ability.Range*pick.Ability.Range {
		m.ev.TrackRejected(pick.Ability, pick.Amount, combat.ReasonOutOfRange)
		return false, nil
	}

	if !res.Reserve(target.ID) {
		return false, nil
	}
	c.Pending.RegisterPendingHeal(target.ID, pick.Amount)
	if !m.execute(c, pass, pick.Ability, target.ID) {
		// The host refused the cast: roll back the optimistic bookkeeping
		// within the same tick.
		c.Pending.ClearPendingHeals(target.ID)
		res.Release(target.ID)
		m.ev.ClearSelected()
		return false, nil
	}

	m.settle(pass, pick)
	return true, nil
}

func (m *HealModule) executeArea(c *TickContext, pass Pass, pick strategy.Pick) bool {
	if !m.execute(c, pass, pick.Ability, "") {
		m.ev.ClearSelected()
		return false
	}
	m.settle(pass, pick)
	return true
}

// settle applies the reported side effects of a successful cast: the gauge
// spend and the action log entry.
func (m *HealModule) settle(pass Pass, pick strategy.Pick) {
	if pick.Ability.SpendsGauge() {
		m.gauges.ApplySpend()
	}
	m.lastPick = pick
	m.log.Record(ActionRecord{
		Module:   m.Name(),
		Slot:     pass.Slot,
		Ability:  pick.Ability.ID,
		TargetID: pick.TargetID,
		Amount:   pick.Amount,
	})
}

func (m *HealModule) execute(c *TickContext, pass Pass, a combat.Ability, targetID string) bool {
	if pass.Slot == combat.SlotSecondary {
		return c.Executor.ExecuteSecondary(a.ID, targetID)
	}
	return c.Executor.ExecutePrimary(a.ID, targetID)
}

func (m *HealModule) baseInputs(c *TickContext, pass Pass) strategy.Inputs {
	radius := m.kit.MustByID(combat.AbilityRadiance).Radius
	return strategy.Inputs{
		Kit:            m.kit,
		Profile:        c.Profile,
		Status:         c.Status,
		Level:          c.Snap.Level,
		Stats:          c.Snap.Stats,
		MP:             c.Snap.MP,
		Gauge:          c.Gauge,
		Surge:          c.Snap.Surge,
		Moving:         c.IsMoving(),
		Slot:           pass.Slot,
		WeaveWindow:    pass.WeaveWindow,
		CombatDuration: c.CombatDuration,
		AgentPos:       c.Snap.Position,
		InjuredInArea:  c.Roster.CountInjuredWithin(c.Snap.Position, radius, injuredHealthPct),
	}
}

// UpdateDebugState is a pure observability hook; decisions never depend on
// it.
func (m *HealModule) UpdateDebugState(*TickContext) {}
