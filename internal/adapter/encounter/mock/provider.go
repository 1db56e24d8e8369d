package mock

import (
	"time"

	"triage/internal/app/ports"
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

// Provider serves a frozen encounter view: fixed roster, everything ready,
// no enemy. Useful for demo runs and wiring tests where the simulation's
// scripted damage would only get in the way. Fields may be set directly
// before handing the provider to the engine.
type Provider struct {
	Roster     []party.Ally
	Cooldowns  map[combat.AbilityID]time.Duration
	ChargesBy  map[combat.AbilityID]int
	Weave      bool
	EnemyAlive bool
	DoTs       map[combat.AbilityID]time.Duration
	Rates      map[string]float64
	Spikes     map[string]bool

	pending map[string]int

	// Executed collects every accepted cast in order.
	Executed []ExecutedCast
	// Refuse lists ability IDs the executor should reject.
	Refuse map[combat.AbilityID]bool
}

type ExecutedCast struct {
	Ability  combat.AbilityID
	TargetID string
	Slot     combat.SlotType
}

func NewProvider() *Provider {
	return &Provider{
		Cooldowns: map[combat.AbilityID]time.Duration{},
		ChargesBy: map[combat.AbilityID]int{},
		DoTs:      map[combat.AbilityID]time.Duration{},
		Rates:     map[string]float64{},
		Spikes:    map[string]bool{},
		Refuse:    map[combat.AbilityID]bool{},
		pending:   map[string]int{},
		Roster: []party.Ally{
			{ID: "tank-1", Role: party.RoleTank, MaxHealth: 58000, Health: 58000, Position: party.Point{X: 4, Y: 0}},
			{ID: "dps-1", Role: party.RoleDamage, MaxHealth: 34000, Health: 34000, Position: party.Point{X: 3, Y: 2}},
			{ID: "dps-2", Role: party.RoleDamage, MaxHealth: 33000, Health: 33000, Position: party.Point{X: -2, Y: 5}},
		},
	}
}

func (p *Provider) IsReady(id combat.AbilityID) bool { return p.Cooldowns[id] == 0 }

func (p *Provider) CooldownRemaining(id combat.AbilityID) time.Duration { return p.Cooldowns[id] }

func (p *Provider) Charges(id combat.AbilityID) int {
	if n, ok := p.ChargesBy[id]; ok {
		return n
	}
	return 1
}

func (p *Provider) PrimarySlotOpen() bool { return true }

func (p *Provider) SecondarySlotOpen() bool { return true }

func (p *Provider) WeaveWindow() bool { return p.Weave }

func (p *Provider) ExecutePrimary(id combat.AbilityID, targetID string) bool {
	return p.execute(id, targetID, combat.SlotPrimary)
}

func (p *Provider) ExecuteSecondary(id combat.AbilityID, targetID string) bool {
	return p.execute(id, targetID, combat.SlotSecondary)
}

func (p *Provider) execute(id combat.AbilityID, targetID string, slot combat.SlotType) bool {
	if p.Refuse[id] {
		return false
	}
	p.Executed = append(p.Executed, ExecutedCast{Ability: id, TargetID: targetID, Slot: slot})
	return true
}

func (p *Provider) Allies() []party.Ally {
	out := make([]party.Ally, len(p.Roster))
	copy(out, p.Roster)
	party.SortByID(out)
	return out
}

func (p *Provider) LowestHealthAlly() (party.Ally, bool) {
	return party.LowestHealth(p.Roster)
}

func (p *Provider) CountInjuredWithin(center party.Point, radius, maxHealthPct float64) int {
	return party.CountInjuredWithin(p.Roster, center, radius, maxHealthPct)
}

func (p *Provider) RatePerSecond(allyID string) float64 { return p.Rates[allyID] }

func (p *Provider) SpikeExpected(allyID string) bool { return p.Spikes[allyID] }

func (p *Provider) HasEnemyTarget() bool { return p.EnemyAlive }

func (p *Provider) EnemyEffectRemaining(id combat.AbilityID) time.Duration { return p.DoTs[id] }

func (p *Provider) RegisterPendingHeal(allyID string, amount int) { p.pending[allyID] += amount }

func (p *Provider) ClearPendingHeals(allyID string) { delete(p.pending, allyID) }

func (p *Provider) PendingAmount(allyID string) int { return p.pending[allyID] }

var (
	_ ports.ActionStatusProvider = (*Provider)(nil)
	_ ports.ActionExecutor       = (*Provider)(nil)
	_ ports.RosterProvider       = (*Provider)(nil)
	_ ports.DamageTrendProvider  = (*Provider)(nil)
	_ ports.TargetStatusProvider = (*Provider)(nil)
	_ ports.PendingHealRegistry  = (*Provider)(nil)
)
