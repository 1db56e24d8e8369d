package combat

import "time"

// Catalog is the immutable restoration kit, ordered by declaration. The
// declaration order is load-bearing: candidate construction follows it, and
// score ties resolve to the earlier entry.
type Catalog struct {
	ordered []Ability
	byID    map[AbilityID]Ability
}

const (
	AbilitySmite      AbilityID = "smite"
	AbilityMend       AbilityID = "mend"
	AbilityBlight     AbilityID = "blight"
	AbilityRevive     AbilityID = "revive"
	AbilityRemedy     AbilityID = "remedy"
	AbilityQuicken    AbilityID = "quicken"
	AbilityVerdure    AbilityID = "verdure"
	AbilityRadiance   AbilityID = "radiance"
	AbilityBloom      AbilityID = "bloom"
	AbilitySanctum    AbilityID = "sanctum"
	AbilityAssail     AbilityID = "assail"
	AbilityTend       AbilityID = "tend"
	AbilityAegis      AbilityID = "aegis"
	AbilityOvergrowth AbilityID = "overgrowth"
	AbilityFullbloom  AbilityID = "fullbloom"
)

func DefaultKit() *Catalog {
	return newCatalog([]Ability{
		{ID: AbilitySmite, Name: "Smite", MinLevel: 1, Slot: SlotPrimary, Kind: KindDamage, Cast: CastTimed, CastTime: 1500 * time.Millisecond, MPCost: 200, Potency: 300, Range: 25},
		{ID: AbilityMend, Name: "Mend", MinLevel: 2, Slot: SlotPrimary, Kind: KindHeal, Cast: CastTimed, CastTime: 1500 * time.Millisecond, MPCost: 400, Potency: 450, Range: 30, GrantsSurge: true},
		{ID: AbilityBlight, Name: "Blight", MinLevel: 4, Slot: SlotPrimary, Kind: KindDamage, Cast: CastInstant, MPCost: 300, Potency: 75, TickPotency: 65, Duration: 30 * time.Second, Range: 25},
		{ID: AbilityRevive, Name: "Revive", MinLevel: 12, Slot: SlotPrimary, Kind: KindRevive, Cast: CastTimed, CastTime: 8 * time.Second, MPCost: 2400, Range: 30},
		{ID: AbilityRemedy, Name: "Remedy", MinLevel: 30, Slot: SlotPrimary, Kind: KindHeal, Cast: CastTimed, CastTime: 1500 * time.Millisecond, MPCost: 800, Potency: 800, Range: 30, SurgeDiscounts: true},
		{ID: AbilityQuicken, Name: "Quicken", MinLevel: 30, Slot: SlotSecondary, Kind: KindBuff, Cast: CastInstant, Recharge: 120 * time.Second, Charges: 1, Duration: 20 * time.Second},
		{ID: AbilityVerdure, Name: "Verdure", MinLevel: 35, Slot: SlotPrimary, Kind: KindRegen, Cast: CastInstant, MPCost: 500, Potency: 250, TickPotency: 250, Duration: 18 * time.Second, Range: 30},
		{ID: AbilityRadiance, Name: "Radiance", MinLevel: 50, Slot: SlotPrimary, Kind: KindHealArea, Cast: CastTimed, CastTime: 2 * time.Second, MPCost: 1000, Potency: 400, Radius: 15},
		{ID: AbilityBloom, Name: "Bloom", MinLevel: 52, Slot: SlotPrimary, Kind: KindHeal, Cast: CastInstant, GaugeCost: 1, Potency: 600, Range: 30},
		{ID: AbilitySanctum, Name: "Sanctum", MinLevel: 54, Slot: SlotSecondary, Kind: KindMitigationArea, Cast: CastInstant, Recharge: 90 * time.Second, Charges: 1, TickPotency: 100, Duration: 24 * time.Second, Radius: 10, Range: 30},
		{ID: AbilityAssail, Name: "Assail", MinLevel: 56, Slot: SlotSecondary, Kind: KindDamageArea, Cast: CastInstant, Recharge: 40 * time.Second, Charges: 1, Potency: 400, Radius: 15},
		{ID: AbilityTend, Name: "Tend", MinLevel: 60, Slot: SlotSecondary, Kind: KindHeal, Cast: CastInstant, Recharge: 60 * time.Second, Charges: 2, Potency: 700, Range: 30},
		{ID: AbilityAegis, Name: "Aegis", MinLevel: 66, Slot: SlotSecondary, Kind: KindMitigation, Cast: CastInstant, Recharge: 30 * time.Second, Charges: 1, Potency: 0, Range: 30},
		{ID: AbilityOvergrowth, Name: "Overgrowth", MinLevel: 76, Slot: SlotPrimary, Kind: KindHealArea, Cast: CastInstant, GaugeCost: 1, Potency: 350, Radius: 20},
		{ID: AbilityFullbloom, Name: "Fullbloom", MinLevel: 80, Slot: SlotPrimary, Kind: KindDamageArea, Cast: CastInstant, ConsumesSeeds: true, Potency: 1240, Radius: 8, Range: 25},
	})
}

func newCatalog(abilities []Ability) *Catalog {
	c := &Catalog{
		ordered: abilities,
		byID:    make(map[AbilityID]Ability, len(abilities)),
	}
	for _, a := range abilities {
		c.byID[a.ID] = a
	}
	return c
}

func (c *Catalog) ByID(id AbilityID) (Ability, bool) {
	a, ok := c.byID[id]
	return a, ok
}

func (c *Catalog) MustByID(id AbilityID) Ability {
	a, ok := c.byID[id]
	if !ok {
		panic("combat: unknown ability " + string(id))
	}
	return a
}

// Ordered returns the kit in declaration order. Callers must not mutate it.
func (c *Catalog) Ordered() []Ability {
	return c.ordered
}

// HealCandidates lists the healing abilities usable in the given slot, in
// declaration order. Area selects ground/party heals, otherwise single-target
// heals and regens.
func (c *Catalog) HealCandidates(slot SlotType, area bool) []Ability {
	var out []Ability
	for _, a := range c.ordered {
		if a.Slot != slot || !a.IsHealing() {
			continue
		}
		if area != (a.Kind == KindHealArea) {
			continue
		}
		out = append(out, a)
	}
	return out
}
