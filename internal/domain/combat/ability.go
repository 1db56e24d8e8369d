package combat

import "time"

type AbilityID string

type SlotType string

const (
	SlotPrimary   SlotType = "primary"
	SlotSecondary SlotType = "secondary"
)

type CastKind string

const (
	CastInstant CastKind = "instant"
	CastTimed   CastKind = "cast"
)

type AbilityKind string

const (
	KindHeal           AbilityKind = "heal"
	KindHealArea       AbilityKind = "heal_area"
	KindRegen          AbilityKind = "regen"
	KindMitigation     AbilityKind = "mitigation"
	KindMitigationArea AbilityKind = "mitigation_area"
	KindBuff           AbilityKind = "buff"
	KindDamage         AbilityKind = "damage"
	KindDamageArea     AbilityKind = "damage_area"
	KindRevive         AbilityKind = "revive"
)

type Ability struct {
	ID       AbilityID   `json:"id"`
	Name     string      `json:"name"`
	MinLevel int         `json:"min_level"`
	Slot     SlotType    `json:"slot"`
	Kind     AbilityKind `json:"kind"`
	Cast     CastKind    `json:"cast"`

	CastTime time.Duration `json:"cast_time,omitempty"`
	MPCost   int           `json:"mp_cost"`

	// Gauge coupling: GaugeCost spends Blossoms (growing one Seed each),
	// ConsumesSeeds drains the full Seed gauge instead.
	GaugeCost     int  `json:"gauge_cost,omitempty"`
	ConsumesSeeds bool `json:"consumes_seeds,omitempty"`

	Potency     int           `json:"potency"`
	TickPotency int           `json:"tick_potency,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`

	// Recharge and Charges only apply to secondary-slot abilities; the
	// primary slot runs on the shared recharge timer.
	Recharge time.Duration `json:"recharge,omitempty"`
	Charges  int           `json:"charges,omitempty"`

	Range  float64 `json:"range,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	GrantsSurge    bool `json:"grants_surge,omitempty"`
	SurgeDiscounts bool `json:"surge_discounts,omitempty"`
}

func (a Ability) SpendsGauge() bool {
	return a.GaugeCost > 0
}

// FreeToCast reports whether the cast costs no MP this tick, counting an
// active Surge proc for abilities it discounts.
func (a Ability) FreeToCast(surgeActive bool) bool {
	if a.MPCost == 0 {
		return true
	}
	return a.SurgeDiscounts && surgeActive
}

func (a Ability) IsHealing() bool {
	switch a.Kind {
	case KindHeal, KindHealArea, KindRegen:
		return true
	default:
		return false
	}
}
