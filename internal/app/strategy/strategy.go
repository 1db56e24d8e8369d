package strategy

import (
	"time"

	"triage/internal/app/evaluate"
	"triage/internal/app/ports"
	"triage/internal/app/profile"
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

// Inputs is the per-tick view a selection strategy decides on. The heal
// module assembles it once per pass; strategies hold no state of their own.
type Inputs struct {
	Kit     *combat.Catalog
	Profile profile.Snapshot
	Status  ports.ActionStatusProvider

	Level  int
	Stats  combat.Stats
	MP     int
	Gauge  combat.GaugePair
	Surge  bool
	Moving bool

	Slot           combat.SlotType
	WeaveWindow    bool
	CombatDuration time.Duration

	Target        party.Ally
	HasTarget     bool
	MissingHealth int
	DamageRate    float64

	AgentPos      party.Point
	InjuredInArea int
}

// Pick is a selection outcome. A zero Pick (None) means "no cast this tick";
// the accompanying reason says why, and that is a normal result, not an
// error.
type Pick struct {
	Ability  combat.Ability
	TargetID string
	Amount   int
	Anchor   party.Point
}

func (p Pick) None() bool {
	return p.Ability.ID == ""
}

type Strategy interface {
	SelectSingle(ev *evaluate.Evaluator, in Inputs) (Pick, combat.RejectReason)
	SelectArea(ev *evaluate.Evaluator, in Inputs) (Pick, combat.RejectReason)
}

// ForProfile resolves the configured strategy. Unknown values fall back to
// tiered, the validated default.
func ForProfile(p profile.Snapshot) Strategy {
	if p.Strategy == profile.StrategyScored {
		return Scored{}
	}
	return Tiered{}
}

func (in Inputs) evalInput(a combat.Ability, missing int) evaluate.Input {
	return evaluate.Input{
		Ability:       a,
		Level:         in.Level,
		Stats:         in.Stats,
		Profile:       in.Profile,
		Status:        in.Status,
		MP:            in.MP,
		Gauge:         in.Gauge,
		Surge:         in.Surge,
		Moving:        in.Moving,
		TargetID:      in.Target.ID,
		MissingHealth: missing,
	}
}

func (in Inputs) spendInput() combat.SpendInput {
	return combat.SpendInput{
		Primary:         in.Gauge.Primary,
		Secondary:       in.Gauge.Secondary,
		Mode:            in.Profile.GaugeMode,
		TargetHealthPct: in.Target.HealthPct(),
		CombatDuration:  in.CombatDuration,
		AggressiveFlush: in.Profile.AggressiveFlush,
	}
}

// regenThreshold tunes how early the regen tier applies from the target's
// recent damage rate: heavy incoming damage raises it, a quiet target lowers
// it.
func regenThreshold(rate float64, t profile.RegenTuning) float64 {
	switch {
	case rate >= t.RateHigh:
		return t.ThresholdHigh
	case rate <= t.RateLow:
		return t.ThresholdLow
	default:
		return t.ThresholdDefault
	}
}
