package strategy

import (
	"triage/internal/app/evaluate"
	"triage/internal/domain/combat"
)

// Tiered picks heals by fixed precedence: the gauge heal when the policy
// says to spend, the regen below a rate-tuned threshold, then direct heals.
// A tier is only tried when every tier above it produced nothing, and every
// skipped tier leaves its reason in the diagnostics.
type Tiered struct{}

func (Tiered) SelectSingle(ev *evaluate.Evaluator, in Inputs) (Pick, combat.RejectReason) {
	if !in.HasTarget {
		return Pick{}, combat.ReasonNoTarget
	}
	if in.Slot == combat.SlotSecondary {
		return tieredSecondary(ev, in)
	}

	// Tier 1: gauge heal, policy-gated. The global conservation flag holds
	// the tier regardless of what the policy would decide.
	bloom := in.Kit.MustByID(combat.AbilityBloom)
	if in.Profile.Conserve || !combat.ShouldSpendPrimary(in.spendInput()) {
		ev.TrackRejected(bloom, combat.PredictHeal(bloom.Potency, in.Stats), combat.ReasonHeldByPolicy)
	} else if res := ev.EvaluateSingleTarget(in.evalInput(bloom, in.MissingHealth)); res.Valid {
		return pickSingle(ev, in, res), combat.ReasonNone
	}

	// Tier 2: regen, below the dynamic threshold and not already running.
	verdure := in.Kit.MustByID(combat.AbilityVerdure)
	threshold := regenThreshold(in.DamageRate, in.Profile.Regen)
	switch {
	case in.Target.RegenRemaining > in.Profile.Regen.RefreshWindow:
		ev.TrackRejected(verdure, combat.PredictHeal(verdure.Potency, in.Stats), combat.ReasonEffectActive)
	case in.Target.HealthPct() > threshold:
		ev.TrackRejected(verdure, combat.PredictHeal(verdure.Potency, in.Stats), combat.ReasonThresholdNotMet)
	default:
		if res := ev.EvaluateSingleTarget(in.evalInput(verdure, in.MissingHealth)); res.Valid {
			return pickSingle(ev, in, res), combat.ReasonNone
		}
	}

	// Tier 3: direct heals. Surge makes the strong heal free, so it goes
	// first; conservation fishes for the proc with the cheap heal instead.
	var order []combat.AbilityID
	switch {
	case in.Surge:
		order = []combat.AbilityID{combat.AbilityRemedy, combat.AbilityMend}
	case in.Profile.Conserve:
		order = []combat.AbilityID{combat.AbilityMend, combat.AbilityRemedy}
	default:
		order = []combat.AbilityID{combat.AbilityRemedy, combat.AbilityMend}
	}
	lastReason := combat.ReasonNoTarget
	for _, id := range order {
		a := in.Kit.MustByID(id)
		res := ev.EvaluateSingleTarget(in.evalInput(a, in.MissingHealth))
		if res.Valid {
			return pickSingle(ev, in, res), combat.ReasonNone
		}
		lastReason = res.Reason
	}
	return Pick{}, lastReason
}

// tieredSecondary covers the weave pass: one emergency direct heal when the
// target has dropped far enough.
func tieredSecondary(ev *evaluate.Evaluator, in Inputs) (Pick, combat.RejectReason) {
	tend := in.Kit.MustByID(combat.AbilityTend)
	if in.Target.HealthPct() > in.Profile.EmergencyHealthPct {
		ev.TrackRejected(tend, combat.PredictHeal(tend.Potency, in.Stats), combat.ReasonThresholdNotMet)
		return Pick{}, combat.ReasonThresholdNotMet
	}
	res := ev.EvaluateSingleTarget(in.evalInput(tend, in.MissingHealth))
	if !res.Valid {
		return Pick{}, res.Reason
	}
	return pickSingle(ev, in, res), combat.ReasonNone
}

func (Tiered) SelectArea(ev *evaluate.Evaluator, in Inputs) (Pick, combat.RejectReason) {
	if in.Slot != combat.SlotPrimary {
		return Pick{}, combat.ReasonNoTarget
	}
	overgrowth := in.Kit.MustByID(combat.AbilityOvergrowth)
	radiance := in.Kit.MustByID(combat.AbilityRadiance)

	if in.InjuredInArea < in.Profile.AoEMinTargets {
		ev.TrackRejected(overgrowth, combat.PredictHeal(overgrowth.Potency, in.Stats), combat.ReasonThresholdNotMet)
		ev.TrackRejected(radiance, combat.PredictHeal(radiance.Potency, in.Stats), combat.ReasonThresholdNotMet)
		return Pick{}, combat.ReasonThresholdNotMet
	}

	if in.Profile.Conserve || !combat.ShouldSpendPrimaryArea(in.spendInput()) {
		ev.TrackRejected(overgrowth, combat.PredictHeal(overgrowth.Potency, in.Stats), combat.ReasonHeldByPolicy)
	} else if res := ev.EvaluateArea(in.evalInput(overgrowth, 0)); res.Valid {
		return pickArea(ev, in, res), combat.ReasonNone
	}

	res := ev.EvaluateArea(in.evalInput(radiance, 0))
	if !res.Valid {
		return Pick{}, res.Reason
	}
	return pickArea(ev, in, res), combat.ReasonNone
}

func pickSingle(ev *evaluate.Evaluator, in Inputs, res evaluate.Result) Pick {
	ev.MarkAsSelected(res.Ability.ID)
	return Pick{Ability: res.Ability, TargetID: in.Target.ID, Amount: res.Amount}
}

func pickArea(ev *evaluate.Evaluator, in Inputs, res evaluate.Result) Pick {
	ev.MarkAsSelected(res.Ability.ID)
	return Pick{Ability: res.Ability, Amount: res.Amount, Anchor: in.AgentPos}
}
