package strategy

import (
	"triage/internal/app/evaluate"
	"triage/internal/domain/combat"
)

// Scored evaluates every heal the pass slot could structurally cast and
// keeps the highest weighted score. Ties resolve to the earlier catalog
// entry: the comparison is strictly greater-than over candidates walked in
// declaration order.
type Scored struct{}

func (Scored) SelectSingle(ev *evaluate.Evaluator, in Inputs) (Pick, combat.RejectReason) {
	if !in.HasTarget {
		return Pick{}, combat.ReasonNoTarget
	}
	var (
		best      evaluate.Result
		bestScore float64
		found     bool
	)
	for _, a := range in.Kit.HealCandidates(in.Slot, false) {
		res := ev.EvaluateSingleTarget(in.evalInput(a, in.MissingHealth))
		if !res.Valid {
			continue
		}
		s := score(in, a, res.Amount, in.MissingHealth)
		if !found || s > bestScore {
			best, bestScore, found = res, s, true
		}
	}
	if !found {
		return Pick{}, combat.ReasonNoResource
	}
	return pickSingle(ev, in, best), combat.ReasonNone
}

func (Scored) SelectArea(ev *evaluate.Evaluator, in Inputs) (Pick, combat.RejectReason) {
	candidates := in.Kit.HealCandidates(in.Slot, true)
	if in.InjuredInArea < in.Profile.AoEMinTargets {
		for _, a := range candidates {
			ev.TrackRejected(a, combat.PredictHeal(a.Potency, in.Stats), combat.ReasonThresholdNotMet)
		}
		return Pick{}, combat.ReasonThresholdNotMet
	}
	var (
		best      evaluate.Result
		bestScore float64
		found     bool
	)
	for _, a := range candidates {
		res := ev.EvaluateArea(in.evalInput(a, 0))
		if !res.Valid {
			continue
		}
		s := score(in, a, res.Amount, 0)
		if !found || s > bestScore {
			best, bestScore, found = res, s, true
		}
	}
	if !found {
		return Pick{}, combat.ReasonNoResource
	}
	return pickArea(ev, in, best), combat.ReasonNone
}

func score(in Inputs, a combat.Ability, amount, missing int) float64 {
	w := in.Profile.Weights

	potencyEff := clamp01(float64(amount) / float64(w.AssumedMaxHeal))

	costEff := 1.0
	if !a.FreeToCast(in.Surge) {
		costEff = clamp01(1 - float64(a.MPCost)/float64(w.AssumedMaxCost))
	}

	resourceBenefit := 0.0
	if a.SpendsGauge() {
		resourceBenefit = float64(combat.SecondaryGaugeCap-in.Gauge.Secondary) / float64(combat.SecondaryGaugeCap)
	}

	procBonus := 0.0
	if a.SurgeDiscounts && in.Surge {
		procBonus = 1
	}

	slotBonus := 0.0
	if a.Slot == combat.SlotSecondary && in.WeaveWindow {
		slotBonus = 1
	}

	return w.Potency*potencyEff +
		w.Cost*costEff +
		w.Resource*resourceBenefit +
		w.Proc*procBonus +
		w.Slot*slotBonus -
		w.Overheal*overhealPenalty(amount, missing, in.Profile.OverhealFactor)
}

// overhealPenalty is 0 while the amount stays inside factor x missing, then
// grows linearly in the excess and caps at 1. A full-health target turns any
// positive amount into the full penalty.
func overhealPenalty(amount, missing int, factor float64) float64 {
	if amount <= 0 {
		return 0
	}
	if missing <= 0 {
		return 1
	}
	limit := float64(missing) * factor
	if float64(amount) <= limit {
		return 0
	}
	return clamp01((float64(amount) - limit) / limit)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
