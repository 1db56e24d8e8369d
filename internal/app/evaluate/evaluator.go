package evaluate

import (
	"triage/internal/app/ports"
	"triage/internal/app/profile"
	"triage/internal/domain/combat"
)

// Input is everything one evaluation needs. The evaluator itself carries no
// tick state besides the diagnostic ring; callers hand in a fresh view every
// call.
type Input struct {
	Ability combat.Ability
	Level   int
	Stats   combat.Stats
	Profile profile.Snapshot
	Status  ports.ActionStatusProvider

	MP     int
	Gauge  combat.GaugePair
	Surge  bool
	Moving bool

	TargetID      string
	MissingHealth int
}

type Result struct {
	Ability combat.Ability
	Valid   bool
	Amount  int
	Reason  combat.RejectReason
}

// Evaluator runs the fixed validation gates over heal candidates and keeps a
// bounded diagnostic ring of every attempt, pass or fail.
type Evaluator struct {
	cap  int
	seq  int
	ring []ports.HealCandidate
}

func New(capacity int) *Evaluator {
	if capacity < 1 {
		capacity = 64
	}
	return &Evaluator{cap: capacity}
}

// EvaluateSingleTarget runs the gates in their load-bearing order: unlock,
// config, availability, overheal. The first failing gate decides the reason.
func (e *Evaluator) EvaluateSingleTarget(in Input) Result {
	res := e.runGates(in, true)
	e.append(res)
	return res
}

// EvaluateArea is the area variant: same gates, no overheal gate.
func (e *Evaluator) EvaluateArea(in Input) Result {
	res := e.runGates(in, false)
	e.append(res)
	return res
}

func (e *Evaluator) runGates(in Input, singleTarget bool) Result {
	a := in.Ability
	amount := combat.PredictHeal(a.Potency, in.Stats)

	if in.Level < a.MinLevel {
		return Result{Ability: a, Amount: amount, Reason: combat.ReasonLevelTooLow}
	}
	if !in.Profile.AbilityEnabled(a.ID) {
		return Result{Ability: a, Amount: amount, Reason: combat.ReasonDisabled}
	}
	if reason := availability(in); reason != combat.ReasonNone {
		return Result{Ability: a, Amount: amount, Reason: reason}
	}
	if singleTarget && in.MissingHealth > 0 && a.Potency > 0 {
		factor := in.Profile.OverhealFactor
		if factor < 1 {
			factor = combat.DefaultOverhealFactor
		}
		if float64(amount) > float64(in.MissingHealth)*factor {
			return Result{Ability: a, Amount: amount, Reason: combat.ReasonWouldOverheal}
		}
	}
	return Result{Ability: a, Valid: true, Amount: amount}
}

// availability folds every "not castable right now" condition into the third
// gate: recharge and charges report as on-cooldown, missing MP or gauge as
// no-resource. A timed cast while moving cannot start and counts as not
// ready.
func availability(in Input) combat.RejectReason {
	a := in.Ability
	if in.Status != nil {
		if !in.Status.IsReady(a.ID) {
			return combat.ReasonOnCooldown
		}
		if a.Slot == combat.SlotSecondary && a.Charges > 0 && in.Status.Charges(a.ID) <= 0 {
			return combat.ReasonOnCooldown
		}
	}
	if a.Cast == combat.CastTimed && in.Moving {
		return combat.ReasonOnCooldown
	}
	if a.MPCost > 0 && !a.FreeToCast(in.Surge) && in.MP < a.MPCost {
		return combat.ReasonNoResource
	}
	if a.GaugeCost > in.Gauge.Primary {
		return combat.ReasonNoResource
	}
	if a.ConsumesSeeds && in.Gauge.Secondary < combat.SecondaryGaugeCap {
		return combat.ReasonNoResource
	}
	return combat.ReasonNone
}

// TrackRejected records a candidate the caller dismissed before the gates
// ran, e.g. a policy hold or a threshold miss.
func (e *Evaluator) TrackRejected(ability combat.Ability, amount int, reason combat.RejectReason) {
	e.append(Result{Ability: ability, Amount: amount, Reason: reason})
}

// MarkAsSelected flips the most recent entry for the ability to selected and
// clears the flag everywhere else, so exactly one entry ever carries it.
func (e *Evaluator) MarkAsSelected(id combat.AbilityID) {
	last := -1
	for i := range e.ring {
		e.ring[i].Selected = false
		if e.ring[i].Ability == id {
			last = i
		}
	}
	if last >= 0 {
		e.ring[last].Selected = true
	}
}

// ClearSelected drops the selected flag from the whole ring. Callers use it
// when the host refuses a cast after selection, so diagnostics never show a
// cast that did not happen as selected.
func (e *Evaluator) ClearSelected() {
	for i := range e.ring {
		e.ring[i].Selected = false
	}
}

func (e *Evaluator) ClearCandidates() {
	e.ring = e.ring[:0]
	e.seq = 0
}

// GetCandidatesCopy returns the ring oldest-first. The copy is the caller's.
func (e *Evaluator) GetCandidatesCopy() []ports.HealCandidate {
	out := make([]ports.HealCandidate, len(e.ring))
	copy(out, e.ring)
	return out
}

func (e *Evaluator) append(res Result) {
	entry := ports.HealCandidate{
		Seq:     e.seq,
		Ability: res.Ability.ID,
		Amount:  res.Amount,
		Valid:   res.Valid,
		Reason:  res.Reason,
	}
	e.seq++
	if len(e.ring) >= e.cap {
		copy(e.ring, e.ring[1:])
		e.ring = e.ring[:len(e.ring)-1]
	}
	e.ring = append(e.ring, entry)
}
