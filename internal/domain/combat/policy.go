package combat

import "time"

type GaugeMode string

const (
	GaugeModeAggressive   GaugeMode = "aggressive"
	GaugeModeBalanced     GaugeMode = "balanced"
	GaugeModeConservative GaugeMode = "conservative"
	GaugeModeDisabled     GaugeMode = "disabled"
)

// SpendInput is the complete view the gauge policy decides on. The policy is
// pure: no clocks, no I/O, no hidden state.
type SpendInput struct {
	Primary         int
	Secondary       int
	Mode            GaugeMode
	TargetHealthPct float64
	CombatDuration  time.Duration
	AggressiveFlush bool
	HealthThreshold float64
}

func (in SpendInput) healthThreshold() float64 {
	if in.HealthThreshold <= 0 {
		return ConservativeHealthThreshold
	}
	return in.HealthThreshold
}

// ShouldSpendPrimary decides whether a Blossom should be spent on a
// single-target heal this tick. Rules apply first-match-wins:
//
//  1. Long encounters flush: past the flush horizon with 2+ Seeds and a
//     Blossom available, spend.
//  2. A full Seed gauge with a Blossom available always spends; growth can no
//     longer be wasted.
//  3. The aggressive-flush flag spends from 2 Seeds up.
//  4. Otherwise the configured mode decides.
func ShouldSpendPrimary(in SpendInput) bool {
	if in.CombatDuration > EncounterFlushAfter && in.Secondary >= 2 && in.Primary > 0 {
		return true
	}
	if in.Secondary == SecondaryGaugeCap && in.Primary > 0 {
		return true
	}
	if in.AggressiveFlush && in.Secondary >= 2 {
		return true
	}
	switch in.Mode {
	case GaugeModeAggressive:
		return true
	case GaugeModeBalanced:
		return in.Secondary < SecondaryGaugeCap
	case GaugeModeConservative:
		return in.Secondary < SecondaryGaugeCap && in.TargetHealthPct < in.healthThreshold()
	default:
		return false
	}
}

// ShouldSpendPrimaryArea is the area variant: identical rules with the target
// health term dropped, since there is no single target to measure.
func ShouldSpendPrimaryArea(in SpendInput) bool {
	if in.CombatDuration > EncounterFlushAfter && in.Secondary >= 2 && in.Primary > 0 {
		return true
	}
	if in.Secondary == SecondaryGaugeCap && in.Primary > 0 {
		return true
	}
	if in.AggressiveFlush && in.Secondary >= 2 {
		return true
	}
	switch in.Mode {
	case GaugeModeAggressive:
		return true
	case GaugeModeBalanced, GaugeModeConservative:
		return in.Secondary < SecondaryGaugeCap
	default:
		return false
	}
}
