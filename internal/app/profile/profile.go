package profile

import (
	"fmt"
	"time"

	"triage/internal/domain/combat"
)

type Strategy string

const (
	StrategyTiered Strategy = "tiered"
	StrategyScored Strategy = "scored"
)

type RegenTuning struct {
	ThresholdHigh    float64       `json:"threshold_high"`
	ThresholdDefault float64       `json:"threshold_default"`
	ThresholdLow     float64       `json:"threshold_low"`
	RateHigh         float64       `json:"rate_high"`
	RateLow          float64       `json:"rate_low"`
	RefreshWindow    time.Duration `json:"refresh_window"`
}

type ScoreWeights struct {
	Potency  float64 `json:"potency"`
	Cost     float64 `json:"cost"`
	Resource float64 `json:"resource"`
	Proc     float64 `json:"proc"`
	Slot     float64 `json:"slot"`
	Overheal float64 `json:"overheal"`

	AssumedMaxHeal int `json:"assumed_max_heal"`
	AssumedMaxCost int `json:"assumed_max_cost"`
}

type MovementTuning struct {
	ThresholdSq float64 `json:"threshold_sq"`
	GraceTicks  int     `json:"grace_ticks"`
}

// Snapshot is the validated, engine-facing profile. The engine asks its
// provider for a fresh one every tick.
type Snapshot struct {
	Enabled            bool             `json:"enabled"`
	Strategy           Strategy         `json:"strategy"`
	HealPriority       int              `json:"heal_priority"`
	GaugeMode          combat.GaugeMode `json:"gauge_mode"`
	Conserve           bool             `json:"conserve"`
	AggressiveFlush    bool             `json:"aggressive_flush"`
	OverhealFactor     float64          `json:"overheal_factor"`
	EmergencyHealthPct float64          `json:"emergency_health_pct"`
	AoEMinTargets      int              `json:"aoe_min_targets"`
	Regen              RegenTuning      `json:"regen"`
	Weights            ScoreWeights     `json:"weights"`
	Movement           MovementTuning   `json:"movement"`
	DiagnosticsCap     int              `json:"diagnostics_cap"`
	LogThrottle        time.Duration    `json:"log_throttle"`

	disabled map[combat.AbilityID]bool
}

func Default() Snapshot {
	return Snapshot{
		Enabled:            true,
		Strategy:           StrategyTiered,
		HealPriority:       25,
		GaugeMode:          combat.GaugeModeBalanced,
		OverhealFactor:     combat.DefaultOverhealFactor,
		EmergencyHealthPct: combat.EmergencyHealthPct,
		AoEMinTargets:      3,
		Regen: RegenTuning{
			ThresholdHigh:    combat.RegenThresholdHigh,
			ThresholdDefault: combat.RegenThresholdDefault,
			ThresholdLow:     combat.RegenThresholdLow,
			RateHigh:         combat.DamageRateHigh,
			RateLow:          combat.DamageRateLow,
			RefreshWindow:    combat.RegenRefreshWindow,
		},
		Weights: ScoreWeights{
			Potency:  1.0,
			Cost:     0.6,
			Resource: 0.5,
			Proc:     0.8,
			Slot:     0.4,
			Overheal: 2.0,

			AssumedMaxHeal: 2500,
			AssumedMaxCost: 2400,
		},
		Movement: MovementTuning{
			ThresholdSq: 0.04,
			GraceTicks:  6,
		},
		DiagnosticsCap: 64,
		LogThrottle:    5 * time.Second,
	}
}

func (s Snapshot) AbilityEnabled(id combat.AbilityID) bool {
	return !s.disabled[id]
}

func (s Snapshot) DisabledAbilities() []combat.AbilityID {
	out := make([]combat.AbilityID, 0, len(s.disabled))
	for _, a := range combat.DefaultKit().Ordered() {
		if s.disabled[a.ID] {
			out = append(out, a.ID)
		}
	}
	return out
}

// WithDisabled returns a copy with the given abilities toggled off. Unknown
// ids are the caller's problem; Validate catches them.
func (s Snapshot) WithDisabled(ids ...combat.AbilityID) Snapshot {
	disabled := make(map[combat.AbilityID]bool, len(s.disabled)+len(ids))
	for id, off := range s.disabled {
		disabled[id] = off
	}
	for _, id := range ids {
		disabled[id] = true
	}
	s.disabled = disabled
	return s
}

func (s Snapshot) Validate() error {
	switch s.Strategy {
	case StrategyTiered, StrategyScored:
	default:
		return fmt.Errorf("profile: unknown strategy %q", s.Strategy)
	}
	switch s.GaugeMode {
	case combat.GaugeModeAggressive, combat.GaugeModeBalanced, combat.GaugeModeConservative, combat.GaugeModeDisabled:
	default:
		return fmt.Errorf("profile: unknown gauge_mode %q", s.GaugeMode)
	}
	if s.OverhealFactor < 1 {
		return fmt.Errorf("profile: overheal_factor must be >= 1, got %v", s.OverhealFactor)
	}
	if s.EmergencyHealthPct <= 0 || s.EmergencyHealthPct > 1 {
		return fmt.Errorf("profile: emergency_health_pct must be in (0,1], got %v", s.EmergencyHealthPct)
	}
	if s.AoEMinTargets < 1 {
		return fmt.Errorf("profile: aoe_min_targets must be >= 1, got %d", s.AoEMinTargets)
	}
	r := s.Regen
	if !(r.ThresholdLow <= r.ThresholdDefault && r.ThresholdDefault <= r.ThresholdHigh) {
		return fmt.Errorf("profile: regen thresholds must be ordered low <= default <= high")
	}
	if r.RateLow >= r.RateHigh {
		return fmt.Errorf("profile: regen rate_low must be below rate_high")
	}
	w := s.Weights
	for name, v := range map[string]float64{
		"potency": w.Potency, "cost": w.Cost, "resource": w.Resource,
		"proc": w.Proc, "slot": w.Slot, "overheal": w.Overheal,
	} {
		if v < 0 {
			return fmt.Errorf("profile: weight %s must not be negative, got %v", name, v)
		}
	}
	if w.AssumedMaxHeal <= 0 || w.AssumedMaxCost <= 0 {
		return fmt.Errorf("profile: assumed_max_heal and assumed_max_cost must be positive")
	}
	if s.DiagnosticsCap < 8 {
		return fmt.Errorf("profile: diagnostics_cap must be >= 8, got %d", s.DiagnosticsCap)
	}
	if s.Movement.GraceTicks < 0 {
		return fmt.Errorf("profile: movement grace_ticks must not be negative")
	}
	if s.Movement.ThresholdSq <= 0 {
		return fmt.Errorf("profile: movement threshold_sq must be positive")
	}
	if s.LogThrottle <= 0 {
		return fmt.Errorf("profile: log_throttle must be positive")
	}
	kit := combat.DefaultKit()
	for id := range s.disabled {
		if _, ok := kit.ByID(id); !ok {
			return fmt.Errorf("profile: unknown ability %q in disabled list", id)
		}
	}
	return nil
}
