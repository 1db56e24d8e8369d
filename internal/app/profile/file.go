package profile

import (
	"fmt"
	"time"

	"triage/internal/domain/combat"
)

// File is the on-disk YAML profile. Every field is optional; unset fields
// keep their defaults. Durations are plain seconds so the file stays
// schema-friendly. cmd/schemagen reflects this struct into a JSON Schema.
type File struct {
	Enabled            *bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Strategy           string   `yaml:"strategy,omitempty" json:"strategy,omitempty" jsonschema:"enum=tiered,enum=scored"`
	HealPriority       *int     `yaml:"heal_priority,omitempty" json:"heal_priority,omitempty"`
	GaugeMode          string   `yaml:"gauge_mode,omitempty" json:"gauge_mode,omitempty" jsonschema:"enum=aggressive,enum=balanced,enum=conservative,enum=disabled"`
	Conserve           *bool    `yaml:"conserve,omitempty" json:"conserve,omitempty"`
	AggressiveFlush    *bool    `yaml:"aggressive_flush,omitempty" json:"aggressive_flush,omitempty"`
	OverhealFactor     *float64 `yaml:"overheal_factor,omitempty" json:"overheal_factor,omitempty" jsonschema:"minimum=1"`
	EmergencyHealthPct *float64 `yaml:"emergency_health_pct,omitempty" json:"emergency_health_pct,omitempty"`
	AoEMinTargets      *int     `yaml:"aoe_min_targets,omitempty" json:"aoe_min_targets,omitempty" jsonschema:"minimum=1"`
	DisabledAbilities  []string `yaml:"disabled_abilities,omitempty" json:"disabled_abilities,omitempty"`

	Regen *struct {
		ThresholdHigh        *float64 `yaml:"threshold_high,omitempty" json:"threshold_high,omitempty"`
		ThresholdDefault     *float64 `yaml:"threshold_default,omitempty" json:"threshold_default,omitempty"`
		ThresholdLow         *float64 `yaml:"threshold_low,omitempty" json:"threshold_low,omitempty"`
		RateHigh             *float64 `yaml:"rate_high,omitempty" json:"rate_high,omitempty"`
		RateLow              *float64 `yaml:"rate_low,omitempty" json:"rate_low,omitempty"`
		RefreshWindowSeconds *float64 `yaml:"refresh_window_seconds,omitempty" json:"refresh_window_seconds,omitempty"`
	} `yaml:"regen,omitempty" json:"regen,omitempty"`

	Weights *struct {
		Potency        *float64 `yaml:"potency,omitempty" json:"potency,omitempty"`
		Cost           *float64 `yaml:"cost,omitempty" json:"cost,omitempty"`
		Resource       *float64 `yaml:"resource,omitempty" json:"resource,omitempty"`
		Proc           *float64 `yaml:"proc,omitempty" json:"proc,omitempty"`
		Slot           *float64 `yaml:"slot,omitempty" json:"slot,omitempty"`
		Overheal       *float64 `yaml:"overheal,omitempty" json:"overheal,omitempty"`
		AssumedMaxHeal *int     `yaml:"assumed_max_heal,omitempty" json:"assumed_max_heal,omitempty"`
		AssumedMaxCost *int     `yaml:"assumed_max_cost,omitempty" json:"assumed_max_cost,omitempty"`
	} `yaml:"weights,omitempty" json:"weights,omitempty"`

	Movement *struct {
		ThresholdSq *float64 `yaml:"threshold_sq,omitempty" json:"threshold_sq,omitempty"`
		GraceTicks  *int     `yaml:"grace_ticks,omitempty" json:"grace_ticks,omitempty"`
	} `yaml:"movement,omitempty" json:"movement,omitempty"`

	DiagnosticsCap     *int     `yaml:"diagnostics_cap,omitempty" json:"diagnostics_cap,omitempty" jsonschema:"minimum=8"`
	LogThrottleSeconds *float64 `yaml:"log_throttle_seconds,omitempty" json:"log_throttle_seconds,omitempty"`
}

// Apply overlays the file onto base and validates the result.
func (f File) Apply(base Snapshot) (Snapshot, error) {
	out := base

	if f.Enabled != nil {
		out.Enabled = *f.Enabled
	}
	if f.Strategy != "" {
		out.Strategy = Strategy(f.Strategy)
	}
	if f.HealPriority != nil {
		out.HealPriority = *f.HealPriority
	}
	if f.GaugeMode != "" {
		out.GaugeMode = combat.GaugeMode(f.GaugeMode)
	}
	if f.Conserve != nil {
		out.Conserve = *f.Conserve
	}
	if f.AggressiveFlush != nil {
		out.AggressiveFlush = *f.AggressiveFlush
	}
	if f.OverhealFactor != nil {
		out.OverhealFactor = *f.OverhealFactor
	}
	if f.EmergencyHealthPct != nil {
		out.EmergencyHealthPct = *f.EmergencyHealthPct
	}
	if f.AoEMinTargets != nil {
		out.AoEMinTargets = *f.AoEMinTargets
	}
	for _, raw := range f.DisabledAbilities {
		out = out.WithDisabled(combat.AbilityID(raw))
	}

	if r := f.Regen; r != nil {
		if r.ThresholdHigh != nil {
			out.Regen.ThresholdHigh = *r.ThresholdHigh
		}
		if r.ThresholdDefault != nil {
			out.Regen.ThresholdDefault = *r.ThresholdDefault
		}
		if r.ThresholdLow != nil {
			out.Regen.ThresholdLow = *r.ThresholdLow
		}
		if r.RateHigh != nil {
			out.Regen.RateHigh = *r.RateHigh
		}
		if r.RateLow != nil {
			out.Regen.RateLow = *r.RateLow
		}
		if r.RefreshWindowSeconds != nil {
			out.Regen.RefreshWindow = secondsToDuration(*r.RefreshWindowSeconds)
		}
	}

	if w := f.Weights; w != nil {
		if w.Potency != nil {
			out.Weights.Potency = *w.Potency
		}
		if w.Cost != nil {
			out.Weights.Cost = *w.Cost
		}
		if w.Resource != nil {
			out.Weights.Resource = *w.Resource
		}
		if w.Proc != nil {
			out.Weights.Proc = *w.Proc
		}
		if w.Slot != nil {
			out.Weights.Slot = *w.Slot
		}
		if w.Overheal != nil {
			out.Weights.Overheal = *w.Overheal
		}
		if w.AssumedMaxHeal != nil {
			out.Weights.AssumedMaxHeal = *w.AssumedMaxHeal
		}
		if w.AssumedMaxCost != nil {
			out.Weights.AssumedMaxCost = *w.AssumedMaxCost
		}
	}

	if m := f.Movement; m != nil {
		if m.ThresholdSq != nil {
			out.Movement.ThresholdSq = *m.ThresholdSq
		}
		if m.GraceTicks != nil {
			out.Movement.GraceTicks = *m.GraceTicks
		}
	}

	if f.DiagnosticsCap != nil {
		out.DiagnosticsCap = *f.DiagnosticsCap
	}
	if f.LogThrottleSeconds != nil {
		out.LogThrottle = secondsToDuration(*f.LogThrottleSeconds)
	}

	if err := out.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("apply profile file: %w", err)
	}
	return out, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
