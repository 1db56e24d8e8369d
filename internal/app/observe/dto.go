package observe

import (
	"time"

	"triage/internal/app/engine"
	"triage/internal/app/ports"
	"triage/internal/app/profile"
	"triage/internal/domain/combat"
)

type StatusResponse struct {
	Tick           uint64                `json:"tick"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Disabled       bool                  `json:"disabled"`
	Moving         bool                  `json:"moving"`
	InCombat       bool                  `json:"in_combat"`
	CombatDuration float64               `json:"combat_duration_seconds"`
	Gauge          combat.GaugePair      `json:"gauge"`
	Strategy       profile.Strategy      `json:"strategy"`
	GaugeMode      combat.GaugeMode      `json:"gauge_mode"`
	Actions        []engine.ActionRecord `json:"actions"`
	Reserved       []string              `json:"reserved,omitempty"`
	Fault          string                `json:"fault,omitempty"`
}

type CandidatesResponse struct {
	Tick       uint64                `json:"tick"`
	Candidates []ports.HealCandidate `json:"candidates"`
}
