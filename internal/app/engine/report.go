package engine

import (
	"time"

	"triage/internal/app/ports"
	"triage/internal/domain/combat"
)

// ActionRecord is one executed cast, as the modules saw it.
type ActionRecord struct {
	Module   string           `json:"module"`
	Slot     combat.SlotType  `json:"slot"`
	Ability  combat.AbilityID `json:"ability"`
	TargetID string           `json:"target_id,omitempty"`
	Amount   int              `json:"amount,omitempty"`
}

// ActionLog collects the tick's executed casts. The scheduler resets it at
// tick start; modules append on success only.
type ActionLog struct {
	entries []ActionRecord
}

func (l *ActionLog) Record(rec ActionRecord) {
	l.entries = append(l.entries, rec)
}

func (l *ActionLog) Reset() {
	l.entries = l.entries[:0]
}

func (l *ActionLog) Entries() []ActionRecord {
	out := make([]ActionRecord, len(l.entries))
	copy(out, l.entries)
	return out
}

// TickReport is the per-tick summary published to the status board, the
// diagnostics stream and the decision journal.
type TickReport struct {
	Tick           uint64                `json:"tick"`
	Disabled       bool                  `json:"disabled,omitempty"`
	Moving         bool                  `json:"moving"`
	InCombat       bool                  `json:"in_combat"`
	CombatDuration time.Duration         `json:"combat_duration"`
	Gauge          combat.GaugePair      `json:"gauge"`
	Passes         []PassResult          `json:"passes,omitempty"`
	Actions        []ActionRecord        `json:"actions,omitempty"`
	Candidates     []ports.HealCandidate `json:"candidates,omitempty"`
	Reserved       []string              `json:"reserved,omitempty"`
	Fault          string                `json:"fault,omitempty"`
}
