package ports

import (
	"context"
	"time"

	"triage/internal/domain/combat"
)

// HealCandidate is one evaluator diagnostic entry, shared between the
// in-engine ring and journal rows.
type HealCandidate struct {
	Seq      int                 `json:"seq"`
	Ability  combat.AbilityID    `json:"ability"`
	Amount   int                 `json:"amount"`
	Valid    bool                `json:"valid"`
	Reason   combat.RejectReason `json:"reason,omitempty"`
	Selected bool                `json:"selected"`
}

// DecisionRecord is one executed action, journaled for replay. Ticks that
// decide to do nothing are not journaled.
type DecisionRecord struct {
	RunID      string              `json:"run_id"`
	Tick       uint64              `json:"tick"`
	Slot       combat.SlotType     `json:"slot"`
	Module     string              `json:"module"`
	Ability    combat.AbilityID    `json:"ability"`
	TargetID   string              `json:"target_id,omitempty"`
	Amount     int                 `json:"amount,omitempty"`
	Reason     combat.RejectReason `json:"reason,omitempty"`
	Candidates []HealCandidate     `json:"candidates,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

type RunRecord struct {
	RunID     string     `json:"run_id"`
	StartedAt time.Time  `json:"started_at"`
	Seed      int64      `json:"seed"`
	Profile   string     `json:"profile"`
	TickCount uint64     `json:"tick_count"`
	Status    string     `json:"status"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

const (
	RunStatusActive = "active"
	RunStatusClosed = "closed"
)

type RunRepository interface {
	Create(ctx context.Context, run RunRecord) error
	Get(ctx context.Context, runID string) (RunRecord, error)
	BumpTicks(ctx context.Context, runID string, ticks uint64) error
	Close(ctx context.Context, runID string, endedAt time.Time) error
}

type DecisionJournal interface {
	Append(ctx context.Context, records []DecisionRecord) error
	ListRecent(ctx context.Context, runID string, limit int) ([]DecisionRecord, error)
}
