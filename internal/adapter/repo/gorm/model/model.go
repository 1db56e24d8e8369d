package model

import "time"

// EngineRun is one engine session: created at startup, ticked while alive,
// closed on shutdown.
type EngineRun struct {
	RunID     string     `gorm:"column:run_id;primaryKey"`
	StartedAt time.Time  `gorm:"column:started_at"`
	Seed      int64      `gorm:"column:seed"`
	Profile   string     `gorm:"column:profile"`
	TickCount int64      `gorm:"column:tick_count"`
	Status    string     `gorm:"column:status"`
	EndedAt   *time.Time `gorm:"column:ended_at"`
}

func (EngineRun) TableName() string { return "engine_runs" }

// DecisionRecord is one journaled cast. Candidates holds the evaluator ring
// at decision time as JSON.
type DecisionRecord struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunID      string    `gorm:"column:run_id;index"`
	Tick       int64     `gorm:"column:tick"`
	Slot       string    `gorm:"column:slot"`
	Module     string    `gorm:"column:module"`
	Ability    string    `gorm:"column:ability"`
	TargetID   string    `gorm:"column:target_id"`
	Amount     int32     `gorm:"column:amount"`
	Reason     string    `gorm:"column:reason"`
	Candidates []byte    `gorm:"column:candidates;type:jsonb"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
}

func (DecisionRecord) TableName() string { return "decision_records" }
