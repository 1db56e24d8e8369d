package ports

import (
	"time"

	"triage/internal/domain/combat"
)

type FaultTier string

const (
	FaultFatal FaultTier = "fatal"
	FaultStale FaultTier = "stale"
	FaultOther FaultTier = "other"
)

type EngineMetrics interface {
	RecordTick(d time.Duration)
	RecordDecision(module string, slot combat.SlotType, ability combat.AbilityID)
	RecordNoAction(slot combat.SlotType)
	RecordFault(tier FaultTier)
	RecordSuppressedLogs(n uint64)
}
