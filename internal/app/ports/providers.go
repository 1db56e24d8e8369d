package ports

import (
	"time"

	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

// Hot-path providers are non-blocking reads over host memory, called inside
// the tick. They take no context: a provider that could block does not belong
// on the tick path.

// ActionStatusProvider answers readiness questions about the host's action
// system: the shared primary recharge, per-ability recharges and charges, and
// whether a secondary action currently fits the weave gap.
type ActionStatusProvider interface {
	IsReady(id combat.AbilityID) bool
	CooldownRemaining(id combat.AbilityID) time.Duration
	Charges(id combat.AbilityID) int
	PrimarySlotOpen() bool
	SecondarySlotOpen() bool
	WeaveWindow() bool
}

// ActionExecutor submits an action to the host. A false return means the
// host refused it this tick; any optimistic bookkeeping must be rolled back
// before the tick ends.
type ActionExecutor interface {
	ExecutePrimary(id combat.AbilityID, targetID string) bool
	ExecuteSecondary(id combat.AbilityID, targetID string) bool
}

// RosterProvider serves pure queries over the current party.
type RosterProvider interface {
	Allies() []party.Ally
	LowestHealthAlly() (party.Ally, bool)
	CountInjuredWithin(center party.Point, radius, maxHealthPct float64) int
}

// DamageTrendProvider estimates incoming damage per ally. Optional: absent
// for roles that do not track it.
type DamageTrendProvider interface {
	RatePerSecond(allyID string) float64
	SpikeExpected(allyID string) bool
}

// TargetStatusProvider reports on the current enemy target. Optional.
type TargetStatusProvider interface {
	HasEnemyTarget() bool
	EnemyEffectRemaining(id combat.AbilityID) time.Duration
}

// PendingHealRegistry tracks heals already in flight so two casts never chase
// the same missing health.
type PendingHealRegistry interface {
	RegisterPendingHeal(allyID string, amount int)
	ClearPendingHeals(allyID string)
	PendingAmount(allyID string) int
}
