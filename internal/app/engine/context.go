package engine

import (
	"time"

	"triage/internal/app/ports"
	"triage/internal/app/profile"
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

// AgentSnapshot is the host-produced view of the agent at one tick. Time and
// proc rolls come from here; the core never consults a wall clock or RNG.
type AgentSnapshot struct {
	Tick     uint64        `json:"tick"`
	Now      time.Duration `json:"now"`
	Position party.Point   `json:"position"`

	Level     int          `json:"level"`
	Stats     combat.Stats `json:"stats"`
	Health    int          `json:"health"`
	MaxHealth int          `json:"max_health"`
	MP        int          `json:"mp"`
	MaxMP     int          `json:"max_mp"`

	InCombat   bool `json:"in_combat"`
	Surge      bool `json:"surge"`
	CastLocked bool `json:"cast_locked"`
}

func (s AgentSnapshot) HealthPct() float64 {
	if s.MaxHealth <= 0 {
		return 0
	}
	return float64(s.Health) / float64(s.MaxHealth)
}

// TickContext is the read-mostly per-tick view the modules decide on. The
// scheduler builds one per tick; modules read it and route every mutation
// through the reservation set, the pending-heal registry or the executor.
type TickContext struct {
	Snap           AgentSnapshot
	Profile        profile.Snapshot
	Gauge          combat.GaugePair
	CombatDuration time.Duration

	Status   ports.ActionStatusProvider
	Executor ports.ActionExecutor
	Roster   ports.RosterProvider
	Pending  ports.PendingHealRegistry

	moving  bool
	trend   ports.DamageTrendProvider
	targets ports.TargetStatusProvider
}

func (c *TickContext) TickIndex() uint64 { return c.Snap.Tick }

func (c *TickContext) IsMoving() bool { return c.moving }

// DamageTrend is optional: roles without a trend feed run without it and
// every consumer handles the absent branch.
func (c *TickContext) DamageTrend() (ports.DamageTrendProvider, bool) {
	return c.trend, c.trend != nil
}

// TargetStatus is optional in the same way.
func (c *TickContext) TargetStatus() (ports.TargetStatusProvider, bool) {
	return c.targets, c.targets != nil
}
