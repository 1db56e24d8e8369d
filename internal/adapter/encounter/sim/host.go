package sim

import (
	"math/rand"
	"time"

	"triage/internal/app/engine"
	"triage/internal/app/ports"
	"triage/internal/app/shared/slots"
	"triage/internal/app/shared/trend"
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

// Config seeds and scales one encounter. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Seed  int64
	Level int

	AgentMaxHealth int
	AgentMaxMP     int
	MPRegenPerSec  int

	// Scripted damage pattern.
	TankDrainPerSec int
	SplashPerSec    int
	SpikeEvery      time.Duration
	SpikeDamage     int
	SurgeChance     float64
	SurgeDuration   time.Duration
	RepositionEvery time.Duration
	RepositionFor   time.Duration
	SharedRecharge  time.Duration
	WeaveGap        time.Duration
	EnemyMaxHealth  int
}

func DefaultConfig(seed int64) Config {
	return Config{
		Seed:            seed,
		Level:           80,
		AgentMaxHealth:  32000,
		AgentMaxMP:      10000,
		MPRegenPerSec:   200,
		TankDrainPerSec: 600,
		SplashPerSec:    120,
		SpikeEvery:      18 * time.Second,
		SpikeDamage:     9000,
		SurgeChance:     0.25,
		SurgeDuration:   10 * time.Second,
		RepositionEvery: 30 * time.Second,
		RepositionFor:   3 * time.Second,
		SharedRecharge:  2500 * time.Millisecond,
		WeaveGap:        700 * time.Millisecond,
		EnemyMaxHealth:  2_000_000,
	}
}

type agentState struct {
	pos       party.Point
	health    int
	maxHealth int
	mp        int
	maxMP     int
	level     int
	stats     combat.Stats

	surgeUntil    time.Duration
	castLockUntil time.Duration
	movingUntil   time.Duration
}

type enemyState struct {
	health    int
	maxHealth int
	dots      map[combat.AbilityID]time.Duration
}

// Host is a deterministic encounter the engine can run against without a
// live game client. It implements every hot-path port; the tick loop calls
// Advance then Snapshot, and the scheduler reads the rest through the ports.
type Host struct {
	cfg Config
	rng *rand.Rand

	now  time.Duration
	tick uint64

	kit    *combat.Catalog
	slots  *slots.Tracker
	trend  *trend.Estimator
	agent  agentState
	allies []party.Ally
	enemy  enemyState

	pending map[string]int

	nextSpikeAt      time.Duration
	nextRepositionAt time.Duration
	mpRemainder      time.Duration
	drainRemainder   time.Duration

	// Healing restored per second by an active regen effect.
	regenPerSec int
}

func NewHost(cfg Config, kit *combat.Catalog) *Host {
	if kit == nil {
		kit = combat.DefaultKit()
	}
	tracker := slots.NewTracker(cfg.SharedRecharge, cfg.WeaveGap)
	tracker.RegisterKit(kit)

	h := &Host{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		kit:   kit,
		slots: tracker,
		trend: trend.NewEstimator(0.3, 2.5),
		agent: agentState{
			pos:       party.Point{X: 0, Y: 0},
			health:    cfg.AgentMaxHealth,
			maxHealth: cfg.AgentMaxHealth,
			mp:        cfg.AgentMaxMP,
			maxMP:     cfg.AgentMaxMP,
			level:     cfg.Level,
			stats:     combat.DefaultStats(),
		},
		allies: []party.Ally{
			{ID: "tank-1", Name: "Bastion", Role: party.RoleTank, MaxHealth: 58000, Health: 58000, Position: party.Point{X: 4, Y: 0}},
			{ID: "dps-1", Name: "Saber", Role: party.RoleDamage, MaxHealth: 34000, Health: 34000, Position: party.Point{X: 3, Y: 2}},
			{ID: "dps-2", Name: "Longbow", Role: party.RoleDamage, MaxHealth: 33000, Health: 33000, Position: party.Point{X: -2, Y: 5}},
			{ID: "support-1", Name: "Chorus", Role: party.RoleSupport, MaxHealth: 30000, Health: 30000, Position: party.Point{X: -1, Y: 2}},
		},
		enemy: enemyState{
			health:    cfg.EnemyMaxHealth,
			maxHealth: cfg.EnemyMaxHealth,
			dots:      make(map[combat.AbilityID]time.Duration),
		},
		pending:          make(map[string]int),
		nextSpikeAt:      cfg.SpikeEvery,
		nextRepositionAt: cfg.RepositionEvery,
	}
	if verdure, ok := kit.ByID(combat.AbilityVerdure); ok && verdure.TickPotency > 0 {
		h.regenPerSec = combat.PredictHeal(verdure.TickPotency, h.agent.stats) / 3
	}
	return h
}

// Advance steps the world by dt: scripted damage, regen and shield decay,
// MP regeneration, recharge bookkeeping and the damage-trend feed.
func (h *Host) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	h.now += dt
	h.tick++
	h.slots.Advance(h.now)

	h.advanceAgent(dt)
	h.advanceEnemy(dt)
	h.advanceParty(dt)

	for i := range h.allies {
		h.trend.Observe(h.allies[i].ID, h.allies[i].Health, dt)
	}
}

func (h *Host) advanceAgent(dt time.Duration) {
	h.mpRemainder += dt
	for h.mpRemainder >= time.Second {
		h.mpRemainder -= time.Second
		h.agent.mp += h.cfg.MPRegenPerSec
	}
	if h.agent.mp > h.agent.maxMP {
		h.agent.mp = h.agent.maxMP
	}
	if h.agent.movingUntil > 0 && h.now >= h.agent.movingUntil {
		h.agent.movingUntil = 0
	}
	if h.now >= h.nextRepositionAt {
		h.nextRepositionAt = h.now + h.cfg.RepositionEvery
		h.agent.movingUntil = h.now + h.cfg.RepositionFor
	}
	if h.agent.movingUntil > 0 {
		h.agent.pos.X += 2 * dt.Seconds()
	}
}

func (h *Host) advanceEnemy(dt time.Duration) {
	for id, remaining := range h.enemy.dots {
		remaining -= dt
		if remaining <= 0 {
			delete(h.enemy.dots, id)
			continue
		}
		h.enemy.dots[id] = remaining
		if a, ok := h.kit.ByID(id); ok && a.TickPotency > 0 {
			h.enemy.health -= int(float64(a.TickPotency) * dt.Seconds() / 3)
		}
	}
	if h.enemy.health < 0 {
		h.enemy.health = 0
	}
}

func (h *Host) advanceParty(dt time.Duration) {
	spike := false
	if h.now >= h.nextSpikeAt {
		h.nextSpikeAt = h.now + h.cfg.SpikeEvery
		spike = true
	}

	h.drainRemainder += dt
	var steps int
	for h.drainRemainder >= time.Second {
		h.drainRemainder -= time.Second
		steps++
	}

	for i := range h.allies {
		a := &h.allies[i]
		if a.Dead {
			continue
		}
		if a.RegenRemaining > 0 {
			a.Health += h.regenPerSec * steps
			if a.Health > a.MaxHealth {
				a.Health = a.MaxHealth
			}
		}
		a.RegenRemaining -= dt
		if a.RegenRemaining < 0 {
			a.RegenRemaining = 0
		}
		a.ShieldRemaining -= dt
		if a.ShieldRemaining < 0 {
			a.ShieldRemaining = 0
		}

		damage := 0
		if a.Role == party.RoleTank {
			damage += h.cfg.TankDrainPerSec * steps
			if spike {
				damage += h.cfg.SpikeDamage + h.rng.Intn(h.cfg.SpikeDamage/4+1)
			}
		} else {
			damage += h.cfg.SplashPerSec * steps
		}
		if a.ShieldRemaining > 0 {
			damage = damage / 2
		}
		a.Health -= damage
		if a.Health <= 0 {
			a.Health = 0
			a.Dead = true
		}
	}
}

// Snapshot produces the engine's view of the agent for the current frame.
func (h *Host) Snapshot() engine.AgentSnapshot {
	return engine.AgentSnapshot{
		Tick:       h.tick,
		Now:        h.now,
		Position:   h.agent.pos,
		Level:      h.agent.level,
		Stats:      h.agent.stats,
		Health:     h.agent.health,
		MaxHealth:  h.agent.maxHealth,
		MP:         h.agent.mp,
		MaxMP:      h.agent.maxMP,
		InCombat:   h.enemy.health > 0,
		Surge:      h.now < h.agent.surgeUntil,
		CastLocked: h.now < h.agent.castLockUntil,
	}
}

// --- ports.ActionStatusProvider ---

func (h *Host) IsReady(id combat.AbilityID) bool { return h.slots.IsReady(id) }

func (h *Host) CooldownRemaining(id combat.AbilityID) time.Duration {
	return h.slots.CooldownRemaining(id)
}

func (h *Host) Charges(id combat.AbilityID) int { return h.slots.Charges(id) }

func (h *Host) PrimarySlotOpen() bool { return h.slots.PrimarySlotOpen() }

func (h *Host) SecondarySlotOpen() bool { return h.slots.SecondarySlotOpen() }

func (h *Host) WeaveWindow() bool { return h.slots.WeaveWindow() }

// --- ports.ActionExecutor ---

func (h *Host) ExecutePrimary(id combat.AbilityID, targetID string) bool {
	a, ok := h.kit.ByID(id)
	if !ok || a.Slot != combat.SlotPrimary || !h.slots.PrimarySlotOpen() {
		return false
	}
	if !h.spendMP(a) {
		return false
	}
	h.slots.NotePrimaryCast()
	if a.Cast == combat.CastTimed {
		h.agent.castLockUntil = h.now + a.CastTime
	}
	h.applyEffect(a, targetID)
	return true
}

func (h *Host) ExecuteSecondary(id combat.AbilityID, targetID string) bool {
	a, ok := h.kit.ByID(id)
	if !ok || a.Slot != combat.SlotSecondary {
		return false
	}
	if !h.spendMP(a) {
		return false
	}
	if !h.slots.NoteSecondaryCast(id) {
		return false
	}
	h.applyEffect(a, targetID)
	return true
}

func (h *Host) spendMP(a combat.Ability) bool {
	if a.FreeToCast(h.now < h.agent.surgeUntil) {
		return true
	}
	if h.agent.mp < a.MPCost {
		return false
	}
	h.agent.mp -= a.MPCost
	return true
}

func (h *Host) applyEffect(a combat.Ability, targetID string) {
	if a.GrantsSurge && h.rng.Float64() < h.cfg.SurgeChance {
		h.agent.surgeUntil = h.now + h.cfg.SurgeDuration
	}

	switch a.Kind {
	case combat.KindHeal:
		h.healAlly(targetID, combat.PredictHeal(a.Potency, h.agent.stats))
	case combat.KindRegen:
		if i := h.allyIndex(targetID); i >= 0 {
			h.healAlly(targetID, combat.PredictHeal(a.Potency, h.agent.stats))
			h.allies[i].RegenRemaining = a.Duration
		}
	case combat.KindHealArea:
		amount := combat.PredictHeal(a.Potency, h.agent.stats)
		for i := range h.allies {
			if h.allies[i].Dead {
				continue
			}
			if h.allies[i].Position.DistanceSq(h.agent.pos) <= a.Radius*a.Radius {
				h.healAlly(h.allies[i].ID, amount)
			}
		}
	case combat.KindMitigation:
		if i := h.allyIndex(targetID); i >= 0 {
			h.allies[i].ShieldRemaining = 20 * time.Second
		}
	case combat.KindMitigationArea:
		for i := range h.allies {
			if !h.allies[i].Dead && h.allies[i].Position.DistanceSq(h.agent.pos) <= a.Radius*a.Radius {
				h.allies[i].ShieldRemaining = a.Duration
			}
		}
	case combat.KindRevive:
		if i := h.allyIndex(targetID); i >= 0 && h.allies[i].Dead {
			h.allies[i].Dead = false
			h.allies[i].Health = h.allies[i].MaxHealth / 5
		}
	case combat.KindDamage, combat.KindDamageArea:
		h.enemy.health -= combat.PredictHeal(a.Potency, h.agent.stats)
		if a.TickPotency > 0 && a.Duration > 0 {
			h.enemy.dots[a.ID] = a.Duration
		}
		if h.enemy.health < 0 {
			h.enemy.health = 0
		}
	case combat.KindBuff:
		// Quicken has no observable effect on the scripted pattern.
	}
}

func (h *Host) healAlly(id string, amount int) {
	i := h.allyIndex(id)
	if i < 0 || h.allies[i].Dead {
		return
	}
	h.allies[i].Health += amount
	if h.allies[i].Health > h.allies[i].MaxHealth {
		h.allies[i].Health = h.allies[i].MaxHealth
	}
	h.ClearPendingHeals(id)
}

func (h *Host) allyIndex(id string) int {
	for i := range h.allies {
		if h.allies[i].ID == id {
			return i
		}
	}
	return -1
}

// --- ports.RosterProvider ---

func (h *Host) Allies() []party.Ally {
	out := make([]party.Ally, len(h.allies))
	copy(out, h.allies)
	party.SortByID(out)
	return out
}

func (h *Host) LowestHealthAlly() (party.Ally, bool) {
	return party.LowestHealth(h.allies)
}

func (h *Host) CountInjuredWithin(center party.Point, radius, maxHealthPct float64) int {
	return party.CountInjuredWithin(h.allies, center, radius, maxHealthPct)
}

// --- ports.DamageTrendProvider ---

func (h *Host) RatePerSecond(allyID string) float64 { return h.trend.RatePerSecond(allyID) }

func (h *Host) SpikeExpected(allyID string) bool { return h.trend.SpikeExpected(allyID) }

// --- ports.TargetStatusProvider ---

func (h *Host) HasEnemyTarget() bool { return h.enemy.health > 0 }

func (h *Host) EnemyEffectRemaining(id combat.AbilityID) time.Duration {
	return h.enemy.dots[id]
}

// --- ports.PendingHealRegistry ---

func (h *Host) RegisterPendingHeal(allyID string, amount int) {
	h.pending[allyID] += amount
}

func (h *Host) ClearPendingHeals(allyID string) {
	delete(h.pending, allyID)
}

func (h *Host) PendingAmount(allyID string) int {
	return h.pending[allyID]
}

var (
	_ ports.ActionStatusProvider = (*Host)(nil)
	_ ports.ActionExecutor       = (*Host)(nil)
	_ ports.RosterProvider       = (*Host)(nil)
	_ ports.DamageTrendProvider  = (*Host)(nil)
	_ ports.TargetStatusProvider = (*Host)(nil)
	_ ports.PendingHealRegistry  = (*Host)(nil)
)
