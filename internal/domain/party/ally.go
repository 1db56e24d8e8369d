package party

import (
	"sort"
	"time"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) DistanceSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

type Role string

const (
	RoleTank    Role = "tank"
	RoleDamage  Role = "damage"
	RoleSupport Role = "support"
)

type Ally struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	MaxHealth int    `json:"max_health"`
	Health    int    `json:"health"`
	Dead      bool   `json:"dead"`
	Position  Point  `json:"position"`

	// Remaining durations of effects the engine must not stack.
	RegenRemaining  time.Duration `json:"regen_remaining,omitempty"`
	ShieldRemaining time.Duration `json:"shield_remaining,omitempty"`
}

func (a Ally) HealthPct() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return float64(a.Health) / float64(a.MaxHealth)
}

func (a Ally) MissingHealth() int {
	if a.Dead {
		return a.MaxHealth
	}
	missing := a.MaxHealth - a.Health
	if missing < 0 {
		return 0
	}
	return missing
}

// SortByID orders a roster deterministically. Every provider hands out
// rosters in this order so candidate construction never depends on map
// iteration.
func SortByID(allies []Ally) {
	sort.Slice(allies, func(i, j int) bool { return allies[i].ID < allies[j].ID })
}

// LowestHealth picks the living ally with the lowest health fraction, ties
// resolved by ascending ID.
func LowestHealth(allies []Ally) (Ally, bool) {
	best := Ally{}
	found := false
	for _, a := range allies {
		if a.Dead {
			continue
		}
		if !found {
			best, found = a, true
			continue
		}
		ap, bp := a.HealthPct(), best.HealthPct()
		if ap < bp || (ap == bp && a.ID < best.ID) {
			best = a
		}
	}
	return best, found
}

// CountInjuredWithin counts living allies inside radius of center whose
// health fraction is at or below maxHealthPct.
func CountInjuredWithin(allies []Ally, center Point, radius float64, maxHealthPct float64) int {
	rsq := radius * radius
	n := 0
	for _, a := range allies {
		if a.Dead {
			continue
		}
		if a.Position.DistanceSq(center) > rsq {
			continue
		}
		if a.HealthPct() <= maxHealthPct {
			n++
		}
	}
	return n
}

// FirstDead returns the first dead ally in ID order, if any.
func FirstDead(allies []Ally) (Ally, bool) {
	best := Ally{}
	found := false
	for _, a := range allies {
		if !a.Dead {
			continue
		}
		if !found || a.ID < best.ID {
			best, found = a, true
		}
	}
	return best, found
}
