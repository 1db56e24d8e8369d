package combat

import "time"

// GaugePair tracks the dual restoration gauge: Blossoms regenerate on a fixed
// interval while in combat, Seeds grow one per Blossom spent and are consumed
// wholesale by the capstone.
type GaugePair struct {
	Primary   int           `json:"primary"`
	Secondary int           `json:"secondary"`
	Progress  time.Duration `json:"progress"`
}

// Tick advances the regeneration timer and returns the number of Blossoms
// granted. The timer only runs in combat and is frozen exactly at cap: no
// progress banks while Primary is full.
func (g *GaugePair) Tick(elapsed time.Duration, inCombat bool) int {
	if g.Primary >= PrimaryGaugeCap {
		g.Progress = 0
		return 0
	}
	if !inCombat || elapsed <= 0 {
		return 0
	}
	g.Progress += elapsed
	granted := 0
	for g.Progress >= PrimaryRegenInterval && g.Primary < PrimaryGaugeCap {
		g.Progress -= PrimaryRegenInterval
		g.Primary++
		granted++
	}
	if g.Primary >= PrimaryGaugeCap {
		g.Progress = 0
	}
	return granted
}

// SpendPrimary spends one Blossom and grows one Seed. Seed growth past the
// cap is lost, not banked.
func (g *GaugePair) SpendPrimary() bool {
	if g.Primary <= 0 {
		return false
	}
	g.Primary--
	if g.Secondary < SecondaryGaugeCap {
		g.Secondary++
	}
	return true
}

// ConsumeSecondary drains the full Seed gauge. Only a full gauge can be
// consumed.
func (g *GaugePair) ConsumeSecondary() bool {
	if g.Secondary != SecondaryGaugeCap {
		return false
	}
	g.Secondary = 0
	return true
}

// RegenProgress reports the fraction of the running interval, in [0,1).
// Always 0 at cap.
func (g *GaugePair) RegenProgress() float64 {
	if g.Primary >= PrimaryGaugeCap || PrimaryRegenInterval <= 0 {
		return 0
	}
	return float64(g.Progress) / float64(PrimaryRegenInterval)
}
