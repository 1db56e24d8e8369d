package combat

import "math"

type Stats struct {
	HealingPower float64 `json:"healing_power"`
	CritRate     float64 `json:"crit_rate"`
	CritBonus    float64 `json:"crit_bonus"`
}

func DefaultStats() Stats {
	return Stats{
		HealingPower: DefaultHealingPower,
		CritRate:     DefaultCritRate,
		CritBonus:    DefaultCritBonus,
	}
}

// PredictHeal converts base potency into an expected restored amount:
// potency scaled by healing power, plus the expected crit contribution.
func PredictHeal(potency int, st Stats) int {
	if potency <= 0 {
		return 0
	}
	power := st.HealingPower
	if power <= 0 {
		power = DefaultHealingPower
	}
	expected := float64(potency) * power * (1 + st.CritRate*st.CritBonus)
	return int(math.Floor(expected))
}
