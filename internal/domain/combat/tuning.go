package combat

import "time"

const (
	PrimaryGaugeCap      = 3
	SecondaryGaugeCap    = 3
	PrimaryRegenInterval = 20 * time.Second

	EncounterFlushAfter         = 60 * time.Second
	ConservativeHealthThreshold = 0.75

	DefaultOverhealFactor = 1.5

	DefaultHealingPower = 1.8
	DefaultCritRate     = 0.22
	DefaultCritBonus    = 0.5

	LevelCap = 90

	RegenThresholdHigh    = 0.75
	RegenThresholdDefault = 0.60
	RegenThresholdLow     = 0.45
	DamageRateHigh        = 1200.0
	DamageRateLow         = 250.0
	RegenRefreshWindow    = 3 * time.Second

	EmergencyHealthPct = 0.50

	DoTRefreshWindow = 3 * time.Second
)
