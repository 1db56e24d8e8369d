package combat

// RejectReason is the closed set of machine-readable reasons a candidate is
// not cast. Diagnostics, logs and journal rows all carry these codes.
type RejectReason string

const (
	ReasonNone            RejectReason = ""
	ReasonLevelTooLow     RejectReason = "level_too_low"
	ReasonDisabled        RejectReason = "disabled_in_config"
	ReasonOnCooldown      RejectReason = "on_cooldown"
	ReasonNoResource      RejectReason = "no_resource"
	ReasonWouldOverheal   RejectReason = "would_overheal"
	ReasonHeldByPolicy    RejectReason = "held_by_policy"
	ReasonThresholdNotMet RejectReason = "threshold_not_met"
	ReasonEffectActive    RejectReason = "effect_active"
	ReasonTargetReserved  RejectReason = "target_reserved"
	ReasonOutOfRange      RejectReason = "out_of_range"
	ReasonNoTarget        RejectReason = "no_target"
)
