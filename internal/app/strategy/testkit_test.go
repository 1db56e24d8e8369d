package strategy

import (
	"time"

	"triage/internal/app/profile"
	"triage/internal/domain/combat"
	"triage/internal/domain/party"
)

type stubStatus struct {
	notReady map[combat.AbilityID]bool
	charges  map[combat.AbilityID]int
	weave    bool
}

func (s stubStatus) IsReady(id combat.AbilityID) bool                 { return !s.notReady[id] }
func (s stubStatus) CooldownRemaining(combat.AbilityID) time.Duration { return 0 }
func (s stubStatus) Charges(id combat.AbilityID) int {
	if s.charges == nil {
		return 1
	}
	return s.charges[id]
}
func (s stubStatus) PrimarySlotOpen() bool   { return true }
func (s stubStatus) SecondarySlotOpen() bool { return true }
func (s stubStatus) WeaveWindow() bool       { return s.weave }

func testInputs() Inputs {
	target := party.Ally{ID: "tank-1", Name: "Brick", Role: party.RoleTank, MaxHealth: 40000, Health: 20000}
	return Inputs{
		Kit:           combat.DefaultKit(),
		Profile:       profile.Default(),
		Status:        stubStatus{},
		Level:         80,
		Stats:         combat.DefaultStats(),
		MP:            10000,
		Gauge:         combat.GaugePair{Primary: 1, Secondary: 1},
		Slot:          combat.SlotPrimary,
		Target:        target,
		HasTarget:     true,
		MissingHealth: target.MissingHealth(),
	}
}
