package combat

import "testing"

func TestDefaultKit_UniqueOrderedIDs(t *testing.T) {
	kit := DefaultKit()
	seen := map[AbilityID]bool{}
	for _, a := range kit.Ordered() {
		if seen[a.ID] {
			t.Fatalf("duplicate ability id %q", a.ID)
		}
		seen[a.ID] = true
		if a.MinLevel < 1 || a.MinLevel > LevelCap {
			t.Fatalf("%s: min level %d out of range", a.ID, a.MinLevel)
		}
		if a.Slot != SlotPrimary && a.Slot != SlotSecondary {
			t.Fatalf("%s: unknown slot %q", a.ID, a.Slot)
		}
		if a.Slot == SlotSecondary && a.Recharge <= 0 {
			t.Fatalf("%s: secondary-slot ability needs a recharge", a.ID)
		}
		got, ok := kit.ByID(a.ID)
		if !ok || got.Name != a.Name {
			t.Fatalf("ByID(%q) mismatch", a.ID)
		}
	}
}

func TestHealCandidates_FilterAndOrder(t *testing.T) {
	kit := DefaultKit()

	single := kit.HealCandidates(SlotPrimary, false)
	wantSingle := []AbilityID{AbilityMend, AbilityRemedy, AbilityVerdure, AbilityBloom}
	if len(single) != len(wantSingle) {
		t.Fatalf("single-target primary candidates: got %d want %d (%v)", len(single), len(wantSingle), single)
	}
	for i, id := range wantSingle {
		if single[i].ID != id {
			t.Fatalf("candidate %d: got %q want %q", i, single[i].ID, id)
		}
	}

	area := kit.HealCandidates(SlotPrimary, true)
	wantArea := []AbilityID{AbilityRadiance, AbilityOvergrowth}
	if len(area) != len(wantArea) {
		t.Fatalf("area primary candidates: got %v", area)
	}
	for i, id := range wantArea {
		if area[i].ID != id {
			t.Fatalf("area candidate %d: got %q want %q", i, area[i].ID, id)
		}
	}

	second := kit.HealCandidates(SlotSecondary, false)
	if len(second) != 1 || second[0].ID != AbilityTend {
		t.Fatalf("secondary heal candidates: got %v", second)
	}
}

func TestFreeToCast_SurgeDiscount(t *testing.T) {
	kit := DefaultKit()
	remedy := kit.MustByID(AbilityRemedy)
	if remedy.FreeToCast(false) {
		t.Fatalf("remedy should cost MP without surge")
	}
	if !remedy.FreeToCast(true) {
		t.Fatalf("remedy should be free under surge")
	}
	bloom := kit.MustByID(AbilityBloom)
	if !bloom.FreeToCast(false) {
		t.Fatalf("bloom has no MP cost")
	}
}

func TestPredictHeal(t *testing.T) {
	st := Stats{HealingPower: 2.0, CritRate: 0.5, CritBonus: 0.5}
	// 400 * 2.0 * 1.25 = 1000
	if got, want := PredictHeal(400, st), 1000; got != want {
		t.Fatalf("PredictHeal = %d, want %d", got, want)
	}
	if got := PredictHeal(0, st); got != 0 {
		t.Fatalf("zero potency should predict zero, got %d", got)
	}
	if got := PredictHeal(100, Stats{}); got <= 0 {
		t.Fatalf("zero-value stats should fall back to defaults, got %d", got)
	}
}
