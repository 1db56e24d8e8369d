package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"triage/internal/app/profile"
	"triage/internal/domain/combat"
)

func writeProfile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
}

func TestSnapshot_MissingFileFallsBackToBase(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "absent.yaml"), profile.Default())
	snap := p.Snapshot()
	if snap.Strategy != profile.StrategyTiered {
		t.Fatalf("expected default strategy, got %q", snap.Strategy)
	}
}

func TestSnapshot_OverlaysFileOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	writeProfile(t, path, "strategy: scored\nconserve: true\ndisabled_abilities: [remedy]\n")

	p := NewProvider(path, profile.Default())
	snap := p.Snapshot()
	if snap.Strategy != profile.StrategyScored {
		t.Fatalf("strategy = %q, want scored", snap.Strategy)
	}
	if !snap.Conserve {
		t.Fatal("conserve should be set")
	}
	if snap.AbilityEnabled(combat.AbilityRemedy) {
		t.Fatal("remedy should be disabled")
	}
	if !snap.AbilityEnabled(combat.AbilityMend) {
		t.Fatal("mend should stay enabled")
	}
}

func TestSnapshot_PicksUpFileEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	writeProfile(t, path, "gauge_mode: aggressive\n")

	p := NewProvider(path, profile.Default())
	if got := p.Snapshot().GaugeMode; got != combat.GaugeModeAggressive {
		t.Fatalf("gauge mode = %q, want aggressive", got)
	}

	writeProfile(t, path, "gauge_mode: conservative\n")
	// Force a visible mtime change on coarse-grained filesystems.
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if got := p.Snapshot().GaugeMode; got != combat.GaugeModeConservative {
		t.Fatalf("gauge mode after edit = %q, want conservative", got)
	}
}

func TestSnapshot_KeepsLastGoodProfileOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	writeProfile(t, path, "strategy: scored\n")

	p := NewProvider(path, profile.Default())
	if got := p.Snapshot().Strategy; got != profile.StrategyScored {
		t.Fatalf("strategy = %q, want scored", got)
	}

	writeProfile(t, path, "strategy: [broken\n")
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if got := p.Snapshot().Strategy; got != profile.StrategyScored {
		t.Fatalf("strategy after broken edit = %q, want last good scored", got)
	}
}
