package party

import "testing"

func roster() []Ally {
	return []Ally{
		{ID: "a1", MaxHealth: 1000, Health: 800, Position: Point{X: 0, Y: 0}},
		{ID: "a2", MaxHealth: 1000, Health: 400, Position: Point{X: 3, Y: 4}},
		{ID: "a3", MaxHealth: 2000, Health: 800, Position: Point{X: 30, Y: 0}},
		{ID: "a4", MaxHealth: 1000, Health: 0, Dead: true, Position: Point{X: 1, Y: 1}},
	}
}

func TestLowestHealth_SkipsDeadAndBreaksTiesByID(t *testing.T) {
	got, ok := LowestHealth(roster())
	if !ok {
		t.Fatalf("expected a living ally")
	}
	// a2 at 40%, a3 at 40%: tie resolves to the lower ID.
	if got.ID != "a2" {
		t.Fatalf("expected a2, got %s", got.ID)
	}

	if _, ok := LowestHealth([]Ally{{ID: "d", Dead: true, MaxHealth: 100}}); ok {
		t.Fatalf("expected no pick from an all-dead roster")
	}
}

func TestCountInjuredWithin(t *testing.T) {
	allies := roster()
	// Radius 10 around origin covers a1 and a2 (a4 is dead, a3 is far).
	if got, want := CountInjuredWithin(allies, Point{}, 10, 0.85), 2; got != want {
		t.Fatalf("count = %d, want %d", got, want)
	}
	if got, want := CountInjuredWithin(allies, Point{}, 10, 0.50), 1; got != want {
		t.Fatalf("count at 50%% = %d, want %d", got, want)
	}
	if got := CountInjuredWithin(allies, Point{X: 100, Y: 100}, 5, 1.0); got != 0 {
		t.Fatalf("count far away = %d, want 0", got)
	}
}

func TestFirstDead(t *testing.T) {
	dead, ok := FirstDead(roster())
	if !ok || dead.ID != "a4" {
		t.Fatalf("expected a4 dead, got %v ok=%v", dead.ID, ok)
	}
	if _, ok := FirstDead(roster()[:3]); ok {
		t.Fatalf("expected no dead ally")
	}
}

func TestMissingHealth(t *testing.T) {
	a := Ally{MaxHealth: 1000, Health: 750}
	if got, want := a.MissingHealth(), 250; got != want {
		t.Fatalf("missing = %d, want %d", got, want)
	}
	a.Health = 1200
	if got := a.MissingHealth(); got != 0 {
		t.Fatalf("overfull ally should miss 0, got %d", got)
	}
	a.Dead = true
	if got, want := a.MissingHealth(), 1000; got != want {
		t.Fatalf("dead ally misses max health, got %d", got)
	}
}

func TestSortByID(t *testing.T) {
	allies := []Ally{{ID: "b"}, {ID: "a"}, {ID: "c"}}
	SortByID(allies)
	if allies[0].ID != "a" || allies[2].ID != "c" {
		t.Fatalf("unexpected order: %v", allies)
	}
}
