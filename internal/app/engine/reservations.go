package engine

import "sort"

// Reservations is the per-tick ally claim set: the first module to reserve
// an ally owns it for the rest of the tick. The scheduler hands a fresh set
// to every tick.
type Reservations struct {
	claimed map[string]struct{}
}

func NewReservations() *Reservations {
	return &Reservations{claimed: make(map[string]struct{})}
}

// Reserve claims an ally. False means someone already holds it this tick.
func (r *Reservations) Reserve(id string) bool {
	if _, taken := r.claimed[id]; taken {
		return false
	}
	r.claimed[id] = struct{}{}
	return true
}

// Release undoes a claim. Only the rollback path after a refused execution
// uses it; normal claims last until the tick ends.
func (r *Reservations) Release(id string) {
	delete(r.claimed, id)
}

func (r *Reservations) Reserved(id string) bool {
	_, taken := r.claimed[id]
	return taken
}

func (r *Reservations) IDs() []string {
	out := make([]string, 0, len(r.claimed))
	for id := range r.claimed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
