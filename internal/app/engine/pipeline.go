package engine

import (
	"fmt"
	"sort"

	"triage/internal/domain/combat"
)

// Context is the capability surface the generic pipeline needs from a tick
// context. Role variants differ only in their field sets, so one pipeline
// serves them all.
type Context interface {
	TickIndex() uint64
	IsMoving() bool
}

// Pass identifies which action slot a pipeline walk is trying to fill.
type Pass struct {
	Slot        combat.SlotType
	WeaveWindow bool
}

// Module is one concern in the priority order. TryExecute returns true when
// the module cast something, which ends the pass.
type Module[C Context] interface {
	Name() string
	Priority() int
	TryExecute(c C, pass Pass, res *Reservations) (bool, error)
}

// DebugObserver is an optional side hook for modules that export debug
// state. It must never influence decisions; the pipeline calls it after the
// passes and swallows nothing-but-state updates.
type DebugObserver[C Context] interface {
	UpdateDebugState(c C)
}

// ModuleFaultError tags a module failure with where it happened so the
// scheduler can classify and report it.
type ModuleFaultError struct {
	Module string
	Slot   combat.SlotType
	Err    error
}

func (e *ModuleFaultError) Error() string {
	return fmt.Sprintf("module %s (%s slot): %v", e.Module, e.Slot, e.Err)
}

func (e *ModuleFaultError) Unwrap() error { return e.Err }

type PassResult struct {
	Slot     combat.SlotType `json:"slot"`
	Executed bool            `json:"executed"`
	Module   string          `json:"module,omitempty"`
}

// Pipeline runs modules in ascending priority and stops at the first
// success. At most one module acts per pass; a pass where nothing applies is
// a normal no-action outcome.
type Pipeline[C Context] struct {
	modules []Module[C]
}

func NewPipeline[C Context](modules ...Module[C]) *Pipeline[C] {
	sorted := make([]Module[C], len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Pipeline[C]{modules: sorted}
}

func (p *Pipeline[C]) RunPass(c C, pass Pass, res *Reservations) (PassResult, error) {
	for _, m := range p.modules {
		ok, err := m.TryExecute(c, pass, res)
		if err != nil {
			return PassResult{Slot: pass.Slot}, &ModuleFaultError{Module: m.Name(), Slot: pass.Slot, Err: err}
		}
		if ok {
			return PassResult{Slot: pass.Slot, Executed: true, Module: m.Name()}, nil
		}
	}
	return PassResult{Slot: pass.Slot}, nil
}

// UpdateDebugState invokes the optional observability hook on every module
// that has one.
func (p *Pipeline[C]) UpdateDebugState(c C) {
	for _, m := range p.modules {
		if obs, ok := m.(DebugObserver[C]); ok {
			obs.UpdateDebugState(c)
		}
	}
}
