package inmemory

import (
	"sync"
	"time"

	"triage/internal/app/ports"
	"triage/internal/domain/combat"
)

type Snapshot struct {
	TickTotal         uint64            `json:"tick_total"`
	TickDurationAvgMs float64           `json:"tick_duration_avg_ms"`
	TickDurationMaxMs float64           `json:"tick_duration_max_ms"`
	DecisionTotal     uint64            `json:"decision_total"`
	NoActionTotal     uint64            `json:"no_action_total"`
	ByModule          map[string]uint64 `json:"by_module"`
	ByAbility         map[string]uint64 `json:"by_ability"`
	BySlot            map[string]uint64 `json:"by_slot"`
	FaultsFatal       uint64            `json:"faults_fatal"`
	FaultsStale       uint64            `json:"faults_stale"`
	FaultsOther       uint64            `json:"faults_other"`
	SuppressedLogs    uint64            `json:"suppressed_logs"`
}

type Recorder struct {
	mu sync.Mutex

	tickTotal  uint64
	tickDurSum time.Duration
	tickDurMax time.Duration
	decisions  uint64
	noActions  uint64
	byModule   map[string]uint64
	byAbility  map[string]uint64
	bySlot     map[string]uint64
	faultFatal uint64
	faultStale uint64
	faultOther uint64
	suppressed uint64
}

var _ ports.EngineMetrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		byModule:  map[string]uint64{},
		byAbility: map[string]uint64{},
		bySlot:    map[string]uint64{},
	}
}

func (r *Recorder) RecordTick(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickTotal++
	r.tickDurSum += d
	if d > r.tickDurMax {
		r.tickDurMax = d
	}
}

func (r *Recorder) RecordDecision(module string, slot combat.SlotType, ability combat.AbilityID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions++
	r.byModule[module]++
	r.byAbility[string(ability)]++
	r.bySlot[string(slot)]++
}

func (r *Recorder) RecordNoAction(combat.SlotType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.noActions++
}

func (r *Recorder) RecordFault(tier ports.FaultTier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch tier {
	case ports.FaultFatal:
		r.faultFatal++
	case ports.FaultStale:
		r.faultStale++
	default:
		r.faultOther++
	}
}

func (r *Recorder) RecordSuppressedLogs(n uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppressed += n
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TickTotal:      r.tickTotal,
		DecisionTotal:  r.decisions,
		NoActionTotal:  r.noActions,
		ByModule:       make(map[string]uint64, len(r.byModule)),
		ByAbility:      make(map[string]uint64, len(r.byAbility)),
		BySlot:         make(map[string]uint64, len(r.bySlot)),
		FaultsFatal:    r.faultFatal,
		FaultsStale:    r.faultStale,
		FaultsOther:    r.faultOther,
		SuppressedLogs: r.suppressed,
	}
	if r.tickTotal > 0 {
		out.TickDurationAvgMs = float64(r.tickDurSum.Microseconds()) / float64(r.tickTotal) / 1000
	}
	out.TickDurationMaxMs = float64(r.tickDurMax.Microseconds()) / 1000
	for k, v := range r.byModule {
		out.ByModule[k] = v
	}
	for k, v := range r.byAbility {
		out.ByAbility[k] = v
	}
	for k, v := range r.bySlot {
		out.BySlot[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
