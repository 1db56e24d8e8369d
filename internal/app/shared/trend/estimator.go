package trend

import "time"

// Estimator smooths per-ally incoming damage into a sustained rate and flags
// spikes where the instantaneous rate runs well ahead of it. Samples come
// from health deltas between encounter frames; healing deltas are ignored.
type Estimator struct {
	// Alpha is the EWMA smoothing factor in (0, 1]; higher weighs recent
	// samples more.
	alpha float64
	// SpikeFactor is how far the last instant rate must exceed the smoothed
	// rate to count as a spike.
	spikeFactor float64

	smoothed map[string]float64
	// baseline is the smoothed rate before the latest sample; spikes are
	// judged against it so a spike does not mask itself.
	baseline map[string]float64
	instant  map[string]float64
	lastHP   map[string]int
}

func NewEstimator(alpha, spikeFactor float64) *Estimator {
	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	if spikeFactor <= 1 {
		spikeFactor = 2.0
	}
	return &Estimator{
		alpha:       alpha,
		spikeFactor: spikeFactor,
		smoothed:    make(map[string]float64),
		baseline:    make(map[string]float64),
		instant:     make(map[string]float64),
		lastHP:      make(map[string]int),
	}
}

// Observe feeds one frame's health reading for an ally. The first reading
// for an ally only seeds the baseline.
func (e *Estimator) Observe(id string, health int, dt time.Duration) {
	prev, seen := e.lastHP[id]
	e.lastHP[id] = health
	if !seen || dt <= 0 {
		return
	}

	lost := prev - health
	if lost < 0 {
		lost = 0
	}
	rate := float64(lost) / dt.Seconds()
	e.instant[id] = rate
	e.baseline[id] = e.smoothed[id]
	e.smoothed[id] = e.alpha*rate + (1-e.alpha)*e.smoothed[id]
}

// RatePerSecond returns the smoothed incoming damage rate for an ally.
func (e *Estimator) RatePerSecond(id string) float64 {
	return e.smoothed[id]
}

// SpikeExpected reports whether the ally's latest frame took damage far
// above their sustained rate.
func (e *Estimator) SpikeExpected(id string) bool {
	inst := e.instant[id]
	if inst <= 0 {
		return false
	}
	base := e.baseline[id]
	if base <= 0 {
		return true
	}
	return inst > e.spikeFactor*base
}

// Forget drops all state for an ally, e.g. when they leave the roster.
func (e *Estimator) Forget(id string) {
	delete(e.smoothed, id)
	delete(e.baseline, id)
	delete(e.instant, id)
	delete(e.lastHP, id)
}
