package static

import (
	"sync"

	"triage/internal/app/ports"
	"triage/internal/app/profile"
)

// Provider serves a fixed profile. Replace swaps it wholesale, which is all
// the in-process tuning the demo binary needs.
type Provider struct {
	mu   sync.RWMutex
	snap profile.Snapshot
}

func NewProvider(snap profile.Snapshot) *Provider {
	return &Provider{snap: snap}
}

func (p *Provider) Snapshot() profile.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *Provider) Replace(snap profile.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = snap
}

var _ ports.ConfigProvider = (*Provider)(nil)
