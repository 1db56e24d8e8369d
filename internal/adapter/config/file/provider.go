package file

import (
	"log"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"triage/internal/app/ports"
	"triage/internal/app/profile"
)

// Provider overlays a YAML profile file onto the built-in defaults. Every
// Snapshot call re-stats the file, so edits take effect on the next tick
// without a reload endpoint. A file that disappears or stops parsing keeps
// the last good profile.
type Provider struct {
	path string
	base profile.Snapshot

	mu         sync.Mutex
	mtime      time.Time
	size       int64
	cached     profile.Snapshot
	haveCached bool
}

func NewProvider(path string, base profile.Snapshot) *Provider {
	return &Provider{path: path, base: base}
}

func (p *Provider) Snapshot() profile.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, err := os.Stat(p.path)
	if err != nil {
		if p.haveCached {
			return p.cached
		}
		return p.base
	}
	if p.haveCached && info.ModTime().Equal(p.mtime) && info.Size() == p.size {
		return p.cached
	}

	snap, err := p.load()
	if err != nil {
		log.Printf("profile: keep previous profile, reload failed: %v", err)
		if p.haveCached {
			return p.cached
		}
		return p.base
	}
	p.cached = snap
	p.haveCached = true
	p.mtime = info.ModTime()
	p.size = info.Size()
	return p.cached
}

func (p *Provider) load() (profile.Snapshot, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return profile.Snapshot{}, err
	}
	var f profile.File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return profile.Snapshot{}, err
	}
	return f.Apply(p.base)
}

var _ ports.ConfigProvider = (*Provider)(nil)
