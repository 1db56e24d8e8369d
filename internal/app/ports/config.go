package ports

import "triage/internal/app/profile"

// ConfigProvider hands out the active tuning profile. The engine queries it
// every tick and never caches across ticks; providers decide how fresh
// "active" is (the file provider re-stats on every call).
type ConfigProvider interface {
	Snapshot() profile.Snapshot
}
