package ratelimit

import (
	"context"
	"sync"
	"time"
)

// StatsEvent describes one admit/deny decision.
type StatsEvent struct {
	Layer   string // "edge" or "contact"
	Key     string
	Allowed bool
	Path    string
	At      time.Time
}

// StatsStore records decisions. Callers treat errors as best effort.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}

// Snapshotter is implemented by stores that can report their totals in-process.
type Snapshotter interface {
	Snapshot() map[string]Counters
}

type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

// MemoryStatsStore keeps per-layer totals in memory.
type MemoryStatsStore struct {
	mu      sync.Mutex
	byLayer map[string]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{byLayer: make(map[string]Counters)}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byLayer[ev.Layer]
	if ev.Allowed {
		c.Allowed++
	} else {
		c.Denied++
	}
	s.byLayer[ev.Layer] = c
	return nil
}

// Snapshot returns a copy of the per-layer counters.
func (s *MemoryStatsStore) Snapshot() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Counters, len(s.byLayer))
	for k, v := range s.byLayer {
		out[k] = v
	}
	return out
}
