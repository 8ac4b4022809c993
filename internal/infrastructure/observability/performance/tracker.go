// Package performance provides lightweight operation tracking for Tiendo
// request handling.
package performance

import (
	"sync"
	"time"
)

// Marker tracks a single operation from start to completion.
type Marker struct {
	Operation string         `json:"operation"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Duration  time.Duration  `json:"duration"`
	Success   bool           `json:"success"`
	Metadata  map[string]any `json:"metadata,omitempty"`

	tracker *Tracker
	done    bool
	mu      sync.Mutex
}

// Complete finishes the marker and records it with the tracker.
func (m *Marker) Complete() {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return
	}
	m.done = true
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.mu.Unlock()

	if m.tracker != nil {
		m.tracker.record(m)
	}
}

// SetSuccess marks whether the tracked operation succeeded.
func (m *Marker) SetSuccess(success bool) {
	m.mu.Lock()
	m.Success = success
	m.mu.Unlock()
}

// SetMetadata attaches a key/value pair to the marker.
func (m *Marker) SetMetadata(key string, value any) {
	m.mu.Lock()
	m.Metadata[key] = value
	m.mu.Unlock()
}

// OperationStats aggregates completed markers for one operation name.
type OperationStats struct {
	Operation     string        `json:"operation"`
	Count         int64         `json:"count"`
	Failures      int64         `json:"failures"`
	TotalDuration time.Duration `json:"totalDuration"`
	MaxDuration   time.Duration `json:"maxDuration"`
}

// AverageDuration returns the mean duration of the operation.
func (s *OperationStats) AverageDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// Tracker aggregates performance markers per operation.
type Tracker struct {
	stats   map[string]*OperationStats
	started time.Time
	mu      sync.RWMutex
}

// NewTracker creates a new performance tracker.
func NewTracker() *Tracker {
	return &Tracker{
		stats:   make(map[string]*OperationStats),
		started: time.Now(),
	}
}

// StartOperation creates a new performance marker for an operation.
func (t *Tracker) StartOperation(operation string) *Marker {
	return &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true,
		tracker:   t,
	}
}

func (t *Tracker) record(m *Marker) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.stats[m.Operation]
	if !ok {
		stats = &OperationStats{Operation: m.Operation}
		t.stats[m.Operation] = stats
	}

	stats.Count++
	if !m.Success {
		stats.Failures++
	}
	stats.TotalDuration += m.Duration
	if m.Duration > stats.MaxDuration {
		stats.MaxDuration = m.Duration
	}
}

// Snapshot returns a copy of the aggregated stats for every operation.
func (t *Tracker) Snapshot() map[string]OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]OperationStats, len(t.stats))
	for name, stats := range t.stats {
		out[name] = *stats
	}
	return out
}

// Uptime reports how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
