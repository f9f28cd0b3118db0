package emitter

import (
	"sync"
	"time"
)

// EmitMetrics tracks emit counts and durations across runs.
type EmitMetrics struct {
	TotalEmits      int64
	Written         int64
	Unchanged       int64
	Failed          int64
	AverageDuration time.Duration
	TotalDuration   time.Duration
	mutex           sync.RWMutex
}

// NewEmitMetrics creates a new metrics tracker
func NewEmitMetrics() *EmitMetrics {
	return &EmitMetrics{}
}

// RecordEmit records one result.
func (m *EmitMetrics) RecordEmit(result EmitResult) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.TotalEmits++
	m.TotalDuration += result.Duration

	switch {
	case result.Error != nil:
		m.Failed++
	case result.Written:
		m.Written++
	default:
		m.Unchanged++
	}

	m.AverageDuration = m.TotalDuration / time.Duration(m.TotalEmits)
}

// GetSnapshot returns a snapshot of current metrics
func (m *EmitMetrics) GetSnapshot() EmitMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return EmitMetrics{
		TotalEmits:      m.TotalEmits,
		Written:         m.Written,
		Unchanged:       m.Unchanged,
		Failed:          m.Failed,
		AverageDuration: m.AverageDuration,
		TotalDuration:   m.TotalDuration,
	}
}

// Reset resets all metrics
func (m *EmitMetrics) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.TotalEmits = 0
	m.Written = 0
	m.Unchanged = 0
	m.Failed = 0
	m.AverageDuration = 0
	m.TotalDuration = 0
}

// UnchangedRate returns the share of emits that found the file up to date,
// as a percentage.
func (m *EmitMetrics) UnchangedRate() float64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.TotalEmits == 0 {
		return 0.0
	}
	return float64(m.Unchanged) / float64(m.TotalEmits) * 100.0
}
