package utils

import (
	"sync"
	"time"
)

// Tracks performance metrics across the client engine
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

// OperationStats is a summarized view of one operation's latencies.
type OperationStats struct {
	Count   int
	Average time.Duration
	Max     time.Duration
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.operationTimes[operationName]; !exists {
		mc.operationTimes[operationName] = make([]int64, 0)
	}
	mc.operationTimes[operationName] = append(
		mc.operationTimes[operationName],
		duration.Nanoseconds(),
	)
}

// Snapshot returns per-operation latency summaries plus the global
// request/error counters. Used by the REPL stats command and the
// simulator's final report.
func (mc *MetricsCollector) Snapshot() (map[string]OperationStats, uint64, uint64) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	stats := make(map[string]OperationStats, len(mc.operationTimes))
	for name, samples := range mc.operationTimes {
		if len(samples) == 0 {
			continue
		}
		var total, max int64
		for _, ns := range samples {
			total += ns
			if ns > max {
				max = ns
			}
		}
		stats[name] = OperationStats{
			Count:   len(samples),
			Average: time.Duration(total / int64(len(samples))),
			Max:     time.Duration(max),
		}
	}
	return stats, mc.requestCount, mc.errorCount
}

// Uptime reports how long the collector (and so the engine) has been alive.
func (mc *MetricsCollector) Uptime() time.Duration {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return time.Since(mc.systemStartTime)
}
