package utils

import (
	"sync"
	"time"
)

// Tracks performance metrics across the client core
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	startTime time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes: make(map[string][]int64),
		startTime:      time.Now(),
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

// OperationStats summarizes the recorded latencies for one operation.
type OperationStats struct {
	Count   int
	Average time.Duration
	Max     time.Duration
}

func (mc *MetricsCollector) GetOperationStats(operationName string) OperationStats {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	times := mc.operationTimes[operationName]
	if len(times) == 0 {
		return OperationStats{}
	}

	var total, max int64
	for _, t := range times {
		total += t
		if t > max {
			max = t
		}
	}
	return OperationStats{
		Count:   len(times),
		Average: time.Duration(total / int64(len(times))),
		Max:     time.Duration(max),
	}
}

func (mc *MetricsCollector) Counts() (requests uint64, errors uint64) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.requestCount, mc.errorCount
}

func (mc *MetricsCollector) Uptime() time.Duration {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return time.Since(mc.startTime)
}
