package diorama

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement this interface to integrate with monitoring
// systems like Prometheus.
type MetricsCollector interface {
	// RecordFilter is called after each filter operation.
	// matched is the number of documents selected out of total.
	RecordFilter(matched, total int, duration time.Duration, err error)

	// RecordReduce is called after each dimensionality reduction.
	RecordReduce(rows, components int, duration time.Duration, err error)

	// RecordPlan is called after each render planning pass.
	RecordPlan(perspectives, groups int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFilter(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordReduce(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPlan(int, int, time.Duration)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external
// dependencies.
type BasicMetricsCollector struct {
	FilterCount      atomic.Int64
	FilterErrors     atomic.Int64
	FilterMatched    atomic.Int64
	FilterTotalNanos atomic.Int64
	ReduceCount      atomic.Int64
	ReduceErrors     atomic.Int64
	ReduceTotalNanos atomic.Int64
	PlanCount        atomic.Int64
	PlanGroups       atomic.Int64
	PlanTotalNanos   atomic.Int64
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(matched, total int, duration time.Duration, err error) {
	b.FilterCount.Add(1)
	b.FilterMatched.Add(int64(matched))
	b.FilterTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FilterErrors.Add(1)
	}
}

// RecordReduce implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReduce(rows, components int, duration time.Duration, err error) {
	b.ReduceCount.Add(1)
	b.ReduceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReduceErrors.Add(1)
	}
}

// RecordPlan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPlan(perspectives, groups int, duration time.Duration) {
	b.PlanCount.Add(1)
	b.PlanGroups.Add(int64(groups))
	b.PlanTotalNanos.Add(duration.Nanoseconds())
}
