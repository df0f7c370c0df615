package tabgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordLoad is called after each dataset load.
	// rows is the cleaned row count, duration is the total time taken,
	// err is nil if successful.
	RecordLoad(rows int, duration time.Duration, err error)

	// RecordFilter is called after each filter evaluation.
	// matched is the size of the filtered set.
	RecordFilter(matched int, duration time.Duration)

	// RecordSimilar is called after each similarity lookup.
	// k is the number of neighbors requested.
	RecordSimilar(k int, duration time.Duration, err error)

	// RecordExport is called after each export.
	RecordExport(rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordFilter(int, time.Duration)         {}
func (NoopMetricsCollector) RecordSimilar(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordExport(int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadTotalNanos atomic.Int64
	FilterCount    atomic.Int64
	SimilarCount   atomic.Int64
	SimilarErrors  atomic.Int64
	SimilarTotalNs atomic.Int64
	ExportCount    atomic.Int64
	ExportErrors   atomic.Int64
}

// Stats is a point-in-time snapshot of collected metrics.
type Stats struct {
	LoadCount       int64
	LoadErrors      int64
	LoadAvgNanos    int64
	FilterCount     int64
	SimilarCount    int64
	SimilarErrors   int64
	SimilarAvgNanos int64
	ExportCount     int64
	ExportErrors    int64
}

func (m *BasicMetricsCollector) RecordLoad(rows int, d time.Duration, err error) {
	m.LoadCount.Add(1)
	m.LoadTotalNanos.Add(int64(d))
	if err != nil {
		m.LoadErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordFilter(matched int, d time.Duration) {
	m.FilterCount.Add(1)
}

func (m *BasicMetricsCollector) RecordSimilar(k int, d time.Duration, err error) {
	m.SimilarCount.Add(1)
	m.SimilarTotalNs.Add(int64(d))
	if err != nil {
		m.SimilarErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordExport(rows int, d time.Duration, err error) {
	m.ExportCount.Add(1)
	if err != nil {
		m.ExportErrors.Add(1)
	}
}

// GetStats returns a snapshot of the collected metrics.
func (m *BasicMetricsCollector) GetStats() Stats {
	s := Stats{
		LoadCount:     m.LoadCount.Load(),
		LoadErrors:    m.LoadErrors.Load(),
		FilterCount:   m.FilterCount.Load(),
		SimilarCount:  m.SimilarCount.Load(),
		SimilarErrors: m.SimilarErrors.Load(),
		ExportCount:   m.ExportCount.Load(),
		ExportErrors:  m.ExportErrors.Load(),
	}
	if s.LoadCount > 0 {
		s.LoadAvgNanos = m.LoadTotalNanos.Load() / s.LoadCount
	}
	if s.SimilarCount > 0 {
		s.SimilarAvgNanos = m.SimilarTotalNs.Load() / s.SimilarCount
	}
	return s
}
