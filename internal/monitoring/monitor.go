package monitoring

import (
	"sync"
	"time"
)

// Monitor collects and provides operational metrics for the roster
// service: parse outcomes, query volumes, snapshot sizes.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordParse records the outcome of one roster upload.
func (m *Monitor) RecordParse(format string, success bool, staff, records int) {
	m.RecordMetric("last_parse_format", format)
	m.RecordMetric("last_parse_success", success)
	m.RecordMetric("last_parse_staff", staff)
	m.RecordMetric("last_parse_records", records)
	m.RecordMetric("last_parse_at", time.Now().Format(time.RFC3339))

	ParsesTotal.WithLabelValues(format, boolLabel(success)).Inc()
}

// RecordQuery records one answered duty question.
func (m *Monitor) RecordQuery(followUp bool) {
	m.RecordMetric("last_query_at", time.Now().Format(time.RFC3339))

	QueriesTotal.WithLabelValues(boolLabel(followUp)).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
