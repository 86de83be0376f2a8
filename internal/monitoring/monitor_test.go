package monitoring

import (
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordParse(t *testing.T) {
	m := NewMonitor()

	m.RecordParse("week-columns", true, 12, 70)

	metrics := m.GetMetrics()

	value, exists := metrics["last_parse_format"]
	if !exists {
		t.Fatalf("Expected 'last_parse_format' to be present in metrics, but it was not")
	}
	if value != "week-columns" {
		t.Errorf("Expected 'last_parse_format' to be 'week-columns', but got %v", value)
	}

	if value, _ := metrics["last_parse_staff"]; value != 12 {
		t.Errorf("Expected 'last_parse_staff' to be 12, but got %v", value)
	}

	_, exists = metrics["last_parse_at"]
	if !exists {
		t.Errorf("Expected 'last_parse_at' to be present in metrics, but it was not")
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
