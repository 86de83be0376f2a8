package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors exposed on the metrics side server.
var (
	ParsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brigade_roster_parses_total",
		Help: "Roster uploads parsed, by detected format and outcome.",
	}, []string{"format", "success"})

	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brigade_duty_queries_total",
		Help: "Duty questions answered, split by follow-up status.",
	}, []string{"follow_up"})

	SnapshotStaff = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brigade_snapshot_staff",
		Help: "Unique staff in the most recently stored roster snapshot.",
	})
)
