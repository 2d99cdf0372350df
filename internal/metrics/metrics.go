package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculations counts engine invocations by kind and status.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fratak_calculations_total",
			Help: "Total number of calculation invocations",
		},
		[]string{"kind", "status"},
	)

	// CalculationErrors counts rejected or failed calculations by type.
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fratak_calculation_errors_total",
			Help: "Number of calculation errors",
		},
		[]string{"kind", "error_type"},
	)

	// HTTPRequests counts HTTP requests by endpoint and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fratak_http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"endpoint", "status"},
	)

	// ScheduleMonths observes the length of generated schedules.
	ScheduleMonths = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fratak_schedule_months",
			Help:    "Number of months in generated schedules",
			Buckets: []float64{60, 120, 180, 240, 300, 360, 480, 600},
		},
	)
)
