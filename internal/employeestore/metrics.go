package employeestore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staffsync",
		Subsystem: "employee_store",
		Name:      "actions_total",
		Help:      "Total number of employee store actions broken down by action and result.",
	}, []string{"action", "result"})

	storeActionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "staffsync",
		Subsystem: "employee_store",
		Name:      "action_duration_seconds",
		Help:      "Latency of record store calls made by employee store actions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})
)

func recordAction(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeActions.WithLabelValues(action, result).Inc()
}
