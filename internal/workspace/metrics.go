package workspace

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var openWorkspaces = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffsync",
	Subsystem: "workspace",
	Name:      "open",
	Help:      "Number of browser sessions with live employee and form state.",
})
