package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operationsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "custody",
		Name:      "operations_total",
		Help:      "Number of custody operations by outcome.",
	},
	[]string{"operation", "result"},
)

func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	operationsCounter.WithLabelValues(operation, result).Inc()
}
