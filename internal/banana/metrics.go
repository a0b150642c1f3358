package banana

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	editRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "banana_edit_requests_total",
		Help: "Image edit calls by outcome (success or failure kind).",
	}, []string{"outcome"})

	editDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "banana_edit_duration_seconds",
		Help:    "Wall time of image edit calls, including validation and decoding.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})
)

func observe(res *Result, elapsed time.Duration) {
	outcome := "success"
	if res.Failure != nil {
		outcome = string(res.Failure.Kind)
	}
	editRequests.WithLabelValues(outcome).Inc()
	editDuration.Observe(elapsed.Seconds())
}
