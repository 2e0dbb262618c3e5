package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RateLimitAllowed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bettrack_rate_limit_allowed_total",
		Help: "Requests admitted by the rate limiter, by limiter name.",
	}, []string{"limiter"})

	RateLimitRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bettrack_rate_limit_rejected_total",
		Help: "Requests rejected by the rate limiter, by limiter name.",
	}, []string{"limiter"})
)
