// Package metrics defines the gateway's custom Prometheus metrics. They are
// registered on the default registry through promauto and served on /metrics
// next to the echoprometheus HTTP metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "microfin_gateway"

// LoginAttemptsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid" (rejected before any upstream call),
//     "rejected" (upstream said no) or "network"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RefreshTotal counts access-token refreshes made while proxying. Silent
// refreshes at bootstrap show up in BootstrapsTotal instead.
// Labels:
//   - trigger: "expired" or "unauthorized"
//   - outcome: "success" or "failure"
var RefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_total",
		Help:      "Total number of refresh attempts, by trigger and outcome.",
	},
	[]string{"trigger", "outcome"},
)

// BootstrapsTotal counts completed session bootstraps by terminal state.
var BootstrapsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootstraps_total",
		Help:      "Total number of session bootstraps, by terminal state.",
	},
	[]string{"state"},
)

// GuardDenialsTotal counts requests turned away by the route guard or role checks.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of guarded requests denied, by reason.",
	},
	[]string{"reason"},
)

// UpstreamRequestDuration measures round trips to the upstream API.
// Labels:
//   - operation: "login", "refresh", "tenant" or "resource"
//   - status: HTTP status code, or "error" when no response arrived
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the upstream API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "status"},
)

// TrackActiveDevices exposes count as the number of devices held in the
// session registry. Call it once at startup.
func TrackActiveDevices(count func() int) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_devices",
			Help:      "Number of devices with an in-memory session.",
		},
		func() float64 { return float64(count()) },
	)
}

// ObserveRefresh is registered on the resource service.
func ObserveRefresh(trigger string, ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	RefreshTotal.WithLabelValues(trigger, outcome).Inc()
}

// ObserveUpstream matches upstream.Observer.
func ObserveUpstream(operation string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	UpstreamRequestDuration.WithLabelValues(operation, code).Observe(elapsed.Seconds())
}
