// Package metrics defines the Prometheus collectors for the KYC onboarding
// backend. All metric names, labels and help strings live here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kyc"

// RequestsTotal counts handled HTTP requests.
// Labels:
//   - method: HTTP method
//   - path: the matched route pattern, not the raw URL
//   - status: numeric HTTP status
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of handled HTTP requests.",
	},
	[]string{"method", "path", "status"},
)

// RequestDuration measures request handling latency per route.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// SubmissionsTotal counts document submission attempts.
// Label:
//   - result: "accepted", "blocked" (already approved), "rejected_type",
//     or "failed"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_submissions_total",
		Help:      "Total number of KYC document submission attempts.",
	},
	[]string{"result"},
)

// DecisionsTotal counts admin review decisions.
// Label:
//   - decision: "APPROVED" or "REJECTED"
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_decisions_total",
		Help:      "Total number of admin KYC review decisions applied.",
	},
	[]string{"decision"},
)
