package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docuvault", Name: "documents_created_total", Help: "Number of documents created."},
	)
	DocumentsUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docuvault", Name: "documents_updated_total", Help: "Number of documents updated."},
	)
	DocumentsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docuvault", Name: "documents_deleted_total", Help: "Number of documents deleted."},
	)
	AccessDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docuvault", Name: "access_denied_total", Help: "Number of requests rejected by an access check."},
		[]string{"gate"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docuvault", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docuvault", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentsCreated)
	reg.MustRegister(DocumentsUpdated)
	reg.MustRegister(DocumentsDeleted)
	reg.MustRegister(AccessDenied)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
