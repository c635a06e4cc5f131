// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    prometheus.Histogram
	InquiriesSubmitted prometheus.Counter
	EnquiriesSubmitted prometheus.Counter
	MailSent           prometheus.Counter
	MailFailed         prometheus.Counter
	CacheInvalidations prometheus.Counter
}

// New registers the service metrics under namespace on reg and returns them.
// Production passes prometheus.DefaultRegisterer; tests pass a fresh registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by status class",
		}, []string{"status"}),
		RequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}),
		InquiriesSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_inquiries_total",
			Help:      "Contact inquiries persisted",
		}),
		EnquiriesSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "package_enquiries_total",
			Help:      "Package enquiries persisted",
		}),
		MailSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_mails_sent_total",
			Help:      "Notification emails delivered",
		}),
		MailFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_mails_failed_total",
			Help:      "Notification emails that failed to send",
		}),
		CacheInvalidations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Public-route cache invalidations triggered by mutations",
		}),
	}
}
