// Package metrics 는 BFF 의 prometheus 수집기다.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bff",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of BFF requests broken down by method, route and status.",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bff",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "BFF request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	aggregateLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bff",
		Subsystem: "aggregate",
		Name:      "duration_seconds",
		Help:      "Latency of composite responses broken down by aggregate and result.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"aggregate", "result"})

	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bff",
		Subsystem: "reference_cache",
		Name:      "requests_total",
		Help:      "Reference cache lookups broken down by reference list and hit/miss.",
	}, []string{"reference", "result"})

	cacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bff",
		Subsystem: "reference_cache",
		Name:      "invalidations_total",
		Help:      "Reference cache invalidations broken down by reference list and reason.",
	}, []string{"reference", "reason"})

	microfrontendMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bff",
		Subsystem: "microfrontend",
		Name:      "messages_total",
		Help:      "Relayed microfrontend messages broken down by type and outcome.",
	}, []string{"type", "outcome"})
)

func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveAggregate 는 조합 응답 하나를 기록한다. err 로 result 라벨을 정한다.
func ObserveAggregate(name string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	aggregateLatency.WithLabelValues(name, result).Observe(time.Since(start).Seconds())
}

func RecordCacheRequest(reference string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequests.WithLabelValues(reference, result).Inc()
}

func RecordCacheInvalidate(reference, reason string) {
	if reason == "" {
		reason = "manual"
	}
	cacheInvalidations.WithLabelValues(reference, reason).Inc()
}

func RecordMicrofrontendMessage(msgType, outcome string) {
	if msgType == "" {
		msgType = "unknown"
	}
	microfrontendMessages.WithLabelValues(msgType, outcome).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
