// Package metrics defines the Prometheus collectors shared by the reference
// client, the tooltip resolver and the HTTP service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kbtip"

var (
	UpstreamCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_calls_total",
		Help:      "Total calls made to upstream reference endpoints",
	}, []string{"endpoint", "status"})

	UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_call_duration_seconds",
		Help:      "Upstream call latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	TooltipRenders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tooltip_renders_total",
		Help:      "Tooltip content resolutions by kind and outcome",
	}, []string{"kind", "outcome"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests served",
	}, []string{"method", "route", "status"})
)

// Register adds every collector to reg. Collectors already registered with
// reg are tolerated so tests can build several servers.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{UpstreamCalls, UpstreamDuration, TooltipRenders, HTTPRequests} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
