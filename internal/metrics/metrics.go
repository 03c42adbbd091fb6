package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus metrics for the dashboard.
type Collector struct {
	loads       *prometheus.CounterVec
	mutations   *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentdesk_loads_total",
				Help: "Container loads by loader and outcome",
			},
			[]string{"loader", "outcome"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentdesk_mutations_total",
				Help: "Form submissions and status actions by mutator and outcome",
			},
			[]string{"mutator", "outcome"},
		),
		apiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rentdesk_api_request_duration_seconds",
				Help:    "Duration of requests to the tenancy API in seconds",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(c.loads, c.mutations, c.apiDuration)

	return c
}

// LoadFinished counts one loader run.
func (c *Collector) LoadFinished(loader, outcome string) {
	c.loads.WithLabelValues(loader, outcome).Inc()
}

// MutationFinished counts one mutator or action run.
func (c *Collector) MutationFinished(mutator, outcome string) {
	c.mutations.WithLabelValues(mutator, outcome).Inc()
}

// ObserveAPI records an API request. Status 0 means the request never got a
// response.
func (c *Collector) ObserveAPI(method, path string, status int, d time.Duration) {
	c.apiDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(d.Seconds())
}
