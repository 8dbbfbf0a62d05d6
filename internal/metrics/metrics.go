package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CoordinatesResolved *prometheus.CounterVec
	ResolverErrors      prometheus.Counter
	RequestSeconds      *prometheus.HistogramVec
	ActiveRequesters    prometheus.Gauge
	RecordsPersisted    prometheus.Counter
	SinkErrors          prometheus.Counter
	QueueDepth          prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CoordinatesResolved: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_coordinates_resolved_total",
			Help: "Total number of coordinates sent to the resolver, by outcome.",
		}, []string{"status"}),
		ResolverErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meridian_resolver_errors_total",
			Help: "Total number of errors received from the reverse geocoding provider.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meridian_resolver_request_duration_seconds",
			Help:    "Duration of requests to the reverse geocoding provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveRequesters: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meridian_active_requesters",
			Help: "Current number of requester tasks walking their range.",
		}),
		RecordsPersisted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meridian_records_persisted_total",
			Help: "Total number of address records appended to the sink.",
		}),
		SinkErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meridian_sink_errors_total",
			Help: "Total number of failed sink appends.",
		}),
		QueueDepth: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meridian_queue_depth",
			Help: "Number of resolved address records waiting for the writer.",
		}),
	}
}
