package vfs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the collectors a FileSystem updates. Collectors are always
// created; they are only registered when a Registerer is supplied.
type metrics struct {
	accessDenied   *prometheus.CounterVec
	mounts         prometheus.Gauge
	asyncSubmitted *prometheus.CounterVec
	asyncCompleted prometheus.Counter
	asyncPending   prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		accessDenied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vfs_access_denied_total",
			Help: "Operations refused by the access guard.",
		}, []string{"op"}),
		mounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vfs_mounts",
			Help: "Containers currently in the search path.",
		}),
		asyncSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vfs_async_submitted_total",
			Help: "Asynchronous process requests accepted.",
		}, []string{"kind"}),
		asyncCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vfs_async_completed_total",
			Help: "Asynchronous process requests delivered by BeginFrame.",
		}),
		asyncPending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vfs_async_pending",
			Help: "Asynchronous process requests not yet delivered.",
		}),
	}
}
