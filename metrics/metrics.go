// Package metrics instruments the kernel scheduler with Prometheus
// collectors: how long each phase takes, how many lanes are active, how
// deep connection queues run, and how many destructors fire. None of
// this is required for correctness; it is the ambient observability
// layer every long-running engine in the retrieval pack carries.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles every collector one invocation of the engine reports
// into. A nil *Registry (the zero value's pointer) is valid and simply
// discards every observation, so callers that don't care about metrics
// never have to construct one.
type Registry struct {
	PhaseDuration   *prometheus.HistogramVec
	ActiveLanes     prometheus.Gauge
	QueueDepth      *prometheus.GaugeVec
	DestroyedTotal  *prometheus.CounterVec
}

// NewRegistry creates and registers a fresh Registry against reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the default
// global registry.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cru",
			Subsystem: "kernel",
			Name:      "phase_duration_seconds",
			Help:      "Wall-clock duration of one phase across all lanes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),
		ActiveLanes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cru",
			Subsystem: "kernel",
			Name:      "active_lanes",
			Help:      "Number of lane workers currently running a phase task.",
		}),
		QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cru",
			Subsystem: "kernel",
			Name:      "connection_queue_depth",
			Help:      "Pending entries on a lane's connection queue.",
		}, []string{"lane"}),
		DestroyedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cru",
			Subsystem: "kernel",
			Name:      "destroyed_total",
			Help:      "Destructor invocations, partitioned by value kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(r.PhaseDuration, r.ActiveLanes, r.QueueDepth, r.DestroyedTotal)
	}
	return r
}

func (r *Registry) observePhase(phase string, seconds float64) {
	if r == nil {
		return
	}
	r.PhaseDuration.WithLabelValues(phase).Observe(seconds)
}

// ObservePhaseDuration records seconds spent in the named phase. Safe on
// a nil Registry.
func (r *Registry) ObservePhaseDuration(phase string, seconds float64) {
	r.observePhase(phase, seconds)
}

// SetActiveLanes records how many lane workers are currently running.
// Safe on a nil Registry.
func (r *Registry) SetActiveLanes(n int) {
	if r == nil {
		return
	}
	r.ActiveLanes.Set(float64(n))
}

// SetQueueDepth records one lane's current connection queue depth. Safe
// on a nil Registry.
func (r *Registry) SetQueueDepth(lane int, depth int) {
	if r == nil {
		return
	}
	r.QueueDepth.WithLabelValues(laneLabel(lane)).Set(float64(depth))
}

// IncDestroyed records one destructor invocation of the given kind
// ("vertex" or "edge"). Safe on a nil Registry.
func (r *Registry) IncDestroyed(kind string) {
	if r == nil {
		return
	}
	r.DestroyedTotal.WithLabelValues(kind).Inc()
}

func laneLabel(lane int) string {
	return strconv.Itoa(lane)
}
