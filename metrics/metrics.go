// Package metrics exports handle lifecycle counters to Prometheus.
//
// A Collector implements handle.Observer. Attach it through handle.Options
// and every state derived from that box reports to it:
//
//	c := metrics.New(metrics.DefaultOptions())
//	if err := c.Register(prometheus.DefaultRegisterer); err != nil {
//	    return err
//	}
//	b := handle.NewWithOptions(fd, unix.Close, handle.Options[int]{Null: -1, Observer: c})
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wippyai/handlebox/handle"
)

// Options configures metric names.
type Options struct {
	Namespace string
	Subsystem string
	// ConstLabels are attached to every metric, e.g. the resource kind.
	ConstLabels prometheus.Labels
}

// DefaultOptions returns the default metric naming.
func DefaultOptions() Options {
	return Options{
		Namespace: "handlebox",
	}
}

// Collector counts handle lifecycle events.
type Collector struct {
	created   prometheus.Counter
	released  prometheus.Counter
	destroyed prometheus.Counter
	live      prometheus.Gauge
}

var _ handle.Observer = (*Collector)(nil)

// New creates an unregistered Collector.
func New(opts Options) *Collector {
	return &Collector{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "states_created_total",
			Help:        "Number of handle states allocated.",
			ConstLabels: opts.ConstLabels,
		}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "releases_total",
			Help:        "Number of release function invocations.",
			ConstLabels: opts.ConstLabels,
		}),
		destroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "states_destroyed_total",
			Help:        "Number of handle states torn down by their last holder.",
			ConstLabels: opts.ConstLabels,
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "live_states",
			Help:        "Number of handle states currently referenced by at least one box.",
			ConstLabels: opts.ConstLabels,
		}),
	}
}

// OnHandleEvent implements handle.Observer.
func (c *Collector) OnHandleEvent(e handle.Event) {
	switch e.Type {
	case handle.EventCreated:
		c.created.Inc()
		c.live.Inc()
	case handle.EventReleased:
		c.released.Inc()
	case handle.EventDestroyed:
		c.destroyed.Inc()
		c.live.Dec()
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.created.Describe(ch)
	c.released.Describe(ch)
	c.destroyed.Describe(ch)
	c.live.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.created.Collect(ch)
	c.released.Collect(ch)
	c.destroyed.Collect(ch)
	c.live.Collect(ch)
}

// Register adds the collector to r.
func (c *Collector) Register(r prometheus.Registerer) error {
	return r.Register(c)
}
