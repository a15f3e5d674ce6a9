// Package metrics counts transfer events and writes them in the Prometheus
// text format for the node exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/moffa90/go-hexflash/flasher"
	"github.com/moffa90/go-hexflash/ihex"
)

const namespace = "hexflash"

// Collector holds the transfer metrics in a private registry.
type Collector struct {
	registry *prometheus.Registry

	sent     *prometheus.CounterVec
	acked    *prometheus.CounterVec
	nacks    prometheus.Counter
	timeouts prometheus.Counter
	bytes    prometheus.Counter
	attempts prometheus.Histogram

	duration prometheus.Gauge
	success  prometheus.Gauge
}

// New creates a Collector with all metrics registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_sent_total",
			Help:      "Records written to the link, including resends",
		}, []string{"type"}),
		acked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_acked_total",
			Help:      "Records acknowledged by the device",
		}, []string{"type"}),
		nacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nacks_total",
			Help:      "Replies that did not acknowledge the record",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ack_timeouts_total",
			Help:      "Attempts that received no reply within the read timeout",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_bytes_acked_total",
			Help:      "Image bytes carried by acknowledged data records",
		}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attempts_per_record",
			Help:      "Sends needed until a record was acknowledged",
			Buckets:   []float64{1, 2, 3, 4, 6, 8},
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_transfer_duration_seconds",
			Help:      "Duration of the last transfer",
		}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_transfer_success",
			Help:      "1 if the last transfer completed, 0 otherwise",
		}),
	}

	c.registry.MustRegister(c.sent, c.acked, c.nacks, c.timeouts, c.bytes, c.attempts, c.duration, c.success)
	return c
}

// Observe records a handshake event. It can be passed to
// flasher.WithEventCallback.
func (c *Collector) Observe(ev flasher.Event) {
	rt := ev.Record.Type().String()
	switch ev.Kind {
	case flasher.EventSent:
		c.sent.WithLabelValues(rt).Inc()
	case flasher.EventAcked:
		c.acked.WithLabelValues(rt).Inc()
		c.attempts.Observe(float64(ev.Attempt))
		if ev.Record.Type() == ihex.Data {
			c.bytes.Add(float64(ev.Record.Len()))
		}
	case flasher.EventNack:
		c.nacks.Inc()
	case flasher.EventTimeout:
		c.timeouts.Inc()
	}
}

// ObserveTransfer records the outcome of a Transmit call.
func (c *Collector) ObserveTransfer(stats flasher.Stats, err error) {
	c.duration.Set(stats.Elapsed.Seconds())
	if err != nil {
		c.success.Set(0)
		return
	}
	c.success.Set(1)
}

// Gatherer exposes the registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile atomically writes all metrics to path.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.Gatherer())
}
