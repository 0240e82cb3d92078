// Package promhook exports connection events as Prometheus metrics.
package promhook

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/aerocache"
)

// Config holds metric naming.
type Config struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
}

func DefaultConfig() Config {
	return Config{Namespace: "aerocache", Subsystem: "connection"}
}

// Hooks implements aerocache.Hooks on a private registry.
type Hooks struct {
	registry *prometheus.Registry

	lookups        *prometheus.CounterVec
	corrupt        *prometheus.CounterVec
	storeFailures  *prometheus.CounterVec
	connectFailure prometheus.Counter
	ready          prometheus.Gauge
}

var _ aerocache.Hooks = (*Hooks)(nil)

func New(cfg Config) (*Hooks, error) {
	h := &Hooks{registry: prometheus.NewRegistry()}

	h.lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "lookups_total",
			Help:        "Completed Get calls by outcome",
			ConstLabels: cfg.ConstLabels,
		},
		[]string{"outcome"},
	)
	h.corrupt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "corrupt_envelopes_total",
			Help:        "Stored records that could not be decoded",
			ConstLabels: cfg.ConstLabels,
		},
		[]string{"reason"},
	)
	h.storeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "store_failures_total",
			Help:        "Failed driver calls by operation",
			ConstLabels: cfg.ConstLabels,
		},
		[]string{"op"},
	)
	h.connectFailure = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "connect_failures_total",
		Help:        "Failed Start attempts",
		ConstLabels: cfg.ConstLabels,
	})
	h.ready = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "ready",
		Help:        "1 while the connection holds a store handle",
		ConstLabels: cfg.ConstLabels,
	})

	for _, c := range []prometheus.Collector{h.lookups, h.corrupt, h.storeFailures, h.connectFailure, h.ready} {
		if err := h.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Registry returns the registry the metrics live on.
func (h *Hooks) Registry() *prometheus.Registry { return h.registry }

func (h *Hooks) Lookup(_, outcome string) { h.lookups.WithLabelValues(outcome).Inc() }

func (h *Hooks) CorruptEnvelope(_, reason string) { h.corrupt.WithLabelValues(reason).Inc() }

func (h *Hooks) StoreFailure(op aerocache.Op, _ string, _ error) {
	h.storeFailures.WithLabelValues(string(op)).Inc()
}

func (h *Hooks) ConnectFailure(error) { h.connectFailure.Inc() }

func (h *Hooks) ReadyChanged(ready bool) {
	if ready {
		h.ready.Set(1)
		return
	}
	h.ready.Set(0)
}
