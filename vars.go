package adrules

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all counters maintained by the library. A run is a short-lived
// batch so nothing is served from here; use WriteMetrics to hand the values to
// a node-exporter textfile collector.
var Metrics = prometheus.NewRegistry()

var (
	varsMu sync.Mutex
	vars   = make(map[string]*prometheus.CounterVec)
)

// Get a *prometheus.CounterVec with the given path, registering it on first use.
func getVarCounter(base string, name string, help string, labels ...string) *prometheus.CounterVec {
	fullname := "adrules_" + base + "_" + name
	varsMu.Lock()
	defer varsMu.Unlock()
	if v, ok := vars[fullname]; ok {
		return v
	}
	v := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: fullname,
		Help: help,
	}, labels)
	Metrics.MustRegister(v)
	vars[fullname] = v
	return v
}

// WriteMetrics writes the current value of all counters to filename in the
// Prometheus text format. The file is replaced atomically.
func WriteMetrics(filename string) error {
	return prometheus.WriteToTextfile(filename, Metrics)
}
