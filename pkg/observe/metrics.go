// Package observe holds the logging and Prometheus setup shared by the binaries.
package observe

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RemoteFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landing_console_remote_fetch_total",
		Help: "Remote configuration fetches by outcome (found, not_found, error, throttled).",
	}, []string{"outcome"})

	RemoteUpserts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landing_console_remote_upsert_total",
		Help: "Remote configuration upserts by outcome.",
	}, []string{"outcome"})

	LocalWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "landing_console_local_write_failures_total",
		Help: "Local cache writes that failed and were swallowed.",
	})

	Snapshots = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landing_console_snapshots_total",
		Help: "Share-code snapshot operations by kind and outcome.",
	}, []string{"kind", "outcome"})

	SyncState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "landing_console_sync_state",
		Help: "1 for the synchronizer's current state, 0 otherwise.",
	}, []string{"state"})
)

var registerOnce sync.Once

// Register adds the collectors to the default registry; safe to call twice
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RemoteFetches, RemoteUpserts, LocalWriteFailures, Snapshots, SyncState)
	})
}

// Handler serves the default registry
func Handler() http.Handler { return promhttp.Handler() }
