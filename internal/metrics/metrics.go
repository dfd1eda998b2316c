// Package metrics exposes Prometheus counters for the monitor loop.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Ticks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trendwatch_ticks_total",
		Help: "Completed monitor ticks per symbol.",
	}, []string{"symbol"})

	Signals = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trendwatch_signals_total",
		Help: "Signals produced by the crossover evaluation.",
	}, []string{"symbol", "signal"})

	Alerts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trendwatch_alerts_total",
		Help: "Alerts delivered after deduplication.",
	}, []string{"symbol", "signal"})

	FetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trendwatch_fetch_errors_total",
		Help: "Failed market data fetches per symbol.",
	}, []string{"symbol"})
)

func init() {
	prometheus.MustRegister(Ticks, Signals, Alerts, FetchErrors)
}

// Serve starts the /metrics endpoint in a background goroutine and
// returns the server for shutdown.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("[INFO] metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()
	return srv
}
