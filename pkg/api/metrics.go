package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the server's Prometheus collectors. Each server carries its
// own registry so multiple instances can coexist in one process.
type metrics struct {
	registry       *prometheus.Registry
	debatesCreated prometheus.Counter
	turnsGenerated prometheus.Counter
	debateRuns     *prometheus.CounterVec
	adjudications  *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		debatesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parley_debates_created_total",
			Help: "Number of debates created.",
		}),
		turnsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parley_turns_generated_total",
			Help: "Number of debate turns generated.",
		}),
		debateRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parley_debate_runs_total",
			Help: "Number of debate runs, by outcome.",
		}, []string{"outcome"}),
		adjudications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parley_adjudications_total",
			Help: "Number of adjudications, by winner.",
		}, []string{"winner"}),
	}

	m.registry.MustRegister(m.debatesCreated, m.turnsGenerated, m.debateRuns, m.adjudications)
	return m
}
