package application

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeSubmitted = "submitted"
	outcomeFinalized = "finalized"
	outcomeFailed    = "failed"
)

var (
	transfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentorwallet",
			Name:      "transfers_total",
			Help:      "Number of balancing workflow runs, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	signedIntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentorwallet",
			Name:      "signed_intents_total",
			Help:      "Number of intents signed, by proof marker.",
		},
		[]string{"marker"},
	)
)

func init() {
	prometheus.MustRegister(transfersTotal, signedIntentsTotal)
}

func recordOutcome(kind, outcome string) {
	transfersTotal.WithLabelValues(kind, outcome).Inc()
}
