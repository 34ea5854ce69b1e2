package network

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	BlocksMined           prometheus.Counter
	TransactionsBroadcast prometheus.Counter
	// Deliveries a receiving node refused.
	TransactionsRejected prometheus.Counter
	Height               *prometheus.GaugeVec
	MineDuration         prometheus.Histogram
}

// NewMetrics registers the simulation metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BlocksMined: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "network",
			Name:      "blocks_mined_total",
			Help:      "Total number of blocks mined by all nodes",
		}),
		TransactionsBroadcast: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "network",
			Name:      "transactions_broadcast_total",
			Help:      "Total number of transactions broadcast to the network",
		}),
		TransactionsRejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "network",
			Name:      "transactions_rejected_total",
			Help:      "Total number of broadcast transactions a node refused",
		}),
		Height: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ledger",
			Subsystem: "network",
			Name:      "height",
			Help:      "Index of the last block of each node",
		}, []string{"node"}),
		MineDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ledger",
			Subsystem: "network",
			Name:      "mine_duration_seconds",
			Help:      "Time spent mining one block",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
