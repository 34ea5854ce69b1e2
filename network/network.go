// Package network simulates a set of full nodes that share transactions but keep
// independent ledgers. There is no consensus between them.
package network

import (
	"context"
	"sync"
	"time"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/visualize"
	"github.com/Luismorlan/ledger_in_go/wallet"
	evbus "github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	TopicBlockMined     = "block:mined"
	TopicNewTransaction = "tx:new"
)

// BlockEvent is published on TopicBlockMined.
type BlockEvent struct {
	NodeID string
	// Address paid for the block.
	Miner        string
	Block        model.BlockView
	Transactions int
}

type Network struct {
	nodes   []*full_node.FullNode
	bus     evbus.Bus
	metrics *Metrics
	config  config.AppConfig
	logger  *zap.Logger

	// Protects events.
	m      sync.Mutex
	events []BlockEvent
}

// NewNetwork starts c.Nodes nodes, each with a fresh wallet, and subscribes them to the
// transaction topic.
func NewNetwork(c config.AppConfig, reg prometheus.Registerer, logger *zap.Logger) (*Network, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Network{
		bus:     evbus.New(),
		metrics: NewMetrics(reg),
		config:  c,
		logger:  logger,
	}
	for i := 0; i < c.Nodes; i++ {
		w, err := wallet.NewWallet(logger)
		if err != nil {
			return nil, errors.Wrapf(err, "wallet of node %d", i)
		}
		node, err := full_node.NewFullNode(c, w, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", i)
		}
		if err := n.bus.Subscribe(TopicNewTransaction, n.deliverTo(node)); err != nil {
			return nil, errors.Wrap(err, "subscribe transactions")
		}
		n.metrics.Height.WithLabelValues(node.ID()).Set(0)
		n.nodes = append(n.nodes, node)
	}
	if err := n.bus.Subscribe(TopicBlockMined, n.record); err != nil {
		return nil, errors.Wrap(err, "subscribe blocks")
	}
	return n, nil
}

// deliverTo adds broadcast transactions to the pool of node, skipping the one it sent.
func (n *Network) deliverTo(node *full_node.FullNode) func(tx *model.Transaction, origin string) {
	return func(tx *model.Transaction, origin string) {
		if origin == node.ID() {
			return
		}
		if err := node.AddTransactionToPool(tx); err != nil {
			n.metrics.TransactionsRejected.Inc()
			n.logger.Warn("node rejected transaction",
				zap.String("node", node.ID()),
				zap.String("tx", tx.ID),
				zap.Error(err))
		}
	}
}

func (n *Network) record(e BlockEvent) {
	n.m.Lock()
	defer n.m.Unlock()
	n.events = append(n.events, e)
}

// Subscribe registers fn on topic. fn must take the arguments published on that topic.
func (n *Network) Subscribe(topic string, fn interface{}) error {
	return n.bus.Subscribe(topic, fn)
}

func (n *Network) Nodes() []*full_node.FullNode {
	return append([]*full_node.FullNode(nil), n.nodes...)
}

func (n *Network) node(i int) (*full_node.FullNode, error) {
	if i < 0 || i >= len(n.nodes) {
		return nil, errors.Errorf("node %d does not exist, network has %d nodes", i, len(n.nodes))
	}
	return n.nodes[i], nil
}

// Broadcast hands tx to every node but origin.
func (n *Network) Broadcast(tx *model.Transaction, origin string) {
	n.metrics.TransactionsBroadcast.Inc()
	n.bus.Publish(TopicNewTransaction, tx, origin)
}

// Transfer signs a transfer from the wallet of node from to the address of node to, queues
// it on from and broadcasts it.
func (n *Network) Transfer(from, to int, amount int64, description string) (*model.Transaction, error) {
	sender, err := n.node(from)
	if err != nil {
		return nil, err
	}
	recipient, err := n.node(to)
	if err != nil {
		return nil, err
	}
	tx, err := sender.Transfer(recipient.Address(), amount, description)
	if err != nil {
		return nil, err
	}
	n.Broadcast(tx, sender.ID())
	return tx, nil
}

// MineRound has every node mine one block out of its pending pool.
func (n *Network) MineRound() ([]BlockEvent, error) {
	events := make([]BlockEvent, 0, len(n.nodes))
	for _, node := range n.nodes {
		start := time.Now()
		b, err := node.CreateNewBlock()
		if err != nil {
			return events, errors.Wrapf(err, "node %s", node.ID())
		}
		n.metrics.MineDuration.Observe(time.Since(start).Seconds())
		n.metrics.BlocksMined.Inc()
		n.metrics.Height.WithLabelValues(node.ID()).Set(float64(b.Index))

		e := BlockEvent{
			NodeID:       node.ID(),
			Miner:        node.Address(),
			Block:        b.View(),
			Transactions: len(b.Transactions),
		}
		n.bus.Publish(TopicBlockMined, e)
		events = append(events, e)
	}
	return events, nil
}

// Run mines a round on every tick until rounds are done or ctx is cancelled. rounds <= 0
// runs until ctx is cancelled. Cancellation is observed between rounds.
func (n *Network) Run(ctx context.Context, rounds int) error {
	ticker := time.NewTicker(time.Duration(n.config.MineIntervalMs) * time.Millisecond)
	defer ticker.Stop()
	for done := 0; rounds <= 0 || done < rounds; done++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if _, err := n.MineRound(); err != nil {
			return err
		}
		n.logger.Debug("mined round", zap.Int("round", done+1))
	}
	return nil
}

// Events returns every block event seen so far.
func (n *Network) Events() []BlockEvent {
	n.m.Lock()
	defer n.m.Unlock()
	return append([]BlockEvent(nil), n.events...)
}

// Report describes every node as seen by its own ledger.
func (n *Network) Report() ([]visualize.NodeRow, error) {
	rows := make([]visualize.NodeRow, 0, len(n.nodes))
	for _, node := range n.nodes {
		balance, err := node.GetBalance(node.Address())
		if err != nil {
			return nil, errors.Wrapf(err, "balance of node %s", node.ID())
		}
		tail, err := node.Tail()
		if err != nil {
			return nil, errors.Wrapf(err, "tail of node %s", node.ID())
		}
		rows = append(rows, visualize.NodeRow{
			ID:           node.ID(),
			Address:      node.Address(),
			Height:       node.GetHeight(),
			Balance:      balance,
			LastBlockTxs: len(tail.Transactions),
			Valid:        node.IsValid(),
		})
	}
	return rows, nil
}

func (n *Network) ReportTable() (string, error) {
	rows, err := n.Report()
	if err != nil {
		return "", err
	}
	return visualize.NodeTable(rows)
}
