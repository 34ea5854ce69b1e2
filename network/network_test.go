package network

import (
	"context"
	"testing"
	"time"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNetwork(t *testing.T, nodes int) *Network {
	c := config.Default()
	c.Nodes = nodes
	c.MineIntervalMs = 5
	n, err := NewNetwork(c, prometheus.NewRegistry(), nil)
	require.NoError(t, err)
	return n
}

func TestNewNetwork(t *testing.T) {
	n := createTestNetwork(t, 3)
	nodes := n.Nodes()
	require.Len(t, nodes, 3)
	assert.NotEqual(t, nodes[0].Address(), nodes[1].Address())
	assert.NotEqual(t, nodes[0].ID(), nodes[1].ID())

	c := config.Default()
	c.Nodes = 0
	_, err := NewNetwork(c, prometheus.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestMineRound(t *testing.T) {
	n := createTestNetwork(t, 3)
	var seen []BlockEvent
	require.NoError(t, n.Subscribe(TopicBlockMined, func(e BlockEvent) {
		seen = append(seen, e)
	}))

	events, err := n.MineRound()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, events, seen)
	assert.Equal(t, events, n.Events())
	for i, node := range n.Nodes() {
		assert.Equal(t, node.ID(), events[i].NodeID)
		assert.Equal(t, node.Address(), events[i].Miner)
		assert.Equal(t, 1, events[i].Transactions)
		assert.Equal(t, int64(1), node.GetHeight())
		assert.Equal(t, 1.0, testutil.ToFloat64(n.metrics.Height.WithLabelValues(node.ID())))
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(n.metrics.BlocksMined))
}

func TestTransferReachesEveryNode(t *testing.T) {
	n := createTestNetwork(t, 3)
	_, err := n.MineRound()
	require.NoError(t, err)

	_, err = n.Transfer(0, 1, 25, "coffee")
	require.NoError(t, err)
	for _, node := range n.Nodes() {
		assert.Len(t, node.PendingTransactions(), 2)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(n.metrics.TransactionsBroadcast))
	assert.Equal(t, 0.0, testutil.ToFloat64(n.metrics.TransactionsRejected))

	events, err := n.MineRound()
	require.NoError(t, err)
	for _, e := range events {
		assert.Equal(t, 2, e.Transactions)
	}

	nodes := n.Nodes()
	for _, node := range nodes {
		sender, err := node.GetBalance(nodes[0].Address())
		require.NoError(t, err)
		recipient, err := node.GetBalance(nodes[1].Address())
		require.NoError(t, err)
		if node == nodes[0] {
			assert.Equal(t, int64(175), sender.Amount)
		} else {
			assert.Equal(t, int64(-25), sender.Amount)
		}
		if node == nodes[1] {
			assert.Equal(t, int64(225), recipient.Amount)
		} else {
			assert.Equal(t, int64(25), recipient.Amount)
		}
		assert.True(t, node.IsValid())
	}
}

func TestTransferUnknownNode(t *testing.T) {
	n := createTestNetwork(t, 2)
	_, err := n.Transfer(0, 5, 1, "")
	assert.Error(t, err)
	_, err = n.Transfer(-1, 0, 1, "")
	assert.Error(t, err)
}

func TestBroadcastRejectedByReceivers(t *testing.T) {
	n := createTestNetwork(t, 3)
	tx, err := n.Transfer(0, 1, 5, "")
	require.NoError(t, err)

	// Every other node already holds it.
	n.Broadcast(tx, n.Nodes()[0].ID())
	assert.Equal(t, 2.0, testutil.ToFloat64(n.metrics.TransactionsRejected))
}

func TestRun(t *testing.T) {
	n := createTestNetwork(t, 2)
	require.NoError(t, n.Run(context.Background(), 3))
	for _, node := range n.Nodes() {
		assert.Equal(t, int64(3), node.GetHeight())
	}
	assert.Len(t, n.Events(), 6)

	rows, err := n.Report()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, int64(3), r.Height)
		assert.Equal(t, int64(300), r.Balance.Amount)
		assert.Equal(t, 1, r.LastBlockTxs)
		assert.True(t, r.Valid)
	}
	table, err := n.ReportTable()
	require.NoError(t, err)
	assert.Contains(t, table, "300 COIN")
}

func TestRunStopsOnCancel(t *testing.T) {
	n := createTestNetwork(t, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, n.Run(ctx, 0), context.DeadlineExceeded)
	assert.Greater(t, n.Nodes()[0].GetHeight(), int64(0))
}

func TestNodesDoNotShareTransactions(t *testing.T) {
	n := createTestNetwork(t, 2)
	_, err := n.MineRound()
	require.NoError(t, err)
	tx, err := n.Transfer(0, 1, 10, "")
	require.NoError(t, err)
	_, err = n.MineRound()
	require.NoError(t, err)

	nodes := n.Nodes()
	for _, node := range nodes {
		require.True(t, node.IsValid())
	}
	tx.Funds.Amount = 5000
	// The recipient also earned two rewards on its own ledger.
	expected := []int64{10, 210}
	for i, node := range nodes {
		assert.True(t, node.IsValid())
		balance, err := node.GetBalance(nodes[1].Address())
		require.NoError(t, err)
		assert.Equal(t, expected[i], balance.Amount)
	}
}
