package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startTestServer(t *testing.T) (*Client, *full_node.FullNode) {
	w, err := wallet.NewWallet(nil)
	require.NoError(t, err)
	node, err := full_node.NewFullNode(config.Default(), w, nil)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	grpcServer, _ := full_node.NewFullNodeServer(node).Serve(lis)
	t.Cleanup(grpcServer.Stop)

	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
	c, err := NewClient("passthrough:///bufnet", dialer)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, node
}

func TestClient(t *testing.T) {
	c, node := startTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	height, err := c.Height(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), height)

	mined, err := c.Mine(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mined.PendingTransactionCount)
	assert.Len(t, mined.Hash, 64)

	tail, err := node.Tail()
	require.NoError(t, err)
	assert.Equal(t, tail.Hash, mined.Hash)
	assert.Equal(t, tail.Nonce, mined.Nonce)
	assert.Equal(t, tail.Timestamp, mined.Timestamp)

	block, err := c.Block(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, mined, block)

	balance, err := c.Balance(ctx, node.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	valid, err := c.IsValid(ctx)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestClientBlockNotFound(t *testing.T) {
	c, _ := startTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.Block(ctx, 3)
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}
