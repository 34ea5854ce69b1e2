package visualize

import (
	"bytes"
	"os"
	"testing"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBlocks(t *testing.T, n int) []*model.Block {
	blocks := []*model.Block{model.NewGenesisBlock()}
	for i := 1; i <= n; i++ {
		tx, err := model.NewRewardTransaction("0123456789abcdef", model.NewMoney("COIN", 100))
		require.NoError(t, err)
		b := model.NewBlock([]*model.Transaction{tx})
		b.Index = int64(i)
		b.PreviousHash = blocks[i-1].Hash
		b.Rehash()
		blocks = append(blocks, b)
	}
	return blocks
}

func TestShortenString(t *testing.T) {
	assert.Equal(t, "abc", shortenString("abc"))
	assert.Equal(t, "abc...ghi", shortenString("abcdefghi"))
}

func TestConstructData(t *testing.T) {
	blocks := createTestBlocks(t, 4)

	head := constructData(blocks, 2)
	require.NotNil(t, head)
	assert.Equal(t, int64(2), head.index)
	assert.Equal(t, int64(3), head.next.index)
	assert.Equal(t, int64(4), head.next.next.index)
	assert.Nil(t, head.next.next.next)
	assert.Equal(t, "reward", head.txs[0].from)
	assert.Equal(t, "012...def", head.txs[0].to)

	assert.Equal(t, int64(0), constructData(blocks, 100).index)
}

func TestRender(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Render(buf, createTestBlocks(t, 2), 1))
	assert.Contains(t, buf.String(), "digraph")

	assert.Error(t, Render(buf, nil, 1))
	assert.Error(t, Render(buf, createTestBlocks(t, 1), -1))
}

func TestRenderToFile(t *testing.T) {
	path, err := RenderToFile(t.TempDir(), "node", createTestBlocks(t, 1), 1)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestTables(t *testing.T) {
	blocks := createTestBlocks(t, 2)
	out, err := ChainTable(blocks)
	require.NoError(t, err)
	assert.Contains(t, out, "Index")
	assert.Contains(t, out, shortenString(blocks[2].Hash))

	out, err = NodeTable([]NodeRow{{
		ID:           "node-1",
		Address:      "0123456789abcdef",
		Height:       2,
		Balance:      model.NewMoney("COIN", 200),
		LastBlockTxs: 1,
		Valid:        true,
	}})
	require.NoError(t, err)
	assert.Contains(t, out, "200 COIN")
	assert.Contains(t, out, "012...def")
}
