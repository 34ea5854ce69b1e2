package blockchain

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coin(amount int64) model.Money {
	return model.NewMoney("COIN", amount)
}

func createTestTransaction(t *testing.T, sender, recipient string, amount int64) *model.Transaction {
	tx, err := model.NewTransaction(sender, recipient, coin(amount), "")
	require.NoError(t, err)
	return tx
}

// Blocks built by hand, balances do not look at hashes.
func createTestBlocks(t *testing.T) []*model.Block {
	genesis := model.NewGenesisBlock()
	b1 := model.NewBlock([]*model.Transaction{
		createTestTransaction(t, "", "A", 100),
		createTestTransaction(t, "", "B", 4),
	})
	b1.Index = 1
	b2 := model.NewBlock([]*model.Transaction{
		createTestTransaction(t, "", "A", 100),
		createTestTransaction(t, "A", "B", 30),
		createTestTransaction(t, "B", "C", 10),
		createTestTransaction(t, "C", "C", 5),
	})
	b2.Index = 2
	return []*model.Block{genesis, b1, b2}
}

func TestBalanceOf(t *testing.T) {
	blocks := createTestBlocks(t)
	expected := map[string]int64{"A": 170, "B": 24, "C": 10, "D": 0}
	for address, amount := range expected {
		balance, err := BalanceOf(blocks, address)
		require.NoError(t, err)
		assert.Equal(t, amount, balance.Amount, address)
	}
}

func TestBalanceOfUnknownAddressIsNothing(t *testing.T) {
	balance, err := BalanceOf(createTestBlocks(t), "nobody")
	require.NoError(t, err)
	assert.Equal(t, model.Nothing(), balance)
	assert.True(t, balance.IsZero())
}

func TestBalanceOfSkipsGenesis(t *testing.T) {
	genesis := model.NewGenesisBlock()
	genesis.Transactions = []*model.Transaction{createTestTransaction(t, "", "A", 1000)}
	balance, err := BalanceOf([]*model.Block{genesis}, "A")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestSelfTransferNetsToZero(t *testing.T) {
	b := model.NewBlock([]*model.Transaction{createTestTransaction(t, "A", "A", 50)})
	b.Index = 1
	balance, err := BalanceOf([]*model.Block{model.NewGenesisBlock(), b}, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.Amount)
	assert.Equal(t, "COIN", balance.Currency)
}

func TestBalanceIgnoresOrder(t *testing.T) {
	blocks := createTestBlocks(t)
	expected, err := BalanceOf(blocks, "B")
	require.NoError(t, err)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]*model.Block(nil), blocks...)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for _, b := range shuffled {
			r.Shuffle(len(b.Transactions), func(i, j int) {
				b.Transactions[i], b.Transactions[j] = b.Transactions[j], b.Transactions[i]
			})
		}
		actual, err := BalanceOf(shuffled, "B")
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func TestBalancesSumToIssuedAmount(t *testing.T) {
	balances, err := Balances(createTestBlocks(t))
	require.NoError(t, err)

	var total int64
	for _, m := range balances {
		total += m.Amount
	}
	assert.Equal(t, int64(204), total)
	assert.Equal(t, coin(170), balances["A"])
	assert.NotContains(t, balances, "")
}

func TestBalanceRejectsMixedCurrencies(t *testing.T) {
	blocks := createTestBlocks(t)
	gold, err := model.NewTransaction("", "A", model.NewMoney("GOLD", 1), "")
	require.NoError(t, err)
	blocks[2].Transactions = append(blocks[2].Transactions, gold)

	_, err = BalanceOf(blocks, "A")
	assert.ErrorIs(t, err, model.ErrCurrencyMismatch)
	_, err = BalanceOfParallel(context.Background(), blocks, "A")
	assert.ErrorIs(t, err, model.ErrCurrencyMismatch)
	_, err = Balances(blocks)
	assert.ErrorIs(t, err, model.ErrCurrencyMismatch)
}

func TestBalanceOfParallel(t *testing.T) {
	bc := createTestBlockchain(t, "A")
	require.NoError(t, bc.AddPendingTransaction(createTestTransaction(t, "", "B", 4)))
	mineBlocks(t, bc, 5)

	blocks, err := bc.Blocks()
	require.NoError(t, err)
	for _, address := range []string{"A", "B", "C"} {
		sequential, err := bc.BalanceOf(address)
		require.NoError(t, err)
		parallel, err := BalanceOfParallel(context.Background(), blocks, address)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel, address)
	}
}

func TestBalanceOfParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BalanceOfParallel(ctx, createTestBlocks(t), "A")
	assert.ErrorIs(t, err, context.Canceled)
}
