package blockchain

import (
	"context"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// delta is what tx changes the balance of address by. A self transfer counts both ways and
// nets to zero.
func delta(tx *model.Transaction, address string) (model.Money, error) {
	d := model.Nothing()
	var err error
	if tx.Recipient == address {
		if d, err = d.Add(tx.Funds); err != nil {
			return model.Money{}, err
		}
	}
	if tx.Sender != "" && tx.Sender == address {
		if d, err = d.Add(tx.Funds.Neg()); err != nil {
			return model.Money{}, err
		}
	}
	return d, nil
}

// blockBalance folds the transactions of one block.
func blockBalance(b *model.Block, address string) (model.Money, error) {
	sum := model.Nothing()
	for _, tx := range b.Transactions {
		d, err := delta(tx, address)
		if err != nil {
			return model.Money{}, errors.Wrapf(err, "transaction %s", tx.ID)
		}
		if sum, err = sum.Add(d); err != nil {
			return model.Money{}, errors.Wrapf(err, "transaction %s", tx.ID)
		}
	}
	return sum, nil
}

// BalanceOf sums what address received minus what it sent over every block but genesis.
func BalanceOf(blocks []*model.Block, address string) (model.Money, error) {
	balance := model.Nothing()
	for _, b := range blocks {
		if b.IsGenesis() {
			continue
		}
		partial, err := blockBalance(b, address)
		if err != nil {
			return model.Money{}, errors.Wrapf(err, "block %d", b.Index)
		}
		if balance, err = balance.Add(partial); err != nil {
			return model.Money{}, errors.Wrapf(err, "block %d", b.Index)
		}
	}
	return balance, nil
}

// BalanceOfParallel computes the same sum as BalanceOf, folding every block concurrently.
func BalanceOfParallel(ctx context.Context, blocks []*model.Block, address string) (model.Money, error) {
	partials := make([]model.Money, len(blocks))
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range blocks {
		if b.IsGenesis() {
			continue
		}
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partial, err := blockBalance(b, address)
			if err != nil {
				return errors.Wrapf(err, "block %d", b.Index)
			}
			partials[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Money{}, err
	}

	balance := model.Nothing()
	for _, p := range partials {
		var err error
		if balance, err = balance.Add(p); err != nil {
			return model.Money{}, err
		}
	}
	return balance, nil
}

// Balances returns the balance of every address that appears in a transaction.
func Balances(blocks []*model.Block) (map[string]model.Money, error) {
	balances := make(map[string]model.Money)
	credit := func(address string, m model.Money) error {
		sum, err := balances[address].Add(m)
		if err != nil {
			return errors.Wrapf(err, "address %s", address)
		}
		balances[address] = sum
		return nil
	}
	for _, b := range blocks {
		if b.IsGenesis() {
			continue
		}
		for _, tx := range b.Transactions {
			if err := credit(tx.Recipient, tx.Funds); err != nil {
				return nil, err
			}
			if tx.IsReward() {
				continue
			}
			if err := credit(tx.Sender, tx.Funds.Neg()); err != nil {
				return nil, err
			}
		}
	}
	return balances, nil
}
