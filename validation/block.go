package validation

import (
	"fmt"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/pow"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/pkg/errors"
)

// Chain resolves the blocks a block is validated against. Both lookups return an error
// wrapping model.ErrBlockNotFound on a miss.
type Chain interface {
	LookUp(hash string) (*model.Block, error)
	BlockAt(index int64) (*model.Block, error)
}

// BlockValidator checks a block against the chain it belongs to.
type BlockValidator struct {
	chain    Chain
	pipeline Pipeline[*model.Block]
}

// NewBlockValidator checks blocks of a ledger mined at difficulty and holding currency.
func NewBlockValidator(chain Chain, difficulty int, currency string) *BlockValidator {
	v := &BlockValidator{chain: chain}
	v.pipeline = NewPipeline(
		HashLength(),
		BlockNotTampered(),
		DifficultySatisfied(difficulty),
		v.previousHashLinked(),
		v.timestampOrdered(),
		TransactionsValid(currency),
	)
	return v
}

// Validate runs every block check. A genesis block is always valid.
func (v *BlockValidator) Validate(b *model.Block) Result[*model.Block] {
	if b.IsGenesis() {
		return Success(b)
	}
	return v.pipeline.Run(b).Prefix(fmt.Sprintf("block %d", b.Index))
}

func HashLength() Check[*model.Block] {
	return Rule("bad hash length", func(b *model.Block) error {
		if len(b.Hash) != utils.DIGEST_HEX_LENGTH {
			return errors.Errorf("hash has %d characters, expected %d", len(b.Hash), utils.DIGEST_HEX_LENGTH)
		}
		return nil
	})
}

func BlockNotTampered() Check[*model.Block] {
	return Rule("block tampered", func(b *model.Block) error {
		if actual := b.ComputeHash(); actual != b.Hash {
			return errors.Errorf("hash is %s, expected %s", b.Hash, actual)
		}
		return nil
	})
}

func DifficultySatisfied(difficulty int) Check[*model.Block] {
	return Rule("difficulty not met", func(b *model.Block) error {
		if !pow.HasLeadingZeros(b.Hash, difficulty) {
			return errors.Errorf("hash %s has fewer than %d leading zeros", b.Hash, difficulty)
		}
		return nil
	})
}

// previousHashLinked compares the previous hash with the block actually stored before this
// one, then resolves the previous hash through the chain so a copied hash string that points
// elsewhere is caught.
func (v *BlockValidator) previousHashLinked() Check[*model.Block] {
	return func(b *model.Block) Result[*model.Block] {
		previous, err := v.chain.BlockAt(b.Index - 1)
		if err != nil {
			return Failure[*model.Block]("previous block missing: " + err.Error())
		}
		if b.PreviousHash != previous.Hash {
			return Failure[*model.Block](fmt.Sprintf("broken link: previous hash is %s, expected %s", b.PreviousHash, previous.Hash))
		}
		referenced, err := v.chain.LookUp(b.PreviousHash)
		if err != nil {
			return Failure[*model.Block]("previous hash lookup: " + err.Error())
		}
		if referenced.Index != b.Index-1 {
			return Failure[*model.Block](fmt.Sprintf("broken link: previous hash references block %d, expected %d", referenced.Index, b.Index-1))
		}
		return Success(b)
	}
}

// timestampOrdered relies on previousHashLinked having resolved the previous block.
func (v *BlockValidator) timestampOrdered() Check[*model.Block] {
	return func(b *model.Block) Result[*model.Block] {
		previous, err := v.chain.LookUp(b.PreviousHash)
		if err != nil {
			return Failure[*model.Block]("previous hash lookup: " + err.Error())
		}
		if b.Timestamp < previous.Timestamp {
			return Failure[*model.Block](fmt.Sprintf("timestamp out of order: %d is before previous %d", b.Timestamp, previous.Timestamp))
		}
		return Success(b)
	}
}

// TransactionsValid runs the transaction pipeline over every transaction of the block, then
// requires it to be in currency.
func TransactionsValid(currency string) Check[*model.Block] {
	txPipeline := TransactionPipeline().Then(CurrencyMatches(currency))
	return func(b *model.Block) Result[*model.Block] {
		for i, tx := range b.Transactions {
			if r := txPipeline.Run(tx); r.IsFailure() {
				return FailureOf[*model.Block](r.Prefix(fmt.Sprintf("transaction %d", i)))
			}
		}
		return Success(b)
	}
}
