// Package blockchain holds the ledger: an append-only chain of mined blocks plus the
// transactions waiting for the next block.
//
// A Blockchain does no locking. Callers serialize writes to one instance.
package blockchain

import (
	"fmt"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/pow"
	"github.com/Luismorlan/ledger_in_go/validation"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

var ErrMissingMiner = errors.New("miner address is missing")

type Blockchain struct {
	// Unique id of this ledger, used in logs.
	id     string
	blocks []*model.Block
	// Transactions that go into the next mined block.
	pending []*model.Transaction
	engine  *pow.Engine
	reward  model.Money
	// Address that receives the block rewards.
	miner  string
	logger *zap.Logger
}

type Option func(*Blockchain)

func WithLogger(logger *zap.Logger) Option {
	return func(bc *Blockchain) {
		bc.logger = logger
	}
}

// NewBlockchain creates a chain holding only the genesis block. The pending set starts with
// the reward for the first mined block.
func NewBlockchain(c config.AppConfig, miner string, opts ...Option) (*Blockchain, error) {
	if miner == "" {
		return nil, ErrMissingMiner
	}
	if c.Difficulty < 0 {
		return nil, errors.Errorf("difficulty must not be negative, got %d", c.Difficulty)
	}
	if c.Currency == "" {
		return nil, errors.Wrap(model.ErrMissingCurrency, "ledger")
	}
	bc := &Blockchain{
		id:     uuid.NewV4().String(),
		blocks: []*model.Block{model.NewGenesisBlock()},
		reward: model.NewMoney(c.Currency, c.Reward),
		miner:  miner,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(bc)
	}
	bc.logger = bc.logger.With(zap.String("ledger", bc.id))
	bc.engine = pow.NewEngine(c.Difficulty, bc.logger)
	if err := bc.resetPending(); err != nil {
		return nil, err
	}
	return bc, nil
}

func (bc *Blockchain) ID() string {
	return bc.id
}

func (bc *Blockchain) Miner() string {
	return bc.miner
}

func (bc *Blockchain) Currency() string {
	return bc.reward.Currency
}

func (bc *Blockchain) Difficulty() int {
	return bc.engine.Difficulty()
}

// Push links the block to the current tip and appends it. The block is not validated, so
// invalid chains can be built on purpose.
func (bc *Blockchain) Push(block *model.Block) {
	bc.link(block)
	bc.blocks = append(bc.blocks, block)
}

func (bc *Blockchain) link(block *model.Block) {
	last := bc.Last()
	block.PreviousHash = last.Hash
	block.Index = last.Index + 1
}

// MineAndPush seals txs into a new block, mines it and appends it. The pending set is then
// replaced by the reward for the next block. Transactions outside the ledger currency are
// rejected before mining.
func (bc *Blockchain) MineAndPush(txs []*model.Transaction) (*model.Block, error) {
	for _, tx := range txs {
		if err := bc.checkCurrency(tx); err != nil {
			return nil, err
		}
	}
	block := model.NewBlock(txs)
	// Link before mining since the link fields are hashed.
	bc.link(block)
	if last := bc.Last(); block.Timestamp < last.Timestamp {
		block.Timestamp = last.Timestamp
	}
	bc.engine.Mine(block)
	bc.Push(block)
	if err := bc.resetPending(); err != nil {
		return nil, err
	}
	bc.logger.Info("pushed block",
		zap.Int64("index", block.Index),
		zap.Int("transactions", len(block.Transactions)),
		zap.Int64("nonce", block.Nonce))
	return block, nil
}

// MinePending mines the current pending set.
func (bc *Blockchain) MinePending() (*model.Block, error) {
	return bc.MineAndPush(bc.pending)
}

func (bc *Blockchain) resetPending() error {
	reward, err := model.NewRewardTransaction(bc.miner, bc.reward)
	if err != nil {
		return errors.Wrap(err, "create reward transaction")
	}
	bc.pending = []*model.Transaction{reward}
	return nil
}

// AddPendingTransaction queues a transaction for the next block. The transaction must be in
// the ledger currency and pass transaction validation.
func (bc *Blockchain) AddPendingTransaction(tx *model.Transaction) error {
	if err := bc.checkCurrency(tx); err != nil {
		return err
	}
	if err := validation.ValidateTransaction(tx).Err(); err != nil {
		return err
	}
	for _, p := range bc.pending {
		if p.ID == tx.ID {
			return errors.Errorf("transaction %s is already pending", tx.ID)
		}
	}
	bc.pending = append(bc.pending, tx)
	return nil
}

func (bc *Blockchain) checkCurrency(tx *model.Transaction) error {
	if tx.Funds.Currency != bc.reward.Currency {
		return errors.Wrapf(model.ErrCurrencyMismatch, "ledger accepts %s, got %s in transaction %s", bc.reward.Currency, tx.Funds.Currency, tx.ID)
	}
	return nil
}

// PendingTransactions returns a copy of the pending set.
func (bc *Blockchain) PendingTransactions() []*model.Transaction {
	return append([]*model.Transaction(nil), bc.pending...)
}

// Validate checks every block after genesis against the chain.
func (bc *Blockchain) Validate() validation.Result[*Blockchain] {
	if len(bc.blocks) == 0 || !bc.blocks[0].IsGenesis() {
		return validation.Failure[*Blockchain]("first block is not a genesis block")
	}
	v := validation.NewBlockValidator(bc, bc.engine.Difficulty(), bc.reward.Currency)
	for i := 1; i < len(bc.blocks); i++ {
		b := bc.blocks[i]
		if b.IsGenesis() || b.Index != int64(i) {
			return validation.Failure[*Blockchain](fmt.Sprintf("block at position %d has index %d and previous hash %s", i, b.Index, b.PreviousHash))
		}
		if r := v.Validate(b); r.IsFailure() {
			return validation.FailureOf[*Blockchain](r)
		}
	}
	return validation.Success(bc)
}

// IsValid is true iff every block after genesis passes validation. It never modifies the chain.
func (bc *Blockchain) IsValid() bool {
	r := bc.Validate()
	if r.IsFailure() {
		bc.logger.Debug("chain is invalid", zap.Strings("reasons", r.Messages()))
	}
	return r.IsSuccess()
}

// LookUp finds the block with the given hash.
func (bc *Blockchain) LookUp(hash string) (*model.Block, error) {
	for _, b := range bc.blocks {
		if b.Hash == hash {
			return b, nil
		}
	}
	return nil, errors.Wrapf(model.ErrBlockNotFound, "hash %s", hash)
}

// BlockAt returns the stored block, not a copy.
func (bc *Blockchain) BlockAt(index int64) (*model.Block, error) {
	if index < 0 || index >= int64(len(bc.blocks)) {
		return nil, errors.Wrapf(model.ErrBlockNotFound, "index %d of %d", index, len(bc.blocks))
	}
	return bc.blocks[index], nil
}

func (bc *Blockchain) Last() *model.Block {
	return bc.blocks[len(bc.blocks)-1]
}

// Blocks returns a deep copy of the chain.
func (bc *Blockchain) Blocks() ([]*model.Block, error) {
	var snapshot []*model.Block
	if err := copier.CopyWithOption(&snapshot, &bc.blocks, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "copy blocks")
	}
	return snapshot, nil
}

// Size is the number of blocks, genesis included.
func (bc *Blockchain) Size() int {
	return len(bc.blocks)
}

// Height is the index of the last block.
func (bc *Blockchain) Height() int64 {
	return int64(len(bc.blocks) - 1)
}

func (bc *Blockchain) BalanceOf(address string) (model.Money, error) {
	return BalanceOf(bc.blocks, address)
}
