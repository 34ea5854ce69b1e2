package full_node

import (
	"io"
	"sync"

	"github.com/Luismorlan/ledger_in_go/blockchain"
	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/visualize"
	"github.com/Luismorlan/ledger_in_go/wallet"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

// A full node owns one ledger and is its only writer. Rewards of the blocks it mines go to
// its wallet.
type FullNode struct {
	blockchain *blockchain.Blockchain
	// Wallet of the miner, it also signs the transfers this node sends.
	wallet *wallet.Wallet
	config config.AppConfig
	// A single mutex for changing internal state.
	m sync.RWMutex
	// A unique indentifier of this full node, only used in logs and reports.
	uuid   string
	logger *zap.Logger
}

// Create a brand new full node, which contains a genesis block in the chain.
func NewFullNode(c config.AppConfig, w *wallet.Wallet, logger *zap.Logger) (*FullNode, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewV4().String()
	logger = logger.With(zap.String("node", id))
	bc, err := blockchain.NewBlockchain(c, w.Address(), blockchain.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "create ledger")
	}
	return &FullNode{
		blockchain: bc,
		wallet:     w,
		config:     c,
		uuid:       id,
		logger:     logger,
	}, nil
}

func (f *FullNode) ID() string {
	return f.uuid
}

// Address of the miner.
func (f *FullNode) Address() string {
	return f.wallet.Address()
}

func (f *FullNode) Currency() string {
	return f.config.Currency
}

// AddTransactionToPool queues a copy of tx for the next block this node mines, so the
// caller's handle never aliases the ledger.
func (f *FullNode) AddTransactionToPool(tx *model.Transaction) error {
	owned := &model.Transaction{}
	if err := copier.CopyWithOption(owned, tx, copier.Option{DeepCopy: true}); err != nil {
		return errors.Wrap(err, "copy transaction")
	}
	f.m.Lock()
	defer f.m.Unlock()
	if err := f.blockchain.AddPendingTransaction(owned); err != nil {
		return err
	}
	f.logger.Debug("added transaction to pool", zap.String("id", tx.ID))
	return nil
}

// Transfer signs a transfer from this node's wallet and queues it locally. The returned
// transaction can be handed to other nodes.
func (f *FullNode) Transfer(recipient string, amount int64, description string) (*model.Transaction, error) {
	tx, err := f.wallet.CreateTransaction(recipient, model.NewMoney(f.config.Currency, amount), description)
	if err != nil {
		return nil, err
	}
	if err := f.AddTransactionToPool(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// CreateNewBlock mines every pending transaction into a new block. Mining holds the write
// lock, so reads wait until the block is pushed.
func (f *FullNode) CreateNewBlock() (*model.Block, error) {
	f.m.Lock()
	defer f.m.Unlock()
	b, err := f.blockchain.MinePending()
	if err != nil {
		return nil, err
	}
	return copyBlock(b)
}

func (f *FullNode) GetBalance(address string) (model.Money, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.BalanceOf(address)
}

func (f *FullNode) GetHeight() int64 {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.Height()
}

// GetBlock returns a deep copy of the block at index.
func (f *FullNode) GetBlock(index int64) (*model.Block, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	b, err := f.blockchain.BlockAt(index)
	if err != nil {
		return nil, err
	}
	return copyBlock(b)
}

// Tail returns a deep copy of the last block.
func (f *FullNode) Tail() (*model.Block, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	return copyBlock(f.blockchain.Last())
}

// Blocks returns a deep copy of the whole chain.
func (f *FullNode) Blocks() ([]*model.Block, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.Blocks()
}

func (f *FullNode) PendingTransactions() []*model.Transaction {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.PendingTransactions()
}

func (f *FullNode) IsValid() bool {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.IsValid()
}

// Reasons the chain is invalid, empty when it is valid.
func (f *FullNode) Validate() []string {
	f.m.RLock()
	defer f.m.RUnlock()
	r := f.blockchain.Validate()
	if r.IsSuccess() {
		return nil
	}
	return r.Messages()
}

// Show writes the last depth+1 blocks as a graphviz graph.
func (f *FullNode) Show(w io.Writer, depth int) error {
	blocks, err := f.Blocks()
	if err != nil {
		return err
	}
	return visualize.Render(w, blocks, depth)
}

// Callers hold the lock.
func copyBlock(b *model.Block) (*model.Block, error) {
	c := &model.Block{}
	if err := copier.CopyWithOption(c, b, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrapf(err, "copy block %d", b.Index)
	}
	return c, nil
}
