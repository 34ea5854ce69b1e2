package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Luismorlan/ledger_in_go/utils"
)

// GenesisPreviousHash is the previous hash of every genesis block.
var GenesisPreviousHash = strings.Repeat("0", utils.DIGEST_HEX_LENGTH)

type Block struct {
	// Position in the chain, 0 for genesis.
	Index int64
	// Hash of the previous block in the hex format.
	PreviousHash string
	// Hash of this block's canonical fields in the hex string format. Empty until mined.
	Hash string
	// Nonce is the miner's challenge for computing the block.
	Nonce int64
	// How many leading hex 0s the hash was mined for.
	Difficulty int
	// Creation time in unix milliseconds.
	Timestamp int64
	// Transactions sealed into this block.
	Transactions []*Transaction
}

// BlockView is the reporting projection of a block.
type BlockView struct {
	PreviousHash            string `json:"previousHash"`
	Hash                    string `json:"hash"`
	Nonce                   int64  `json:"nonce"`
	Timestamp               int64  `json:"timestamp"`
	PendingTransactionCount int    `json:"pendingTransactionCount"`
}

// NewBlock creates an unlinked, unmined block carrying txs.
func NewBlock(txs []*Transaction) *Block {
	return &Block{
		Timestamp:    time.Now().UnixMilli(),
		Transactions: txs,
	}
}

// NewGenesisBlock creates the first block of a chain, already hashed.
func NewGenesisBlock() *Block {
	b := &Block{
		Index:        0,
		PreviousHash: GenesisPreviousHash,
		Timestamp:    time.Now().UnixMilli(),
	}
	b.Rehash()
	return b
}

func (b *Block) IsGenesis() bool {
	return b.PreviousHash == GenesisPreviousHash
}

func (b *Block) CanonicalFields() [][]byte {
	fields := [][]byte{
		utils.Int64ToBytes(b.Index),
		utils.StringToBytes(b.PreviousHash),
		utils.Int64ToBytes(b.Timestamp),
		utils.Int64ToBytes(b.Nonce),
		utils.Int64ToBytes(int64(b.Difficulty)),
	}
	for _, tx := range b.Transactions {
		fields = append(fields, utils.StringToBytes(tx.Hash))
	}
	return fields
}

func (b *Block) ComputeHash() string {
	return utils.HashFields(b.CanonicalFields()...)
}

// Rehash recomputes Hash from the current field values.
func (b *Block) Rehash() {
	b.Hash = b.ComputeHash()
}

func (b *Block) View() BlockView {
	return BlockView{
		PreviousHash:            b.PreviousHash,
		Hash:                    b.Hash,
		Nonce:                   b.Nonce,
		Timestamp:               b.Timestamp,
		PendingTransactionCount: len(b.Transactions),
	}
}

func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.View())
}
