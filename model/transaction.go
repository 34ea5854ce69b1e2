package model

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// Version stamped on every new transaction.
const TRANSACTION_VERSION = 1

var (
	ErrMissingRecipient  = errors.New("transaction has no recipient")
	ErrMissingCurrency   = errors.New("transaction funds have no currency")
	ErrUnsignable        = errors.New("reward transactions are not signed")
	ErrSenderKeyMismatch = errors.New("key does not belong to the sender")
)

type Transaction struct {
	// Hex address of the payer. Empty for reward and genesis issuance.
	Sender string
	// Hex address of the payee.
	Recipient string
	// How much value to transfer.
	Funds       Money
	Description string
	// Creation time in unix milliseconds.
	Timestamp int64
	// Unique id of the transaction.
	ID      string
	Version int
	// Hash of this transaction's canonical fields in hex.
	Hash string
	// Signature of the sender over Hash. Nil for reward transactions.
	Signature []byte
}

// TransactionView is the reporting projection of a transaction.
type TransactionView struct {
	From    *string `json:"from"`
	To      string  `json:"to"`
	ID      string  `json:"id"`
	Version int     `json:"version"`
}

// NewTransaction creates a hashed, unsigned transaction. An empty sender creates a reward.
func NewTransaction(sender, recipient string, funds Money, description string) (*Transaction, error) {
	if recipient == "" {
		return nil, ErrMissingRecipient
	}
	if funds.Currency == "" {
		return nil, ErrMissingCurrency
	}
	tx := &Transaction{
		Sender:      sender,
		Recipient:   recipient,
		Funds:       funds,
		Description: description,
		Timestamp:   time.Now().UnixMilli(),
		ID:          uuid.NewV4().String(),
		Version:     TRANSACTION_VERSION,
	}
	tx.Rehash()
	return tx, nil
}

// NewRewardTransaction pays funds out of nowhere to the recipient.
func NewRewardTransaction(recipient string, funds Money) (*Transaction, error) {
	return NewTransaction("", recipient, funds, "reward")
}

// IsReward reports whether the transaction has no sender.
func (t *Transaction) IsReward() bool {
	return t.Sender == ""
}

func (t *Transaction) CanonicalFields() [][]byte {
	return [][]byte{
		utils.StringToBytes(t.Sender),
		utils.StringToBytes(t.Recipient),
		utils.StringToBytes(t.Funds.Currency),
		utils.Int64ToBytes(t.Funds.Amount),
		utils.StringToBytes(t.Description),
		utils.Int64ToBytes(t.Timestamp),
		utils.StringToBytes(t.ID),
		utils.Int64ToBytes(int64(t.Version)),
	}
}

func (t *Transaction) ComputeHash() string {
	return utils.HashFields(t.CanonicalFields()...)
}

// Rehash recomputes Hash from the current field values.
func (t *Transaction) Rehash() {
	t.Hash = t.ComputeHash()
}

// Sign signs the hash with the sender's key.
func (t *Transaction) Sign(sk *btcec.PrivateKey) error {
	if t.IsReward() {
		return ErrUnsignable
	}
	if sk == nil || utils.PublicKeyToHex(sk.PubKey()) != t.Sender {
		return ErrSenderKeyMismatch
	}
	digest, err := utils.HexToBytes(t.Hash)
	if err != nil {
		return errors.Wrap(err, "decode transaction hash")
	}
	sig, err := utils.Sign(digest, sk)
	if err != nil {
		return errors.Wrap(err, "sign transaction")
	}
	t.Signature = sig
	return nil
}

// VerifySignature checks the signature against the sender's public key. It never errors: a
// malformed address, hash or signature simply fails.
func (t *Transaction) VerifySignature() bool {
	pk, err := utils.HexToPublicKey(t.Sender)
	if err != nil {
		return false
	}
	digest, err := utils.HexToBytes(t.Hash)
	if err != nil {
		return false
	}
	return utils.Verify(digest, pk, t.Signature)
}

func (t *Transaction) View() TransactionView {
	v := TransactionView{
		To:      t.Recipient,
		ID:      t.ID,
		Version: t.Version,
	}
	if !t.IsReward() {
		from := t.Sender
		v.From = &from
	}
	return v
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.View())
}

func (t *Transaction) String() string {
	from := t.Sender
	if t.IsReward() {
		from = "<reward>"
	}
	return from + " -> " + t.Recipient + ": " + t.Funds.String() + " (" + t.ID + ", v" + strconv.Itoa(t.Version) + ")"
}
