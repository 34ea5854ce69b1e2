package wallet

import (
	"os"
	"strings"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrMissingKeyPath = errors.New("key file path is missing")

// Wallet holds the key pair of one address and signs transactions sent from it.
type Wallet struct {
	keys   *btcec.PrivateKey
	logger *zap.Logger
}

// NewWallet creates a wallet with a fresh key pair.
func NewWallet(logger *zap.Logger) (*Wallet, error) {
	sk, _, err := utils.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return FromPrivateKey(sk, logger), nil
}

func FromPrivateKey(sk *btcec.PrivateKey, logger *zap.Logger) *Wallet {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Wallet{keys: sk}
	w.logger = logger.With(zap.String("address", w.Address()))
	return w
}

// LoadWallet reads the key file at path. When create is set a new key is generated and
// written to path instead.
func LoadWallet(path string, create bool, logger *zap.Logger) (*Wallet, error) {
	if path == "" {
		return nil, ErrMissingKeyPath
	}
	if create {
		w, err := NewWallet(logger)
		if err != nil {
			return nil, errors.Wrap(err, "generate key")
		}
		if err := w.Save(path); err != nil {
			return nil, err
		}
		return w, nil
	}
	sk, err := ReadKeyFromPath(path)
	if err != nil {
		return nil, err
	}
	return FromPrivateKey(sk, logger), nil
}

// Save writes the hex private key to path, readable by the owner only.
func (w *Wallet) Save(path string) error {
	content := utils.BytesToHex(utils.PrivateKeyToBytes(w.keys)) + "\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return errors.Wrapf(err, "save key to %s", path)
	}
	w.logger.Info("saved private key", zap.String("path", path))
	return nil
}

func ReadKeyFromPath(path string) (*btcec.PrivateKey, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read key from %s", path)
	}
	raw, err := utils.HexToBytes(strings.TrimSpace(string(content)))
	if err != nil {
		return nil, errors.Wrapf(utils.ErrInvalidPrivateKey, "key file %s is not hex", path)
	}
	sk, err := utils.BytesToPrivateKey(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "key file %s", path)
	}
	return sk, nil
}

// Address is the hex of the compressed public key.
func (w *Wallet) Address() string {
	return utils.PublicKeyToHex(w.keys.PubKey())
}

// CreateTransaction builds a transfer from this wallet to recipient and signs it.
func (w *Wallet) CreateTransaction(recipient string, funds model.Money, description string) (*model.Transaction, error) {
	tx, err := model.NewTransaction(w.Address(), recipient, funds, description)
	if err != nil {
		return nil, err
	}
	if err := tx.Sign(w.keys); err != nil {
		return nil, errors.Wrap(err, "sign transaction")
	}
	w.logger.Debug("created transaction",
		zap.String("id", tx.ID),
		zap.String("recipient", recipient),
		zap.Stringer("funds", tx.Funds))
	return tx, nil
}
