package validation

import (
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/pkg/errors"
)

// SignatureValid fails unless the sender signed the transaction hash. Rewards have no sender
// and pass.
func SignatureValid() Check[*model.Transaction] {
	return Rule("invalid signature", func(tx *model.Transaction) error {
		if tx.IsReward() {
			return nil
		}
		if !tx.VerifySignature() {
			return errors.Errorf("transaction %s is not signed by %s", tx.ID, tx.Sender)
		}
		return nil
	})
}

// TransactionNotTampered fails when the stored hash is not the hash of the current fields.
func TransactionNotTampered() Check[*model.Transaction] {
	return Rule("transaction tampered", func(tx *model.Transaction) error {
		if actual := tx.ComputeHash(); actual != tx.Hash {
			return errors.Errorf("transaction %s hash is %s, expected %s", tx.ID, tx.Hash, actual)
		}
		return nil
	})
}

// CurrencyMatches fails when the funds are not in the ledger currency.
func CurrencyMatches(currency string) Check[*model.Transaction] {
	return Rule("wrong currency", func(tx *model.Transaction) error {
		if tx.Funds.Currency != currency {
			return errors.Wrapf(model.ErrCurrencyMismatch, "transaction %s is in %s, ledger holds %s", tx.ID, tx.Funds.Currency, currency)
		}
		return nil
	})
}

// TransactionPipeline holds the checks every transaction must pass, in order.
func TransactionPipeline() Pipeline[*model.Transaction] {
	return NewPipeline(
		SignatureValid(),
		TransactionNotTampered(),
	)
}

func ValidateTransaction(tx *model.Transaction) Result[*model.Transaction] {
	return TransactionPipeline().Run(tx)
}
