package model

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an amount in a single currency. Together with Add and Nothing it forms a
// commutative monoid.
type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// Nothing is the identity of Add. Its empty currency takes the currency of the other operand.
func Nothing() Money {
	return Money{}
}

func NewMoney(currency string, amount int64) Money {
	return Money{Currency: currency, Amount: amount}
}

// Add sums two amounts. Adding two different currencies is rejected.
func (m Money) Add(o Money) (Money, error) {
	currency := m.Currency
	switch {
	case currency == "":
		currency = o.Currency
	case o.Currency != "" && o.Currency != currency:
		return Money{}, errors.Wrapf(ErrCurrencyMismatch, "%s + %s", m.Currency, o.Currency)
	}
	return Money{Currency: currency, Amount: m.Amount + o.Amount}, nil
}

func (m Money) Neg() Money {
	return Money{Currency: m.Currency, Amount: -m.Amount}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) String() string {
	if m.Currency == "" {
		return fmt.Sprintf("%d", m.Amount)
	}
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
