package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts travel as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction is the write model. Amount is already signed: credits are
// positive, debits negative. The credit/debit type itself is not persisted.
type Transaction struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	SessionID string          `json:"session_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// SignedAmount applies the credit/debit sign convention to a raw amount.
func SignedAmount(amount decimal.Decimal, txType string) decimal.Decimal {
	if txType == TypeCredit {
		return amount
	}
	return amount.Neg()
}
