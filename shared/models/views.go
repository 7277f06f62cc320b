package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionView is the read projection returned by list and get. It mirrors
// every column of the transactions table.
type TransactionView struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	SessionID string          `json:"session_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// SummaryView carries the session balance. Amount is null when the session
// has no transactions, matching SQL SUM over an empty set.
type SummaryView struct {
	Amount decimal.NullDecimal `json:"amount"`
}
