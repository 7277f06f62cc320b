package cqrs

import "github.com/shopspring/decimal"

// CreateTransactionCommand records one transaction for a session. Amount is the
// unsigned value as submitted; Type decides the stored sign.
type CreateTransactionCommand struct {
	SessionID string
	Title     string
	Amount    decimal.Decimal
	Type      string
}
