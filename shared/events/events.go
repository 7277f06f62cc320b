package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	TransactionCreated = "transaction.created"
)

// Stream names
const (
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// TransactionCreatedEvent carries the full stored row so consumers can build
// read projections without querying the database. Amount is signed.
type TransactionCreatedEvent struct {
	TransactionID string          `json:"transactionId"`
	SessionID     string          `json:"sessionId"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DecodeData re-decodes the loosely typed Data of a received event into T.
func DecodeData[T any](event Event) (*T, error) {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event data: %w", event.Type, err)
	}
	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s event data: %w", event.Type, err)
	}
	return &data, nil
}
