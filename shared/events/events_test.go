package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEncodeDecodeTransactionCreated(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	payload := TransactionCreatedEvent{
		TransactionID: "3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b",
		SessionID:     "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		Title:         "Rent",
		Amount:        decimal.NewFromInt(-1200),
		Type:          "debit",
		CreatedAt:     created,
	}

	raw, err := Encode(TransactionCreated, payload)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// What a subscriber sees: the envelope with Data decoded as a generic map.
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if event.Type != TransactionCreated {
		t.Errorf("Type = %q, want %q", event.Type, TransactionCreated)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}

	got, err := DecodeData[TransactionCreatedEvent](event)
	if err != nil {
		t.Fatalf("DecodeData() error = %v", err)
	}
	if got.TransactionID != payload.TransactionID || got.SessionID != payload.SessionID || got.Title != payload.Title {
		t.Errorf("decoded identity mismatch: %+v", got)
	}
	if !got.Amount.Equal(payload.Amount) {
		t.Errorf("Amount = %s, want %s", got.Amount, payload.Amount)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestDecodeDataRejectsMismatchedShape(t *testing.T) {
	event := Event{Type: TransactionCreated, Data: map[string]any{"amount": "not-a-number"}}
	if _, err := DecodeData[TransactionCreatedEvent](event); err == nil {
		t.Error("expected error decoding a non-numeric amount")
	}
}
