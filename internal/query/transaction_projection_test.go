package query

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/eaglebank/ledger/internal/command"
	"github.com/eaglebank/ledger/internal/repository"
	"github.com/eaglebank/ledger/shared/cqrs"
	"github.com/eaglebank/ledger/shared/events"
	"github.com/eaglebank/ledger/shared/models"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func TestCreatedEventIsProjectedIntoViewCache(t *testing.T) {
	db, err := repository.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	commandSvc := command.NewTransactionCommandService(
		repository.NewTransactionWriteRepository(db), events.NewPublisher(client), nil,
	)
	querySvc := NewTransactionQueryService(repository.NewTransactionReadRepository(db, client))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	created, err := commandSvc.CreateTransaction(ctx, cqrs.CreateTransactionCommand{
		SessionID: "session-x",
		Title:     "Rent",
		Amount:    decimal.NewFromInt(1200),
		Type:      models.TypeDebit,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	subscriber := events.NewSubscriber(client, events.SubscriberConfig{
		Group:         "ledger-projection",
		Consumer:      "test-consumer",
		Stream:        events.TransactionEventsStream,
		Handler:       querySvc.HandleTransactionEvent,
		BlockDuration: 50 * time.Millisecond,
	})
	done := make(chan error, 1)
	go func() { done <- subscriber.Start(ctx) }()

	key := "transaction:view:session-x:" + created.ID
	deadline := time.Now().Add(3 * time.Second)
	for !mr.Exists(key) {
		if time.Now().After(deadline) {
			t.Fatalf("view %s was never projected", key)
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	raw, err := mr.Get(key)
	if err != nil {
		t.Fatalf("read projected view: %v", err)
	}
	var view models.TransactionView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		t.Fatalf("decode projected view: %v", err)
	}
	if view.ID != created.ID || view.Title != "Rent" || view.SessionID != "session-x" {
		t.Errorf("projected view = %+v", view)
	}
	if !view.Amount.Equal(decimal.NewFromInt(-1200)) {
		t.Errorf("projected amount = %s, want -1200", view.Amount)
	}
	if !view.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("projected created_at = %v, want %v", view.CreatedAt, created.CreatedAt)
	}

	// The projected view answers reads for its own session only.
	got, err := querySvc.GetTransaction(context.Background(), cqrs.GetTransactionQuery{TransactionID: created.ID, SessionID: "session-x"})
	if err != nil || got == nil || got.ID != created.ID {
		t.Errorf("GetTransaction own session = (%+v, %v)", got, err)
	}
	got, err = querySvc.GetTransaction(context.Background(), cqrs.GetTransactionQuery{TransactionID: created.ID, SessionID: "session-y"})
	if err != nil || got != nil {
		t.Errorf("GetTransaction other session = (%+v, %v), want (nil, nil)", got, err)
	}
}
