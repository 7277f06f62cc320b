package command

import (
	"context"
	"log/slog"

	"github.com/eaglebank/ledger/internal/repository"
	"github.com/eaglebank/ledger/shared/cqrs"
	"github.com/eaglebank/ledger/shared/events"
	"github.com/eaglebank/ledger/shared/metrics"
	"github.com/eaglebank/ledger/shared/models"
	"github.com/eaglebank/ledger/shared/utils"
)

// TransactionCommandService records transactions. The insert is the only
// store call; publishing and metrics happen after it and never fail the
// command.
type TransactionCommandService struct {
	writeRepo *repository.TransactionWriteRepository
	publisher *events.Publisher
	metrics   *metrics.Metrics
}

// NewTransactionCommandService wires the write side. publisher and m may be
// nil when Redis or metrics are not configured.
func NewTransactionCommandService(
	writeRepo *repository.TransactionWriteRepository,
	publisher *events.Publisher,
	m *metrics.Metrics,
) *TransactionCommandService {
	return &TransactionCommandService{
		writeRepo: writeRepo,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *TransactionCommandService) CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	transaction := &models.Transaction{
		ID:        utils.GenerateID(),
		Title:     cmd.Title,
		Amount:    models.SignedAmount(cmd.Amount, cmd.Type),
		SessionID: cmd.SessionID,
	}
	if err := s.writeRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.TransactionCreated(cmd.Type)
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
			TransactionID: transaction.ID,
			SessionID:     transaction.SessionID,
			Title:         transaction.Title,
			Amount:        transaction.Amount,
			Type:          cmd.Type,
			CreatedAt:     transaction.CreatedAt,
		}); err != nil {
			slog.Warn("Failed to publish transaction.created event", "transaction_id", transaction.ID, "error", err)
		}
	}
	return transaction, nil
}
