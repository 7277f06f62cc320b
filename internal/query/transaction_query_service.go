package query

import (
	"context"
	"log/slog"

	"github.com/eaglebank/ledger/internal/repository"
	"github.com/eaglebank/ledger/shared/cqrs"
	"github.com/eaglebank/ledger/shared/events"
	"github.com/eaglebank/ledger/shared/models"
)

// TransactionQueryService serves transaction reads. Every query is scoped to
// the caller's session; there is no other ownership model.
type TransactionQueryService struct {
	readRepo *repository.TransactionReadRepository
}

func NewTransactionQueryService(readRepo *repository.TransactionReadRepository) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

// GetTransaction returns nil without error when the id does not exist for the session.
func (s *TransactionQueryService) GetTransaction(ctx context.Context, q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	return s.readRepo.GetByID(ctx, q.TransactionID, q.SessionID)
}

func (s *TransactionQueryService) ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	return s.readRepo.ListBySession(ctx, q.SessionID)
}

func (s *TransactionQueryService) Summarize(ctx context.Context, q cqrs.SummaryQuery) (*models.SummaryView, error) {
	return s.readRepo.SumBySession(ctx, q.SessionID)
}

// HandleTransactionEvent is the Redis stream subscriber handler. It projects
// transaction.created events into the view cache so later reads by id skip
// the database.
func (s *TransactionQueryService) HandleTransactionEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransactionCreated {
		slog.Debug("Ignoring event", "type", event.Type)
		return nil
	}
	data, err := events.DecodeData[events.TransactionCreatedEvent](event)
	if err != nil {
		return err
	}
	s.readRepo.CacheTransactionView(ctx, &models.TransactionView{
		ID:        data.TransactionID,
		Title:     data.Title,
		Amount:    data.Amount,
		SessionID: data.SessionID,
		CreatedAt: data.CreatedAt,
	})
	return nil
}
