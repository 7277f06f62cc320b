package repository

import (
	"context"
	"fmt"

	"github.com/eaglebank/ledger/shared/models"
)

// TransactionWriteRepository handles all state-mutating operations for transactions.
// Transactions are append-only: there is no update or delete.
type TransactionWriteRepository struct {
	db *Database
}

func NewTransactionWriteRepository(db *Database) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Create inserts the transaction in a single statement and fills CreatedAt
// from the column default.
func (r *TransactionWriteRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := r.db.Rebind(`
		INSERT INTO transactions (id, title, amount, session_id)
		VALUES (?, ?, ?, ?)
		RETURNING created_at
	`)
	err := r.db.QueryRowContext(ctx, query,
		transaction.ID, transaction.Title, transaction.Amount, transaction.SessionID,
	).Scan(timestamp{&transaction.CreatedAt})
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}
