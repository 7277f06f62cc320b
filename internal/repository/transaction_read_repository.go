package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/ledger/shared/models"
	sharedredis "github.com/eaglebank/ledger/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const transactionViewKeyPrefix = "transaction:view:"

// TransactionReadRepository handles all read operations for transactions.
// When a Redis client is supplied, single-transaction reads try the view cache
// before PostgreSQL/SQLite. Transactions never change after insert, so a
// cached view cannot go stale.
type TransactionReadRepository struct {
	db    *Database
	cache *sharedredis.ViewCache[models.TransactionView]
}

// NewTransactionReadRepository builds the read repository. redisClient may be
// nil, in which case every read goes to the database.
func NewTransactionReadRepository(db *Database, redisClient *goredis.Client) *TransactionReadRepository {
	r := &TransactionReadRepository{db: db}
	if redisClient != nil {
		r.cache = sharedredis.NewViewCache[models.TransactionView](redisClient, 0)
	}
	return r
}

func viewCacheKey(sessionID, id string) string {
	return fmt.Sprintf("%s%s:%s", transactionViewKeyPrefix, sessionID, id)
}

// GetByID returns the transaction with the given id owned by sessionID, or
// nil when no such row exists for that session.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id, sessionID string) (*models.TransactionView, error) {
	if r.cache != nil {
		if view, ok := r.cache.Get(ctx, viewCacheKey(sessionID, id)); ok {
			return view, nil
		}
	}

	query := r.db.Rebind(`
		SELECT id, title, amount, session_id, created_at
		FROM transactions
		WHERE id = ? AND session_id = ?
	`)
	var view models.TransactionView
	err := r.db.QueryRowContext(ctx, query, id, sessionID).Scan(
		&view.ID, &view.Title, &view.Amount, &view.SessionID, timestamp{&view.CreatedAt},
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	r.CacheTransactionView(ctx, &view)
	return &view, nil
}

// ListBySession returns every transaction of the session in store order.
// No ORDER BY is applied; callers must not rely on chronological order.
func (r *TransactionReadRepository) ListBySession(ctx context.Context, sessionID string) ([]models.TransactionView, error) {
	query := r.db.Rebind(`
		SELECT id, title, amount, session_id, created_at
		FROM transactions
		WHERE session_id = ?
	`)
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	views := []models.TransactionView{}
	for rows.Next() {
		var view models.TransactionView
		if err := rows.Scan(
			&view.ID, &view.Title, &view.Amount, &view.SessionID, timestamp{&view.CreatedAt},
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return views, nil
}

// SumBySession returns SUM(amount) for the session. Both supported stores
// yield NULL over an empty set, surfaced as an invalid NullDecimal.
func (r *TransactionReadRepository) SumBySession(ctx context.Context, sessionID string) (*models.SummaryView, error) {
	query := r.db.Rebind(`
		SELECT SUM(amount) AS amount
		FROM transactions
		WHERE session_id = ?
	`)
	var summary models.SummaryView
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&summary.Amount); err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	return &summary, nil
}

// CacheTransactionView stores the read model for a transaction in Redis.
// It is a no-op when no cache is configured.
func (r *TransactionReadRepository) CacheTransactionView(ctx context.Context, view *models.TransactionView) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, viewCacheKey(view.SessionID, view.ID), view)
}
