package cqrs

// GetTransactionQuery fetches a single transaction owned by the session.
type GetTransactionQuery struct {
	TransactionID string
	SessionID     string
}

// ListTransactionsQuery fetches all transactions for a session.
type ListTransactionsQuery struct {
	SessionID string
}

// SummaryQuery sums the amounts of all transactions for a session.
type SummaryQuery struct {
	SessionID string
}
