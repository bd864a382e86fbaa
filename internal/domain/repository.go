package domain

import (
	"context"
	"time"
)

// CustomerRepository defines the interface for reading customer reference data
type CustomerRepository interface {
	// Customers returns all customer records (identifier + payment term)
	Customers() ([]Customer, error)
}

// BatchRepository defines the write operations the run performs against the
// finance database
type BatchRepository interface {
	// InsertBatch persists a batch header and returns the generated batch id
	InsertBatch(b Batch) (int64, error)

	// InsertBatchTransactions bulk-inserts transactions tagged with a batch id
	InsertBatchTransactions(batchID int64, txns []Transaction) error

	// PostToLedger inserts a ledger entry and flips the batch posted flag in
	// a single database transaction
	PostToLedger(e LedgerEntry) error
}

// TransactionSource defines the interface for retrieving bank transactions
// for an account and date range
type TransactionSource interface {
	Fetch(ctx context.Context, accountNumber string, from, to time.Time) ([]Transaction, error)
}
