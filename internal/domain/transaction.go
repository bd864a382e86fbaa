package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the credit/debit indicator of a bank transaction
type TransactionType string

// Transaction types
const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction represents a single bank statement entry flowing through the
// reconciliation run. CustomerID, PaymentTerms, Discount and Total start empty
// and are filled in as the row is resolved.
type Transaction struct {
	BookingDate    time.Time
	ValueDate      time.Time
	RemittanceInfo string
	Reference      string
	Amount         decimal.Decimal
	Currency       string
	CreditDebit    TransactionType

	// Derived during reconciliation
	CustomerID   string
	PaymentTerms string
	Discount     decimal.Decimal
	Total        decimal.Decimal
}
