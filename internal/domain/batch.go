package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch is the accounting header for one payment-term category in one run.
// SubTotal, Discount and Total are established at aggregation time and must
// equal the sums over the member transactions before the batch may be posted.
type Batch struct {
	ID           int64
	BranchCode   string
	BatchDate    time.Time
	OperatorName string
	SubTotal     decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	Posted       bool
}

// LedgerEntry is the one-way commit of a verified batch total into the
// general ledger. Created exactly once per posted batch.
type LedgerEntry struct {
	BatchID     int64
	PostingDate time.Time
	TotalAmount decimal.Decimal
}
