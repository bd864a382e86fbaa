package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kagisom/bankrecon/internal/domain"
)

// Partition splits resolved transactions by payment term. Only the closed
// category set is batchable; transactions with any other term stay out of the
// returned map and out of every batch.
func Partition(txns []domain.Transaction) map[string][]domain.Transaction {
	known := make(map[string]bool)
	for _, c := range domain.Categories() {
		known[c.Term] = true
	}

	byTerm := make(map[string][]domain.Transaction)
	for _, txn := range txns {
		if !known[txn.PaymentTerms] {
			continue
		}
		byTerm[txn.PaymentTerms] = append(byTerm[txn.PaymentTerms], txn)
	}

	return byTerm
}

// Aggregate builds the batch header for one category's transactions: the
// summed sub-total, discount and grand total plus the fixed branch code and
// operator label identifying the automated run.
func Aggregate(txns []domain.Transaction, branchCode, operator string, batchDate time.Time) domain.Batch {
	subTotal := decimal.Zero
	discount := decimal.Zero
	total := decimal.Zero

	for _, txn := range txns {
		subTotal = subTotal.Add(txn.Amount)
		discount = discount.Add(txn.Discount)
		total = total.Add(txn.Total)
	}

	return domain.Batch{
		BranchCode:   branchCode,
		BatchDate:    batchDate,
		OperatorName: operator,
		SubTotal:     subTotal,
		Discount:     discount,
		Total:        total,
	}
}
