package recon

import (
	"github.com/shopspring/decimal"

	"github.com/kagisom/bankrecon/internal/domain"
)

// VerifyBalance re-checks a batch header against its member transactions
// before ledger posting. The three sums are recomputed here rather than
// reused from aggregation so that any mutation between aggregation and
// posting is caught. Equality is exact decimal equality, no tolerance.
func VerifyBalance(txns []domain.Transaction, b domain.Batch) bool {
	subTotal := decimal.Zero
	discount := decimal.Zero
	total := decimal.Zero

	for _, txn := range txns {
		subTotal = subTotal.Add(txn.Amount)
		discount = discount.Add(txn.Discount)
		total = total.Add(txn.Total)
	}

	return subTotal.Equal(b.SubTotal) &&
		discount.Equal(b.Discount) &&
		total.Equal(b.Total)
}
