package recon

import (
	"github.com/shopspring/decimal"

	"github.com/kagisom/bankrecon/internal/domain"
)

var (
	ninety  = decimal.NewFromInt(90)
	hundred = decimal.NewFromInt(100)
)

// ApplyDiscount fills in the discount and total for a resolved transaction.
//
// The strict 31-day term is defined on a gross-up basis: the recorded amount
// is already net of a 10% deduction for a 90-day funding model, so the
// discount recovers the implied gross differential:
//
//	discount = round(amount / 90 * 100, 2) - amount, when positive
//
// Every other term gets a zero discount. Total = amount + discount.
func ApplyDiscount(txn *domain.Transaction) {
	txn.Discount = decimal.Zero

	if txn.PaymentTerms == domain.TermStrict31Days {
		grossed := txn.Amount.Div(ninety).Mul(hundred).Round(2)
		if d := grossed.Sub(txn.Amount); d.IsPositive() {
			txn.Discount = d
		}
	}

	txn.Total = txn.Amount.Add(txn.Discount)
}

// ApplyDiscounts runs ApplyDiscount over a whole transaction slice.
func ApplyDiscounts(txns []domain.Transaction) {
	for i := range txns {
		ApplyDiscount(&txns[i])
	}
}
