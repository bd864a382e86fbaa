package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kagisom/bankrecon/internal/domain"
	"github.com/kagisom/bankrecon/internal/recon"
)

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		term         string
		wantDiscount string
		wantTotal    string
	}{
		{
			name:         "strict 31 day term grosses up",
			amount:       "81.00",
			term:         domain.TermStrict31Days,
			wantDiscount: "9.00",
			wantTotal:    "90.00",
		},
		{
			name:         "strict 31 day term with repeating division",
			amount:       "100.00",
			term:         domain.TermStrict31Days,
			wantDiscount: "11.11",
			wantTotal:    "111.11",
		},
		{
			name:         "seven day term gets no discount",
			amount:       "81.00",
			term:         domain.TermSevenDayOnly,
			wantDiscount: "0",
			wantTotal:    "81.00",
		},
		{
			name:         "cash term gets no discount",
			amount:       "250.00",
			term:         domain.TermCashOnly,
			wantDiscount: "0",
			wantTotal:    "250.00",
		},
		{
			name:         "zero amount stays zero",
			amount:       "0",
			term:         domain.TermStrict31Days,
			wantDiscount: "0",
			wantTotal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{
				Amount:       decimal.RequireFromString(tt.amount),
				PaymentTerms: tt.term,
			}

			recon.ApplyDiscount(&txn)

			wantDiscount := decimal.RequireFromString(tt.wantDiscount)
			wantTotal := decimal.RequireFromString(tt.wantTotal)

			if !txn.Discount.Equal(wantDiscount) {
				t.Errorf("discount = %s, want %s", txn.Discount, wantDiscount)
			}
			if !txn.Total.Equal(wantTotal) {
				t.Errorf("total = %s, want %s", txn.Total, wantTotal)
			}
		})
	}
}

func TestApplyDiscounts_WholeSlice(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: decimal.RequireFromString("81.00"), PaymentTerms: domain.TermStrict31Days},
		{Amount: decimal.RequireFromString("50.00"), PaymentTerms: domain.TermSevenDayOnly},
	}

	recon.ApplyDiscounts(txns)

	if !txns[0].Discount.Equal(decimal.RequireFromString("9.00")) {
		t.Errorf("first discount = %s, want 9.00", txns[0].Discount)
	}
	if !txns[1].Discount.IsZero() {
		t.Errorf("second discount = %s, want 0", txns[1].Discount)
	}
	if !txns[1].Total.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("second total = %s, want 50.00", txns[1].Total)
	}
}
