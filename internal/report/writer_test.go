package report

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatRand(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "R0.00"},
		{"12.5", "R12.50"},
		{"1234.56", "R1 234.56"},
		{"1234567.89", "R1 234 567.89"},
		{"-1234.56", "R-1 234.56"},
	}

	for _, tt := range tests {
		got := formatRand(decimal.RequireFromString(tt.amount))
		if got != tt.want {
			t.Errorf("formatRand(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
