package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kagisom/bankrecon/internal/domain"
	"github.com/kagisom/bankrecon/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func testBatch() domain.Batch {
	return domain.Batch{
		BranchCode:   "BR001",
		BatchDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		OperatorName: "Finance (Bot)",
		SubTotal:     decimal.RequireFromString("181.00"),
		Discount:     decimal.RequireFromString("20.11"),
		Total:        decimal.RequireFromString("201.11"),
	}
}

func TestStore_Customers(t *testing.T) {
	s := newTestStore(t)

	customers, err := s.Customers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 0 {
		t.Fatalf("expected empty customer table, got %d rows", len(customers))
	}

	want := []domain.Customer{
		{ID: "101ABC12", PaymentTerms: domain.TermStrict31Days},
		{ID: "101XYZ99", PaymentTerms: domain.TermSevenDayOnly},
	}
	for _, c := range want {
		if err := s.InsertCustomer(c); err != nil {
			t.Fatalf("failed to insert customer: %v", err)
		}
	}

	customers, err = s.Customers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
	for i, c := range customers {
		if c != want[i] {
			t.Errorf("customer %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestStore_InsertBatch(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertBatch(testBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Error("expected a generated batch id")
	}

	second, err := s.InsertBatch(testBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == id {
		t.Errorf("batch ids must be unique, got %d twice", id)
	}

	posted, err := s.BatchPosted(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if posted {
		t.Error("a fresh batch must not be posted")
	}
}

func TestStore_InsertBatchTransactions(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertBatch(testBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txns := []domain.Transaction{
		{
			BookingDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ValueDate:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			RemittanceInfo: "ADT CASH DEPO1234 ABC12",
			Reference:      "101ABC12",
			Amount:         decimal.RequireFromString("81.00"),
			Discount:       decimal.RequireFromString("9.00"),
			Total:          decimal.RequireFromString("90.00"),
			Currency:       "ZAR",
			CreditDebit:    domain.Credit,
		},
	}

	if err := s.InsertBatchTransactions(id, txns); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_PostToLedger(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertBatch(testBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := domain.LedgerEntry{
		BatchID:     id,
		PostingDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.RequireFromString("201.11"),
	}
	if err := s.PostToLedger(entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	posted, err := s.BatchPosted(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !posted {
		t.Error("batch must be flagged posted after ledger entry")
	}

	total, err := s.LedgerTotal(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("201.11")) {
		t.Errorf("ledger total = %s, want 201.11", total)
	}
}

// Posting against a batch id that was never created must fail atomically:
// no ledger entry left behind.
func TestStore_PostToLedger_UnknownBatch(t *testing.T) {
	s := newTestStore(t)

	entry := domain.LedgerEntry{
		BatchID:     42,
		PostingDate: time.Now(),
		TotalAmount: decimal.RequireFromString("10.00"),
	}
	if err := s.PostToLedger(entry); err == nil {
		t.Fatal("expected an error for an unknown batch id")
	}

	if _, err := s.LedgerTotal(42); err == nil {
		t.Error("failed post must not leave a ledger entry behind")
	}
}
