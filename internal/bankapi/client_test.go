package bankapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kagisom/bankrecon/internal/bankapi"
)

const historyBody = `{
	"entry": [
		{
			"entryId": "E-1",
			"bookingDate": {"Date": "2024-03-15"},
			"valueDate": {"Date": "2024-03-15"},
			"amount": {"amount": "81.00", "currency": "ZAR"},
			"availability": {"creditDebitIndicator": "credit"},
			"entryDetails": {
				"transactionDetails": {
					"remittanceInfo": {"unstructured": "ADT CASH DEPO1234 ABC12"},
					"reference": {"endToEndId": "E2E-1"}
				}
			}
		},
		{
			"entryId": "E-2",
			"bookingDate": {"Date": "2024-03-15"},
			"valueDate": {"Date": "2024-03-16"},
			"amount": {"amount": -50.25, "currency": "ZAR"},
			"availability": {"creditDebitIndicator": "DEBIT"},
			"entryDetails": {
				"transactionDetails": {
					"remittanceInfo": {"unstructured": "INTERNET TRF"},
					"reference": {"endToEndId": "E2E-2"}
				}
			}
		}
	]
}`

// newTestServer serves both the token endpoint and the transaction history
// endpoint; history behavior is supplied by the caller.
func newTestServer(t *testing.T, history http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/transaction-history/retrieve/v2/", history)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *bankapi.Client {
	return bankapi.NewClient(bankapi.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      srv.URL,
		AuthURL:      srv.URL + "/token",
		Timeout:      5 * time.Second,
	})
}

func TestClient_Fetch(t *testing.T) {
	var gotRequest *http.Request
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(historyBody))
	})

	client := newTestClient(srv)

	from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	txns, err := client.Fetch(context.Background(), "62000000001", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotRequest.URL.Path != "/transaction-history/retrieve/v2/62000000001" {
		t.Errorf("unexpected request path %s", gotRequest.URL.Path)
	}
	if got := gotRequest.URL.Query().Get("fromDate"); got != "2024-03-15" {
		t.Errorf("fromDate = %s, want 2024-03-15", got)
	}
	if got := gotRequest.URL.Query().Get("toDate"); got != "2024-03-16" {
		t.Errorf("toDate = %s, want 2024-03-16", got)
	}
	if got := gotRequest.Header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", got)
	}
	if gotRequest.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if gotRequest.Header.Get("X-Idempotency-ID") == "" {
		t.Error("X-Idempotency-ID header missing")
	}

	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}

	first := txns[0]
	if first.RemittanceInfo != "ADT CASH DEPO1234 ABC12" {
		t.Errorf("remittance info = %q", first.RemittanceInfo)
	}
	if first.Reference != "E2E-1" {
		t.Errorf("reference = %q, want E2E-1", first.Reference)
	}
	if !first.Amount.Equal(decimal.RequireFromString("81.00")) {
		t.Errorf("amount = %s, want 81.00", first.Amount)
	}
	if first.CreditDebit != "CREDIT" {
		t.Errorf("indicator = %q, want CREDIT", first.CreditDebit)
	}
	if first.BookingDate.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("booking date = %v", first.BookingDate)
	}

	// Negative wire amounts come back absolute; the indicator carries the sign
	second := txns[1]
	if !second.Amount.Equal(decimal.RequireFromString("50.25")) {
		t.Errorf("amount = %s, want 50.25", second.Amount)
	}
	if second.CreditDebit != "DEBIT" {
		t.Errorf("indicator = %q, want DEBIT", second.CreditDebit)
	}
}

func TestClient_Fetch_NoContent(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(srv)

	_, err := client.Fetch(context.Background(), "62000000001", time.Now(), time.Now())
	if !errors.Is(err, bankapi.ErrNoTransactions) {
		t.Fatalf("expected ErrNoTransactions, got %v", err)
	}
}

func TestClient_Fetch_ServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(srv)

	_, err := client.Fetch(context.Background(), "62000000001", time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if errors.Is(err, bankapi.ErrNoTransactions) {
		t.Fatal("a server error must not look like an empty statement")
	}
}

func TestClient_Fetch_BadDate(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"entry": [{"entryId": "E-1", "bookingDate": {"Date": "15/03/2024"}}]}`))
	})

	client := newTestClient(srv)

	_, err := client.Fetch(context.Background(), "62000000001", time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected an error for an unparseable booking date")
	}
}
