package bankapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/kagisom/bankrecon/internal/domain"
)

// ErrNoTransactions signals an empty statement for the requested period.
// Distinct from a retrieval failure: the API answered, there is just nothing
// to reconcile.
var ErrNoTransactions = errors.New("bankapi: no transactions for period")

const (
	dateFormat = "2006-01-02"

	// Scope for the transaction history API
	historyScope = "i_can"
)

// Config carries the credentials and endpoints for the bank's transaction
// history API.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	AuthURL      string
	Timeout      time.Duration
}

// Client retrieves transaction history over HTTPS using an OAuth2
// client-credentials token. Token acquisition and refresh are handled by the
// oauth2 transport.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client with a bounded request timeout.
func NewClient(cfg Config) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.AuthURL,
		Scopes:       []string{historyScope},
	}

	httpClient := cc.Client(context.Background())
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// transactionHistoryResponse mirrors the nested wire format of the
// transaction history endpoint.
type transactionHistoryResponse struct {
	Entry []historyEntry `json:"entry"`
}

type historyEntry struct {
	EntryID     string   `json:"entryId"`
	BookingDate wireDate `json:"bookingDate"`
	ValueDate   wireDate `json:"valueDate"`
	Amount      struct {
		// decimal.Decimal unmarshals both quoted and bare numbers; the API
		// is not consistent about which it sends.
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	} `json:"amount"`
	Availability struct {
		CreditDebitIndicator string `json:"creditDebitIndicator"`
	} `json:"availability"`
	EntryDetails struct {
		TransactionDetails struct {
			RemittanceInfo struct {
				Unstructured string `json:"unstructured"`
			} `json:"remittanceInfo"`
			Reference struct {
				EndToEndID string `json:"endToEndId"`
			} `json:"reference"`
		} `json:"transactionDetails"`
	} `json:"entryDetails"`
}

type wireDate struct {
	Date string `json:"Date"`
}

// Fetch retrieves the transaction history for an account between from and to
// (inclusive dates). A 204 response maps to ErrNoTransactions; any other
// non-200 status is a retrieval failure.
func (c *Client) Fetch(ctx context.Context, accountNumber string, from, to time.Time) ([]domain.Transaction, error) {
	endpoint := fmt.Sprintf("%s/transaction-history/retrieve/v2/%s", c.baseURL, url.PathEscape(accountNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building transaction history request: %w", err)
	}

	q := req.URL.Query()
	q.Set("fromDate", from.Format(dateFormat))
	q.Set("toDate", to.Format(dateFormat))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("X-Idempotency-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching transaction history: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNoContent:
		return nil, ErrNoTransactions
	default:
		return nil, fmt.Errorf("transaction history request failed with status %d", resp.StatusCode)
	}

	var history transactionHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, fmt.Errorf("decoding transaction history: %w", err)
	}

	txns := make([]domain.Transaction, 0, len(history.Entry))
	for _, entry := range history.Entry {
		txn, err := entry.toTransaction()
		if err != nil {
			return nil, fmt.Errorf("parsing transaction entry %q: %w", entry.EntryID, err)
		}
		txns = append(txns, txn)
	}

	return txns, nil
}

func (e historyEntry) toTransaction() (domain.Transaction, error) {
	bookingDate, err := time.Parse(dateFormat, e.BookingDate.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid booking date: %w", err)
	}

	valueDate, err := time.Parse(dateFormat, e.ValueDate.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid value date: %w", err)
	}

	details := e.EntryDetails.TransactionDetails

	return domain.Transaction{
		BookingDate:    bookingDate,
		ValueDate:      valueDate,
		RemittanceInfo: details.RemittanceInfo.Unstructured,
		Reference:      details.Reference.EndToEndID,
		Amount:         e.Amount.Amount.Abs(), // indicator carries the sign
		Currency:       e.Amount.Currency,
		CreditDebit:    domain.TransactionType(strings.ToUpper(e.Availability.CreditDebitIndicator)),
		Discount:       decimal.Zero,
		Total:          decimal.Zero,
	}, nil
}
