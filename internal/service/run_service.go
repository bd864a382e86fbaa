package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kagisom/bankrecon/internal/domain"
	"github.com/kagisom/bankrecon/internal/extract"
	"github.com/kagisom/bankrecon/internal/recon"
)

// ErrOutOfBalance marks a batch whose header totals no longer match its
// transactions. Expected outcome requiring human review, not a crash: the
// batch stays persisted with posted=false and is never retried automatically.
var ErrOutOfBalance = errors.New("batch out of balance")

// Reporter renders the per-batch summary and the raw transaction exports
type Reporter interface {
	WriteBatchReport(b domain.Batch, label string, txns []domain.Transaction, at time.Time) (string, error)
	ExportTransactions(name string, txns []domain.Transaction, at time.Time) (string, error)
}

// Notifier delivers an outbound message with report attachments
type Notifier interface {
	Send(recipients []string, subject, body string, attachments ...string) error
}

// RunService orchestrates one reconciliation run: retrieve, resolve,
// discount, batch per category, verify, post, report, notify.
type RunService struct {
	source     domain.TransactionSource
	customers  domain.CustomerRepository
	batches    domain.BatchRepository
	extractor  *extract.Extractor
	reporter   Reporter
	notifier   Notifier
	branchCode string
	operator   string
	recipients []string
	log        zerolog.Logger

	// Now supplies the batch date and timestamps; overridable in tests.
	Now func() time.Time
}

// Params collects the collaborators and run constants for a RunService.
type Params struct {
	Source     domain.TransactionSource
	Customers  domain.CustomerRepository
	Batches    domain.BatchRepository
	Extractor  *extract.Extractor
	Reporter   Reporter
	Notifier   Notifier
	BranchCode string
	Operator   string
	Recipients []string
	Logger     zerolog.Logger
}

// NewRunService creates a RunService
func NewRunService(p Params) *RunService {
	if p.Extractor == nil {
		p.Extractor = extract.NewExtractor()
	}
	if p.BranchCode == "" {
		p.BranchCode = "BR001"
	}
	if p.Operator == "" {
		p.Operator = "Finance (Bot)"
	}

	return &RunService{
		source:     p.Source,
		customers:  p.Customers,
		batches:    p.Batches,
		extractor:  p.Extractor,
		reporter:   p.Reporter,
		notifier:   p.Notifier,
		branchCode: p.BranchCode,
		operator:   p.Operator,
		recipients: p.Recipients,
		log:        p.Logger,
		Now:        time.Now,
	}
}

// Run performs one reconciliation run for an account and date range. A
// retrieval or customer-load failure halts the run before any reconciliation
// logic executes; after that, each category is processed independently and a
// failure in one never blocks another. The returned RunResult is the run's
// only output object.
func (s *RunService) Run(ctx context.Context, accountNumber string, from, to time.Time) (domain.RunResult, error) {
	txns, err := s.source.Fetch(ctx, accountNumber, from, to)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("fetching bank transactions: %w", err)
	}

	customers, err := s.customers.Customers()
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("loading customers: %w", err)
	}

	resolver := recon.NewResolver(s.extractor, customers)
	matched, unmatched := resolver.Resolve(txns)
	recon.ApplyDiscounts(matched)

	now := s.Now()

	// Exports are written before any category is touched so that every
	// transaction, matched or not, lands in a persisted artifact even if
	// the run halts later.
	rawPath, err := s.reporter.ExportTransactions("Latest_FNB_Bank_Statement", txns, now)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("exporting raw transactions: %w", err)
	}

	unmatchedPath, err := s.reporter.ExportTransactions("Unmatched_FNB_Trans", unmatched, now)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("exporting unmatched transactions: %w", err)
	}

	s.log.Info().
		Int("total", len(txns)).
		Int("matched", len(matched)).
		Int("unmatched", len(unmatched)).
		Msg("transactions resolved")

	byTerm := recon.Partition(matched)

	result := domain.RunResult{
		TotalTxnsProcessed: len(txns),
		MatchedTxns:        len(matched),
		UnmatchedTxns:      unmatched,
		RawExportPath:      rawPath,
		UnmatchedExport:    unmatchedPath,
	}

	for _, cat := range domain.Categories() {
		outcome := s.processCategory(cat, byTerm[cat.Term], now, rawPath)
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

// processCategory walks one category through the batch lifecycle:
// CREATED -> TRANSACTIONS_INSERTED -> VERIFIED -> POSTED -> REPORTED ->
// NOTIFIED, stopping at the first failed stage. The outcome keeps the last
// state the category reached.
func (s *RunService) processCategory(cat domain.Category, txns []domain.Transaction, now time.Time, rawExport string) domain.CategoryOutcome {
	outcome := domain.CategoryOutcome{Category: cat, TxnCount: len(txns)}
	log := s.log.With().Str("category", cat.Label).Logger()

	batch := recon.Aggregate(txns, s.branchCode, s.operator, now)

	batchID, err := s.batches.InsertBatch(batch)
	if err != nil {
		// No transactions are ever inserted without a parent batch id.
		log.Error().Err(err).Str("stage", "insert_batch").Msg("category abandoned")
		outcome.Err = err.Error()
		return outcome
	}
	batch.ID = batchID
	outcome.BatchID = batchID
	outcome.State = domain.StateCreated

	if err := s.batches.InsertBatchTransactions(batchID, txns); err != nil {
		log.Error().Err(err).Int64("batch_id", batchID).Str("stage", "insert_transactions").Msg("category abandoned")
		outcome.Err = err.Error()
		return outcome
	}
	outcome.State = domain.StateTransactionsInserted

	if !recon.VerifyBalance(txns, batch) {
		log.Error().Int64("batch_id", batchID).Str("stage", "verify").Msg("batch out of balance, ledger posting withheld")
		outcome.Err = ErrOutOfBalance.Error()
		return outcome
	}
	outcome.State = domain.StateVerified

	entry := domain.LedgerEntry{
		BatchID:     batchID,
		PostingDate: now,
		TotalAmount: batch.Total,
	}
	if err := s.batches.PostToLedger(entry); err != nil {
		log.Error().Err(err).Int64("batch_id", batchID).Str("stage", "post_ledger").Msg("category abandoned")
		outcome.Err = err.Error()
		return outcome
	}
	outcome.State = domain.StatePosted
	log.Info().Int64("batch_id", batchID).Str("total", batch.Total.String()).Msg("batch posted to general ledger")

	// From here on the ledger post is the durable commit point; report and
	// notification failures are logged and never rolled back.
	pdfPath, err := s.reporter.WriteBatchReport(batch, cat.Label, txns, now)
	if err != nil {
		log.Warn().Err(err).Int64("batch_id", batchID).Str("stage", "report").Msg("report generation failed")
		outcome.Err = err.Error()
		return outcome
	}
	outcome.State = domain.StateReported

	subject := fmt.Sprintf("FNB %s BATCH %d - %s - %s",
		cat.Label, batchID, strings.ToUpper(now.Format("02-Jan-2006")), now.Format("15:04"))

	if err := s.notifier.Send(s.recipients, subject, emailBody(now), pdfPath, rawExport); err != nil {
		log.Warn().Err(err).Int64("batch_id", batchID).Str("stage", "notify").Msg("notification failed")
		outcome.Err = err.Error()
		return outcome
	}
	outcome.State = domain.StateNotified

	return outcome
}

func emailBody(now time.Time) string {
	dateStr := strings.ToUpper(now.Format("02-Jan-2006"))
	timeStr := now.Format("15:04")

	return fmt.Sprintf(`
		<p>Dear Debtors Team,</p>
		<br>
		<p>Please find attached the latest bank recon for the date <b>%s</b>.</p>
		<p><b>Batch completion time:</b> %s</p>
		<br>
		<p>The bank recon process has been completed. Kindly review the processed balances and let us know of any issues.</p>
		<br>
		<p>Best regards,</p>
		<p>RPA and Automation</p>
		`, dateStr, timeStr)
}
