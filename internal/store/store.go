package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/kagisom/bankrecon/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const dateFormat = "2006-01-02"

// Store persists batches, transactions and ledger entries to sqlite and
// reads customer reference data.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the database at dbPath and applies
// pending migrations.
func NewStore(dbPath string) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("can not create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("can not open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("can not connect with database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to set up migrate driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up): %w", err)
	}

	return nil
}

// Customers returns all customer records.
func (s *Store) Customers() ([]domain.Customer, error) {
	rows, err := s.db.Query(`
		SELECT customer_id, payment_terms
		FROM customers
		ORDER BY customer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.PaymentTerms); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// InsertBatch persists a batch header and returns the generated batch id.
// The header insert is its own committed unit so a failed later step still
// leaves an inspectable batch record.
func (s *Store) InsertBatch(b domain.Batch) (int64, error) {
	stmt, err := s.db.Prepare(`
		INSERT INTO batch (branch_code, batch_date, operator_name, sub_total, discount, total, posted)
		VALUES (?, ?, ?, ?, ?, ?, 0)
		RETURNING batch_id;
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	var newID int64
	err = stmt.QueryRow(
		b.BranchCode,
		b.BatchDate.Format(dateFormat),
		b.OperatorName,
		b.SubTotal.String(),
		b.Discount.String(),
		b.Total.String(),
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert batch: %w", err)
	}

	return newID, nil
}

// InsertBatchTransactions bulk-inserts transactions tagged with a batch id,
// all in one database transaction.
func (s *Store) InsertBatchTransactions(batchID int64, txns []domain.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO batch_transactions
		(batch_id, booking_date, value_date, remittance_info, reference,
		 amount, discount, total, currency, credit_debit_indicator)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer stmt.Close()

	for _, txn := range txns {
		_, err := stmt.Exec(
			batchID,
			txn.BookingDate.Format(dateFormat),
			txn.ValueDate.Format(dateFormat),
			txn.RemittanceInfo,
			txn.Reference,
			txn.Amount.String(),
			txn.Discount.String(),
			txn.Total.String(),
			txn.Currency,
			string(txn.CreditDebit),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}

	return nil
}

// PostToLedger inserts a general-ledger entry and flips the batch posted flag
// together: both commit or neither does.
func (s *Store) PostToLedger(e domain.LedgerEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO general_ledger (batch_id, posting_date, total_amount)
		VALUES (?, ?, ?);
	`, e.BatchID, e.PostingDate.Format(dateFormat), e.TotalAmount.String())
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	res, err := tx.Exec(`UPDATE batch SET posted = 1 WHERE batch_id = ?;`, e.BatchID)
	if err != nil {
		return fmt.Errorf("failed to update batch posted flag: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("batch with ID %d not found", e.BatchID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger post: %w", err)
	}

	return nil
}

// BatchPosted reports whether a batch has been posted to the ledger.
func (s *Store) BatchPosted(batchID int64) (bool, error) {
	var posted bool
	err := s.db.QueryRow(`SELECT posted FROM batch WHERE batch_id = ?`, batchID).Scan(&posted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("batch with ID %d not found", batchID)
		}
		return false, fmt.Errorf("failed to query batch: %w", err)
	}
	return posted, nil
}

// InsertCustomer adds a customer reference record. Used by fixtures and the
// seed tooling, not by the reconciliation run itself.
func (s *Store) InsertCustomer(c domain.Customer) error {
	_, err := s.db.Exec(`
		INSERT INTO customers (customer_id, payment_terms) VALUES (?, ?);
	`, c.ID, c.PaymentTerms)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// parseAmount round-trips a stored decimal string.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid stored amount %q: %w", s, err)
	}
	return d, nil
}

// LedgerTotal returns the posted total for a batch, if any.
func (s *Store) LedgerTotal(batchID int64) (decimal.Decimal, error) {
	var raw string
	err := s.db.QueryRow(`
		SELECT total_amount FROM general_ledger WHERE batch_id = ?
	`, batchID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("no ledger entry for batch %d", batchID)
		}
		return decimal.Zero, fmt.Errorf("failed to query ledger: %w", err)
	}

	return parseAmount(raw)
}
