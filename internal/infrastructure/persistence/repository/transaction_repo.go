package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
	"go.uber.org/zap"
)

// transactionColumns is the canonical column list shared by every SELECT so
// scanTransaction stays in sync with the schema.
const transactionColumns = `
	id, dots_number, hash, status, trx_type, form_type, category, doc_type,
	destination_scope, region_group, start_date, end_date, event_name,
	purpose, cost_center, business_partner, party_name, party_email,
	card_number, currency, payment_type, bank_key, bank_account, bank_name,
	amount, verificator_1, verificator_2, verificator_3, verificator_4,
	verificator_5, remark, linked_dots_number, created_by, modified_by,
	created_at, updated_at`

// TransactionRepository implements port.TransactionRepository
type TransactionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB, logger *zap.Logger) port.TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (
			dots_number, hash, status, trx_type, form_type, category, doc_type,
			destination_scope, region_group, start_date, end_date, event_name,
			purpose, cost_center, business_partner, party_name, party_email,
			card_number, currency, payment_type, bank_key, bank_account,
			bank_name, amount, verificator_1, verificator_2, verificator_3,
			verificator_4, verificator_5, remark, linked_dots_number,
			created_by, modified_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		txn.DotsNumber,
		txn.Hash,
		string(txn.Status),
		txn.TrxType,
		txn.FormType,
		txn.Category,
		txn.DocType,
		txn.DestinationScope,
		txn.RegionGroup,
		txn.StartDate,
		txn.EndDate,
		txn.EventName,
		txn.Purpose,
		txn.CostCenter,
		txn.BusinessPartner,
		txn.PartyName,
		txn.PartyEmail,
		txn.CardNumber,
		txn.Currency,
		txn.PaymentType,
		txn.BankKey,
		txn.BankAccount,
		txn.BankName,
		txn.Amount,
		txn.Verificator1,
		txn.Verificator2,
		txn.Verificator3,
		txn.Verificator4,
		txn.Verificator5,
		txn.Remark,
		txn.LinkedDotsNumber,
		txn.CreatedBy,
		txn.ModifiedBy,
	)
	if err != nil {
		r.logger.Error("Failed to create transaction", zap.Error(err))
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	txn.ID = id
	return nil
}

// GetByID retrieves a transaction by primary key
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	query := `SELECT` + transactionColumns + ` FROM transactions WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByHash retrieves a transaction by its external hash alias
func (r *TransactionRepository) GetByHash(ctx context.Context, hash string) (*entity.Transaction, error) {
	query := `SELECT` + transactionColumns + ` FROM transactions WHERE hash = ?`
	return r.getOne(ctx, query, hash)
}

// GetByDotsNumber retrieves a transaction by its DOTS number
func (r *TransactionRepository) GetByDotsNumber(ctx context.Context, dotsNumber string) (*entity.Transaction, error) {
	query := `SELECT` + transactionColumns + ` FROM transactions WHERE dots_number = ?`
	return r.getOne(ctx, query, dotsNumber)
}

func (r *TransactionRepository) getOne(ctx context.Context, query string, arg interface{}) (*entity.Transaction, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg)
	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// Update persists all mutable fields of a transaction
func (r *TransactionRepository) Update(ctx context.Context, txn *entity.Transaction) error {
	query := `
		UPDATE transactions SET
			status = ?, trx_type = ?, form_type = ?, category = ?,
			destination_scope = ?, region_group = ?, start_date = ?,
			end_date = ?, event_name = ?, purpose = ?, cost_center = ?,
			business_partner = ?, party_name = ?, party_email = ?,
			card_number = ?, currency = ?, payment_type = ?, bank_key = ?,
			bank_account = ?, bank_name = ?, amount = ?,
			verificator_1 = ?, verificator_2 = ?, verificator_3 = ?,
			verificator_4 = ?, verificator_5 = ?, remark = ?,
			linked_dots_number = ?, modified_by = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		string(txn.Status),
		txn.TrxType,
		txn.FormType,
		txn.Category,
		txn.DestinationScope,
		txn.RegionGroup,
		txn.StartDate,
		txn.EndDate,
		txn.EventName,
		txn.Purpose,
		txn.CostCenter,
		txn.BusinessPartner,
		txn.PartyName,
		txn.PartyEmail,
		txn.CardNumber,
		txn.Currency,
		txn.PaymentType,
		txn.BankKey,
		txn.BankAccount,
		txn.BankName,
		txn.Amount,
		txn.Verificator1,
		txn.Verificator2,
		txn.Verificator3,
		txn.Verificator4,
		txn.Verificator5,
		txn.Remark,
		txn.LinkedDotsNumber,
		txn.ModifiedBy,
		time.Now(),
		txn.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update transaction", zap.Error(err), zap.Int64("id", txn.ID))
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// UpdateStatus advances a transaction to a new status code
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id int64, code status.Code, modifiedBy string) error {
	query := `UPDATE transactions SET status = ?, modified_by = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, string(code), modifiedBy, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update transaction status", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	return nil
}

// List retrieves transactions matching the filter, newest first
func (r *TransactionRepository) List(ctx context.Context, filter port.TransactionFilter) ([]*entity.Transaction, error) {
	var conds []string
	var args []interface{}

	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.CreatedBy != "" {
		conds = append(conds, "created_by = ?")
		args = append(args, filter.CreatedBy)
	}
	if filter.TrxType != 0 {
		conds = append(conds, "trx_type = ?")
		args = append(args, filter.TrxType)
	}

	query := `SELECT` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list transactions", zap.Error(err))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*entity.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// NextSequence increments and returns the per-year DOTS number sequence.
// Must run inside a transaction so two creations never share a number.
func (r *TransactionRepository) NextSequence(ctx context.Context, year int) (int64, error) {
	exec := getExecutor(ctx, r.db)

	_, err := exec.ExecContext(ctx, `
		INSERT INTO dots_sequences (year, last_value) VALUES (?, 1)
		ON CONFLICT(year) DO UPDATE SET last_value = last_value + 1
	`, year)
	if err != nil {
		r.logger.Error("Failed to advance sequence", zap.Error(err), zap.Int("year", year))
		return 0, fmt.Errorf("failed to advance sequence: %w", err)
	}

	var value int64
	err = exec.QueryRowContext(ctx, `SELECT last_value FROM dots_sequences WHERE year = ?`, year).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence: %w", err)
	}
	return value, nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*entity.Transaction, error) {
	var txn entity.Transaction
	var code string

	err := row.Scan(
		&txn.ID,
		&txn.DotsNumber,
		&txn.Hash,
		&code,
		&txn.TrxType,
		&txn.FormType,
		&txn.Category,
		&txn.DocType,
		&txn.DestinationScope,
		&txn.RegionGroup,
		&txn.StartDate,
		&txn.EndDate,
		&txn.EventName,
		&txn.Purpose,
		&txn.CostCenter,
		&txn.BusinessPartner,
		&txn.PartyName,
		&txn.PartyEmail,
		&txn.CardNumber,
		&txn.Currency,
		&txn.PaymentType,
		&txn.BankKey,
		&txn.BankAccount,
		&txn.BankName,
		&txn.Amount,
		&txn.Verificator1,
		&txn.Verificator2,
		&txn.Verificator3,
		&txn.Verificator4,
		&txn.Verificator5,
		&txn.Remark,
		&txn.LinkedDotsNumber,
		&txn.CreatedBy,
		&txn.ModifiedBy,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Status = status.Code(code)
	return &txn, nil
}

// Verify interface compliance
var _ port.TransactionRepository = (*TransactionRepository)(nil)
