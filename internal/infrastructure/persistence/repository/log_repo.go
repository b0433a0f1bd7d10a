package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"go.uber.org/zap"
)

// TransactionLogRepository implements port.TransactionLogRepository
type TransactionLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTransactionLogRepository creates a new transaction log repository
func NewTransactionLogRepository(db *sql.DB, logger *zap.Logger) port.TransactionLogRepository {
	return &TransactionLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends an audit log row
func (r *TransactionLogRepository) Create(ctx context.Context, log *entity.TransactionLog) error {
	query := `
		INSERT INTO transaction_logs (
			transaction_id, dots_number, previous_status, new_status,
			action, action_by, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		log.TransactionID,
		log.DotsNumber,
		log.PreviousStatus,
		log.NewStatus,
		log.Action,
		log.ActionBy,
		log.Notes,
	)
	if err != nil {
		r.logger.Error("Failed to create transaction log", zap.Error(err))
		return fmt.Errorf("failed to create transaction log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	log.ID = id
	return nil
}

// GetByTransactionID retrieves the status history of a transaction, oldest first
func (r *TransactionLogRepository) GetByTransactionID(ctx context.Context, transactionID int64) ([]*entity.TransactionLog, error) {
	query := `
		SELECT id, transaction_id, dots_number, previous_status, new_status,
			action, action_by, notes, created_at
		FROM transaction_logs
		WHERE transaction_id = ?
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, transactionID)
	if err != nil {
		r.logger.Error("Failed to list transaction logs", zap.Error(err))
		return nil, fmt.Errorf("failed to list transaction logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.TransactionLog
	for rows.Next() {
		var log entity.TransactionLog
		if err := rows.Scan(
			&log.ID,
			&log.TransactionID,
			&log.DotsNumber,
			&log.PreviousStatus,
			&log.NewStatus,
			&log.Action,
			&log.ActionBy,
			&log.Notes,
			&log.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction log: %w", err)
		}
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction logs: %w", err)
	}

	return logs, nil
}

// Verify interface compliance
var _ port.TransactionLogRepository = (*TransactionLogRepository)(nil)
