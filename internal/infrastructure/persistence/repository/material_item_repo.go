package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"go.uber.org/zap"
)

// MaterialItemRepository implements port.MaterialItemRepository
type MaterialItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMaterialItemRepository creates a new material item repository
func NewMaterialItemRepository(db *sql.DB, logger *zap.Logger) port.MaterialItemRepository {
	return &MaterialItemRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new material item
func (r *MaterialItemRepository) Create(ctx context.Context, item *entity.MaterialItem) error {
	query := `
		INSERT INTO material_items (transaction_id, description, amount, realization_amount)
		VALUES (?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		item.TransactionID,
		item.Description,
		item.Amount,
		item.RealizationAmount,
	)
	if err != nil {
		r.logger.Error("Failed to create material item", zap.Error(err))
		return fmt.Errorf("failed to create material item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	item.ID = id
	return nil
}

// GetByTransactionID retrieves all items of a transaction
func (r *MaterialItemRepository) GetByTransactionID(ctx context.Context, transactionID int64) ([]*entity.MaterialItem, error) {
	query := `
		SELECT id, transaction_id, description, amount, realization_amount
		FROM material_items
		WHERE transaction_id = ?
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, transactionID)
	if err != nil {
		r.logger.Error("Failed to list material items", zap.Error(err))
		return nil, fmt.Errorf("failed to list material items: %w", err)
	}
	defer rows.Close()

	var items []*entity.MaterialItem
	for rows.Next() {
		var item entity.MaterialItem
		if err := rows.Scan(
			&item.ID,
			&item.TransactionID,
			&item.Description,
			&item.Amount,
			&item.RealizationAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan material item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate material items: %w", err)
	}

	return items, nil
}

// UpdateRealization records the realized amount of an item
func (r *MaterialItemRepository) UpdateRealization(ctx context.Context, id int64, amount float64) error {
	query := `UPDATE material_items SET realization_amount = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, amount, id)
	if err != nil {
		r.logger.Error("Failed to update realization", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to update realization: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.MaterialItemRepository = (*MaterialItemRepository)(nil)
