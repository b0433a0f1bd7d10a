package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"go.uber.org/zap"
)

// AttachmentRepository implements port.AttachmentRepository
type AttachmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *sql.DB, logger *zap.Logger) port.AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts attachment metadata in PENDING state
func (r *AttachmentRepository) Create(ctx context.Context, att *entity.Attachment) error {
	query := `
		INSERT INTO attachments (
			transaction_id, dots_number, file_name, file_size, content_type,
			mfiles_id, status, error_message, uploaded_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		att.TransactionID,
		att.DotsNumber,
		att.FileName,
		att.FileSize,
		att.ContentType,
		att.MFilesID,
		att.Status,
		att.ErrorMessage,
		att.UploadedBy,
	)
	if err != nil {
		r.logger.Error("Failed to create attachment", zap.Error(err))
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	att.ID = id
	return nil
}

// GetByTransactionID retrieves all attachments of a transaction
func (r *AttachmentRepository) GetByTransactionID(ctx context.Context, transactionID int64) ([]*entity.Attachment, error) {
	query := `
		SELECT id, transaction_id, dots_number, file_name, file_size,
			content_type, mfiles_id, status, error_message, uploaded_by,
			created_at
		FROM attachments
		WHERE transaction_id = ?
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, transactionID)
	if err != nil {
		r.logger.Error("Failed to list attachments", zap.Error(err))
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	var atts []*entity.Attachment
	for rows.Next() {
		var att entity.Attachment
		if err := rows.Scan(
			&att.ID,
			&att.TransactionID,
			&att.DotsNumber,
			&att.FileName,
			&att.FileSize,
			&att.ContentType,
			&att.MFilesID,
			&att.Status,
			&att.ErrorMessage,
			&att.UploadedBy,
			&att.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		atts = append(atts, &att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attachments: %w", err)
	}

	return atts, nil
}

// MarkUploaded records a successful transfer to M-Files
func (r *AttachmentRepository) MarkUploaded(ctx context.Context, id int64, mfilesID string) error {
	query := `UPDATE attachments SET status = ?, mfiles_id = ?, error_message = '' WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, entity.AttachmentStatusUploaded, mfilesID, id)
	if err != nil {
		r.logger.Error("Failed to mark attachment uploaded", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to mark attachment uploaded: %w", err)
	}
	return nil
}

// MarkFailed records a failed transfer so the upload can be retried
func (r *AttachmentRepository) MarkFailed(ctx context.Context, id int64, errorMsg string) error {
	query := `UPDATE attachments SET status = ?, error_message = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, entity.AttachmentStatusFailed, errorMsg, id)
	if err != nil {
		r.logger.Error("Failed to mark attachment failed", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to mark attachment failed: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.AttachmentRepository = (*AttachmentRepository)(nil)
