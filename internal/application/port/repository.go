package port

import (
	"context"

	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
)

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Status    status.Code
	CreatedBy string
	TrxType   int
	Limit     int
	Offset    int
}

// TransactionRepository defines persistence operations for Transaction
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	GetByHash(ctx context.Context, hash string) (*entity.Transaction, error)
	GetByDotsNumber(ctx context.Context, dotsNumber string) (*entity.Transaction, error)
	Update(ctx context.Context, txn *entity.Transaction) error
	UpdateStatus(ctx context.Context, id int64, code status.Code, modifiedBy string) error
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
	NextSequence(ctx context.Context, year int) (int64, error)
}

// MaterialItemRepository defines persistence operations for MaterialItem
type MaterialItemRepository interface {
	Create(ctx context.Context, item *entity.MaterialItem) error
	GetByTransactionID(ctx context.Context, transactionID int64) ([]*entity.MaterialItem, error)
	UpdateRealization(ctx context.Context, id int64, amount float64) error
}

// TransactionLogRepository defines persistence operations for TransactionLog
type TransactionLogRepository interface {
	Create(ctx context.Context, log *entity.TransactionLog) error
	GetByTransactionID(ctx context.Context, transactionID int64) ([]*entity.TransactionLog, error)
}

// AttachmentRepository defines persistence operations for Attachment
type AttachmentRepository interface {
	Create(ctx context.Context, att *entity.Attachment) error
	GetByTransactionID(ctx context.Context, transactionID int64) ([]*entity.Attachment, error)
	MarkUploaded(ctx context.Context, id int64, mfilesID string) error
	MarkFailed(ctx context.Context, id int64, errorMsg string) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
