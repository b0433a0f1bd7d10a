package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

var (
	// ErrNotFound is returned when a transaction does not exist.
	ErrNotFound = errors.New("transaction not found")

	// ErrNotEditable is returned when an update or delete is attempted past
	// the creation status.
	ErrNotEditable = errors.New("transaction is no longer editable")

	// ErrNotOwner is returned when a creator-only operation is attempted by
	// someone else.
	ErrNotOwner = errors.New("only the creator may perform this action")
)

// TransactionService manages the persisted transactions
type TransactionService interface {
	Create(ctx context.Context, txn *entity.Transaction) (*entity.Transaction, error)
	GetByHash(ctx context.Context, hash string) (*entity.Transaction, error)
	List(ctx context.Context, filter port.TransactionFilter) ([]*entity.Transaction, error)
	Update(ctx context.Context, hash, actorEmail string, update *entity.Transaction) (*entity.Transaction, error)
	Delete(ctx context.Context, hash, actorEmail string) error
	Logs(ctx context.Context, hash string) ([]*entity.TransactionLog, error)
	MaterialItems(ctx context.Context, transactionID int64) ([]*entity.MaterialItem, error)
}

type transactionServiceImpl struct {
	txnRepo   port.TransactionRepository
	itemRepo  port.MaterialItemRepository
	logRepo   port.TransactionLogRepository
	txManager port.TransactionManager
	logger    Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	txnRepo port.TransactionRepository,
	itemRepo port.MaterialItemRepository,
	logRepo port.TransactionLogRepository,
	txManager port.TransactionManager,
	logger Logger,
) TransactionService {
	return &transactionServiceImpl{
		txnRepo:   txnRepo,
		itemRepo:  itemRepo,
		logRepo:   logRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Create persists a new transaction, assigning its DOTS number and hash
// alias, and writes the creation log entry.
func (s *transactionServiceImpl) Create(ctx context.Context, txn *entity.Transaction) (*entity.Transaction, error) {
	now := time.Now()
	txn.Hash = newHash()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		seq, err := s.txnRepo.NextSequence(txCtx, now.Year())
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		txn.DotsNumber = fmt.Sprintf("DOTS/%04d/%06d", now.Year(), seq)

		if err := s.txnRepo.Create(txCtx, txn); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		log := &entity.TransactionLog{
			TransactionID:  txn.ID,
			DotsNumber:     txn.DotsNumber,
			PreviousStatus: "",
			NewStatus:      txn.Status.String(),
			Action:         "CREATE",
			ActionBy:       txn.CreatedBy,
			Timestamp:      now,
		}
		if err := s.logRepo.Create(txCtx, log); err != nil {
			return fmt.Errorf("create log: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create transaction", "error", err, "created_by", txn.CreatedBy)
		return nil, err
	}

	s.logger.Info("Transaction created", "dots_number", txn.DotsNumber, "status", txn.Status)
	return txn, nil
}

// GetByHash retrieves a transaction by its hash alias
func (s *transactionServiceImpl) GetByHash(ctx context.Context, hash string) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByHash(ctx, hash)
	if err != nil {
		s.logger.Error("Failed to get transaction", "error", err, "hash", hash)
		return nil, err
	}
	if txn == nil {
		return nil, ErrNotFound
	}
	return txn, nil
}

// List retrieves transactions matching the filter
func (s *transactionServiceImpl) List(ctx context.Context, filter port.TransactionFilter) ([]*entity.Transaction, error) {
	txns, err := s.txnRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list transactions", "error", err)
		return nil, err
	}
	return txns, nil
}

// Update replaces the editable fields of a transaction still at its creation
// status. Only the creator may update.
func (s *transactionServiceImpl) Update(ctx context.Context, hash, actorEmail string, update *entity.Transaction) (*entity.Transaction, error) {
	txn, err := s.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if txn.CreatedBy != actorEmail {
		return nil, ErrNotOwner
	}
	if txn.Status != status.CashAdvanceCreated && txn.Status != status.DisbursementCreated {
		return nil, ErrNotEditable
	}

	applyUpdate(txn, update)
	txn.ModifiedBy = actorEmail
	txn.UpdatedAt = time.Now()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.txnRepo.Update(txCtx, txn); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		log := &entity.TransactionLog{
			TransactionID:  txn.ID,
			DotsNumber:     txn.DotsNumber,
			PreviousStatus: txn.Status.String(),
			NewStatus:      txn.Status.String(),
			Action:         "UPDATE",
			ActionBy:       actorEmail,
			Timestamp:      time.Now(),
		}
		return s.logRepo.Create(txCtx, log)
	})
	if err != nil {
		s.logger.Error("Failed to update transaction", "error", err, "dots_number", txn.DotsNumber)
		return nil, err
	}

	s.logger.Info("Transaction updated", "dots_number", txn.DotsNumber, "modified_by", actorEmail)
	return txn, nil
}

// Delete terminates a transaction still at its creation status, moving it
// to the deleted code rather than removing the row.
func (s *transactionServiceImpl) Delete(ctx context.Context, hash, actorEmail string) error {
	txn, err := s.GetByHash(ctx, hash)
	if err != nil {
		return err
	}
	if txn.CreatedBy != actorEmail {
		return ErrNotOwner
	}
	if txn.Status != status.CashAdvanceCreated && txn.Status != status.DisbursementCreated {
		return ErrNotEditable
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.txnRepo.UpdateStatus(txCtx, txn.ID, status.Deleted, actorEmail); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		log := &entity.TransactionLog{
			TransactionID:  txn.ID,
			DotsNumber:     txn.DotsNumber,
			PreviousStatus: txn.Status.String(),
			NewStatus:      status.Deleted.String(),
			Action:         "DELETE",
			ActionBy:       actorEmail,
			Timestamp:      time.Now(),
		}
		return s.logRepo.Create(txCtx, log)
	})
	if err != nil {
		s.logger.Error("Failed to delete transaction", "error", err, "dots_number", txn.DotsNumber)
		return err
	}

	s.logger.Info("Transaction deleted", "dots_number", txn.DotsNumber, "deleted_by", actorEmail)
	return nil
}

// Logs retrieves the status history of a transaction
func (s *transactionServiceImpl) Logs(ctx context.Context, hash string) ([]*entity.TransactionLog, error) {
	txn, err := s.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.GetByTransactionID(ctx, txn.ID)
	if err != nil {
		s.logger.Error("Failed to get logs", "error", err, "dots_number", txn.DotsNumber)
		return nil, err
	}
	return logs, nil
}

// MaterialItems retrieves the material line items of a transaction
func (s *transactionServiceImpl) MaterialItems(ctx context.Context, transactionID int64) ([]*entity.MaterialItem, error) {
	items, err := s.itemRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		s.logger.Error("Failed to get material items", "error", err, "transaction_id", transactionID)
		return nil, err
	}
	return items, nil
}

// newHash mints the URL alias of a transaction.
func newHash() string {
	return uuid.NewString()
}

// applyUpdate copies the user-editable fields onto the stored record.
// Identity, numbering and workflow fields are never overwritten.
func applyUpdate(dst, src *entity.Transaction) {
	dst.DestinationScope = src.DestinationScope
	dst.RegionGroup = src.RegionGroup
	dst.StartDate = src.StartDate
	dst.EndDate = src.EndDate
	dst.EventName = src.EventName
	dst.Purpose = src.Purpose
	dst.CostCenter = src.CostCenter
	dst.Currency = src.Currency
	dst.PaymentType = src.PaymentType
	dst.BankKey = src.BankKey
	dst.BankAccount = src.BankAccount
	dst.BankName = src.BankName
	dst.Amount = src.Amount
	dst.Remark = src.Remark
}
