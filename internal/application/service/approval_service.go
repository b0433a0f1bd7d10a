package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/approval"
	"github.com/tugu-digital/dots/internal/authz"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
	"github.com/tugu-digital/dots/internal/domain/workflow"
)

var (
	// ErrActionNotAllowed is returned when the viewer may not take the
	// requested action at the transaction's status.
	ErrActionNotAllowed = errors.New("action not allowed for this user at this status")

	// ErrNotesRequired is returned when revise or reject is attempted
	// without notes.
	ErrNotesRequired = errors.New("notes are required for this action")
)

// Viewer is the acting user's resolved identity.
type Viewer struct {
	Email string
	BP    string
	Roles []entity.Role
}

// ApprovalService executes workflow actions against a transaction
type ApprovalService interface {
	// Actions returns the action set the viewer may take.
	Actions(ctx context.Context, hash string, viewer Viewer) (approval.ActionSet, error)

	// Execute performs a workflow action. For NextStep the returned
	// transaction is the newly created close-out disbursement; otherwise it
	// is the acted-on transaction with its advanced status.
	Execute(ctx context.Context, hash string, action approval.Action, viewer Viewer, notes string) (*entity.Transaction, error)

	// AdminAdvance fires a system-stage trigger (SAP posting, payment) on
	// behalf of an admin.
	AdminAdvance(ctx context.Context, hash string, trigger workflow.Trigger, viewer Viewer) (*entity.Transaction, error)
}

type approvalServiceImpl struct {
	txnRepo   port.TransactionRepository
	itemRepo  port.MaterialItemRepository
	logRepo   port.TransactionLogRepository
	txManager port.TransactionManager
	notifier  port.ApprovalNotifier
	sanitizer *bluemonday.Policy
	logger    Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	txnRepo port.TransactionRepository,
	itemRepo port.MaterialItemRepository,
	logRepo port.TransactionLogRepository,
	txManager port.TransactionManager,
	notifier port.ApprovalNotifier,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		txnRepo:   txnRepo,
		itemRepo:  itemRepo,
		logRepo:   logRepo,
		txManager: txManager,
		notifier:  notifier,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

func (s *approvalServiceImpl) Actions(ctx context.Context, hash string, viewer Viewer) (approval.ActionSet, error) {
	txn, items, err := s.load(ctx, hash)
	if err != nil {
		return nil, err
	}
	return approval.AvailableActions(txn, viewer.Roles, viewer.Email, items), nil
}

func (s *approvalServiceImpl) Execute(ctx context.Context, hash string, action approval.Action, viewer Viewer, notes string) (*entity.Transaction, error) {
	txn, items, err := s.load(ctx, hash)
	if err != nil {
		return nil, err
	}

	actions := approval.AvailableActions(txn, viewer.Roles, viewer.Email, items)
	if !actions.Has(action) {
		return nil, ErrActionNotAllowed
	}

	switch action {
	case approval.ActionRevise, approval.ActionReject:
		if strings.TrimSpace(notes) == "" {
			return nil, ErrNotesRequired
		}
	case approval.ActionNextStep:
		return s.nextStep(ctx, txn, viewer)
	case approval.ActionUpdate:
		// Updates carry a payload and go through TransactionService.
		return nil, fmt.Errorf("%w: update is not a workflow action", ErrActionNotAllowed)
	}
	notes = s.sanitizer.Sanitize(notes)

	trigger, ok := actionTrigger(action)
	if !ok {
		return nil, ErrActionNotAllowed
	}

	machine := workflow.NewTransactionMachine(txn.Status, txn.HasSecondVerificator())
	if err := machine.Fire(ctx, trigger); err != nil {
		return nil, fmt.Errorf("workflow: %w", err)
	}
	previous := txn.Status
	next := machine.State()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if next != previous {
			if err := s.txnRepo.UpdateStatus(txCtx, txn.ID, next, viewer.Email); err != nil {
				return fmt.Errorf("update status: %w", err)
			}
		}
		log := &entity.TransactionLog{
			TransactionID:  txn.ID,
			DotsNumber:     txn.DotsNumber,
			PreviousStatus: previous.String(),
			NewStatus:      next.String(),
			Action:         string(action),
			ActionBy:       viewer.Email,
			Notes:          notes,
			Timestamp:      time.Now(),
		}
		return s.logRepo.Create(txCtx, log)
	})
	if err != nil {
		s.logger.Error("Failed to execute action", "error", err, "action", action, "dots_number", txn.DotsNumber)
		return nil, err
	}
	txn.Status = next
	txn.ModifiedBy = viewer.Email

	s.notify(ctx, action, txn, viewer, notes)

	s.logger.Info("Action executed",
		"action", action, "dots_number", txn.DotsNumber,
		"from", previous, "to", next, "by", viewer.Email)
	return txn, nil
}

func (s *approvalServiceImpl) AdminAdvance(ctx context.Context, hash string, trigger workflow.Trigger, viewer Viewer) (*entity.Transaction, error) {
	if trigger != workflow.TriggerPost && trigger != workflow.TriggerPay {
		return nil, ErrActionNotAllowed
	}
	if !authz.IsAdmin(viewer.Roles) {
		return nil, ErrActionNotAllowed
	}

	txn, _, err := s.load(ctx, hash)
	if err != nil {
		return nil, err
	}

	machine := workflow.NewTransactionMachine(txn.Status, txn.HasSecondVerificator())
	if err := machine.Fire(ctx, trigger); err != nil {
		return nil, fmt.Errorf("workflow: %w", err)
	}
	previous := txn.Status
	next := machine.State()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.txnRepo.UpdateStatus(txCtx, txn.ID, next, viewer.Email); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		log := &entity.TransactionLog{
			TransactionID:  txn.ID,
			DotsNumber:     txn.DotsNumber,
			PreviousStatus: previous.String(),
			NewStatus:      next.String(),
			Action:         trigger.String(),
			ActionBy:       viewer.Email,
			Timestamp:      time.Now(),
		}
		return s.logRepo.Create(txCtx, log)
	})
	if err != nil {
		s.logger.Error("Failed to advance", "error", err, "trigger", trigger, "dots_number", txn.DotsNumber)
		return nil, err
	}
	txn.Status = next

	s.logger.Info("Stage advanced", "trigger", trigger, "dots_number", txn.DotsNumber, "to", next)
	return txn, nil
}

// nextStep opens the close-out disbursement for a paid cash advance. The
// new transaction inherits the chain and references its source.
func (s *approvalServiceImpl) nextStep(ctx context.Context, src *entity.Transaction, viewer Viewer) (*entity.Transaction, error) {
	now := time.Now()
	closeOut := *src
	closeOut.ID = 0
	closeOut.TrxType = 2
	closeOut.Status = status.DisbursementCreated
	closeOut.LinkedDotsNumber = src.DotsNumber
	closeOut.CreatedBy = viewer.Email
	closeOut.ModifiedBy = ""
	closeOut.CreatedAt = now
	closeOut.UpdatedAt = now

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		seq, err := s.txnRepo.NextSequence(txCtx, now.Year())
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		closeOut.DotsNumber = fmt.Sprintf("DOTS/%04d/%06d", now.Year(), seq)
		closeOut.Hash = newHash()

		if err := s.txnRepo.Create(txCtx, &closeOut); err != nil {
			return fmt.Errorf("create close-out: %w", err)
		}
		log := &entity.TransactionLog{
			TransactionID:  closeOut.ID,
			DotsNumber:     closeOut.DotsNumber,
			NewStatus:      closeOut.Status.String(),
			Action:         string(approval.ActionNextStep),
			ActionBy:       viewer.Email,
			Notes:          "close-out of " + src.DotsNumber,
			Timestamp:      now,
		}
		return s.logRepo.Create(txCtx, log)
	})
	if err != nil {
		s.logger.Error("Failed to open close-out", "error", err, "source", src.DotsNumber)
		return nil, err
	}

	s.logger.Info("Close-out opened", "dots_number", closeOut.DotsNumber, "source", src.DotsNumber)
	return &closeOut, nil
}

// notify mirrors the action to BPMS. Failures are logged, not propagated:
// the status change is already committed and the mirror is re-driven from
// the log on the BPMS side.
func (s *approvalServiceImpl) notify(ctx context.Context, action approval.Action, txn *entity.Transaction, viewer Viewer, notes string) {
	var err error
	switch action {
	case approval.ActionApprove, approval.ActionRequestApproval:
		err = s.notifier.NotifyApproval(ctx, viewer.Email, txn.DotsNumber)
	case approval.ActionRevise:
		err = s.notifier.NotifyRevision(ctx, viewer.Email, txn.DotsNumber, notes)
	default:
		return
	}
	if err != nil {
		s.logger.Error("Failed to notify BPMS", "error", err, "action", action, "dots_number", txn.DotsNumber)
	}
}

func (s *approvalServiceImpl) load(ctx context.Context, hash string) (*entity.Transaction, []entity.MaterialItem, error) {
	txn, err := s.txnRepo.GetByHash(ctx, hash)
	if err != nil {
		return nil, nil, err
	}
	if txn == nil {
		return nil, nil, ErrNotFound
	}

	var items []entity.MaterialItem
	if txn.IsCloseOut() {
		rows, err := s.itemRepo.GetByTransactionID(ctx, txn.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, row := range rows {
			items = append(items, *row)
		}
	}
	return txn, items, nil
}

func actionTrigger(action approval.Action) (workflow.Trigger, bool) {
	switch action {
	case approval.ActionRequestApproval:
		return workflow.TriggerRequestApproval, true
	case approval.ActionApprove:
		return workflow.TriggerApprove, true
	case approval.ActionRevise:
		return workflow.TriggerRevise, true
	case approval.ActionReject:
		return workflow.TriggerReject, true
	case approval.ActionDelete:
		return workflow.TriggerDelete, true
	default:
		return "", false
	}
}
