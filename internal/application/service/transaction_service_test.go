package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
)

func newTestTransactionService(txnRepo *mockTxnRepo, logRepo *mockLogRepo) TransactionService {
	return NewTransactionService(txnRepo, &mockItemRepo{}, logRepo, &mockTxManager{}, &mockLogger{})
}

func TestTransactionService_CreateAssignsNumberAndHash(t *testing.T) {
	txnRepo := &mockTxnRepo{
		nextSequenceFunc: func(ctx context.Context, year int) (int64, error) {
			return 123, nil
		},
	}
	logRepo := &mockLogRepo{}
	svc := newTestTransactionService(txnRepo, logRepo)

	txn := &entity.Transaction{
		Status:    status.CashAdvanceCreated,
		TrxType:   1,
		FormType:  "C",
		Category:  "H",
		DocType:   "employee",
		CreatedBy: "creator@tugu.com",
	}

	got, err := svc.Create(context.Background(), txn)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	wantNumber := fmt.Sprintf("DOTS/%04d/000123", time.Now().Year())
	if got.DotsNumber != wantNumber {
		t.Errorf("Create() dots_number = %q, want %q", got.DotsNumber, wantNumber)
	}
	if got.Hash == "" {
		t.Errorf("Create() left hash empty")
	}
	if len(logRepo.logs) != 1 || logRepo.logs[0].Action != "CREATE" {
		t.Errorf("Create() logs = %+v, want one CREATE entry", logRepo.logs)
	}
}

func TestTransactionService_GetByHashNotFound(t *testing.T) {
	svc := newTestTransactionService(&mockTxnRepo{}, &mockLogRepo{})

	_, err := svc.GetByHash(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByHash() error = %v, want %v", err, ErrNotFound)
	}
}

func TestTransactionService_UpdateGuards(t *testing.T) {
	tests := []struct {
		name    string
		status  status.Code
		actor   string
		wantErr error
	}{
		{
			name:   "creator updates at creation status",
			status: status.CashAdvanceCreated,
			actor:  "creator@tugu.com",
		},
		{
			name:    "non-creator is refused",
			status:  status.CashAdvanceCreated,
			actor:   "other@tugu.com",
			wantErr: ErrNotOwner,
		},
		{
			name:    "past creation status is frozen",
			status:  status.CashAdvancePending1,
			actor:   "creator@tugu.com",
			wantErr: ErrNotEditable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := pendingTxn(tt.status)
			txnRepo := &mockTxnRepo{
				getByHashFunc: func(ctx context.Context, hash string) (*entity.Transaction, error) {
					return txn, nil
				},
			}
			svc := newTestTransactionService(txnRepo, &mockLogRepo{})

			_, err := svc.Update(context.Background(), "abc", tt.actor, &entity.Transaction{Purpose: "updated"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Update() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if txn.Purpose != "updated" {
				t.Errorf("Update() did not apply fields")
			}
		})
	}
}

func TestTransactionService_UpdateNeverTouchesIdentity(t *testing.T) {
	txn := pendingTxn(status.CashAdvanceCreated)
	txnRepo := &mockTxnRepo{
		getByHashFunc: func(ctx context.Context, hash string) (*entity.Transaction, error) {
			return txn, nil
		},
	}
	svc := newTestTransactionService(txnRepo, &mockLogRepo{})

	update := &entity.Transaction{
		DotsNumber: "DOTS/9999/999999",
		Hash:       "evil",
		Status:     status.CashAdvancePaid,
		Purpose:    "travel",
	}
	got, err := svc.Update(context.Background(), "abc", "creator@tugu.com", update)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.DotsNumber != "DOTS/2026/000007" || got.Hash != "abc" {
		t.Errorf("Update() overwrote identity: %q %q", got.DotsNumber, got.Hash)
	}
	if got.Status != status.CashAdvanceCreated {
		t.Errorf("Update() overwrote status: %v", got.Status)
	}
}

func TestTransactionService_DeleteIsSoft(t *testing.T) {
	txn := pendingTxn(status.CashAdvanceCreated)
	txnRepo := &mockTxnRepo{
		getByHashFunc: func(ctx context.Context, hash string) (*entity.Transaction, error) {
			return txn, nil
		},
	}
	logRepo := &mockLogRepo{}
	svc := newTestTransactionService(txnRepo, logRepo)

	if err := svc.Delete(context.Background(), "abc", "creator@tugu.com"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(txnRepo.statusUpdates) != 1 || txnRepo.statusUpdates[0] != status.Deleted {
		t.Errorf("Delete() status updates = %v, want [%v]", txnRepo.statusUpdates, status.Deleted)
	}
	if len(logRepo.logs) != 1 || logRepo.logs[0].NewStatus != status.Deleted.String() {
		t.Errorf("Delete() did not log the terminal status")
	}
}
