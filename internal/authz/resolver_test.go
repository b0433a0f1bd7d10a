package authz

import (
	"testing"

	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
)

func strPtr(s string) *string { return &s }

func TestResolveRoles(t *testing.T) {
	apps := []entity.Application{
		{Name: "HRIS", Roles: []entity.Role{{UserType: "X"}}},
		{Name: "DOTS", Roles: []entity.Role{{UserType: entity.UserTypeVerificatorDept}}},
		{Name: "DOTS", Roles: []entity.Role{{UserType: entity.UserTypeAdmin}}},
	}

	roles := ResolveRoles(apps, "DOTS")
	if len(roles) != 1 || roles[0].UserType != entity.UserTypeVerificatorDept {
		t.Errorf("ResolveRoles() = %v, want first DOTS entry", roles)
	}

	if got := ResolveRoles(apps, "MISSING"); got != nil {
		t.Errorf("ResolveRoles() = %v, want nil for unknown app", got)
	}
}

func TestIsAdmin(t *testing.T) {
	if !IsAdmin([]entity.Role{{UserType: "VD001"}, {UserType: "A0001"}}) {
		t.Error("IsAdmin() = false, want true")
	}
	if IsAdmin([]entity.Role{{UserType: "VD001"}, {UserType: "VA001"}}) {
		t.Error("IsAdmin() = true, want false")
	}
	if IsAdmin(nil) {
		t.Error("IsAdmin(nil) = true, want false")
	}
}

func TestCanApprove(t *testing.T) {
	txnBoth := &entity.Transaction{Verificator1: "CC1", Verificator2: "CC2"}
	txnFirstOnly := &entity.Transaction{Verificator1: "CC1"}

	tests := []struct {
		name     string
		code     status.Code
		roles    []entity.Role
		txn      *entity.Transaction
		expected bool
	}{
		{
			"VD matching verificator 1 at 1020",
			status.CashAdvancePending1,
			[]entity.Role{{UserType: "VD001", CostCenter: strPtr("CC1")}},
			txnBoth,
			true,
		},
		{
			"VD wrong cost center at 1020",
			status.CashAdvancePending1,
			[]entity.Role{{UserType: "VD001", CostCenter: strPtr("CC2")}},
			txnBoth,
			false,
		},
		{
			"VG at 2020 only when second verificator absent",
			status.DisbursementPending1,
			[]entity.Role{{UserType: "VG001", CostCenter: strPtr("CC1")}},
			txnFirstOnly,
			true,
		},
		{
			"VG at 2020 rejected when second verificator present",
			status.DisbursementPending1,
			[]entity.Role{{UserType: "VG001", CostCenter: strPtr("CC1")}},
			txnBoth,
			false,
		},
		{
			"VG matching verificator 2 at 1021",
			status.CashAdvancePending2,
			[]entity.Role{{UserType: "VG001", CostCenter: strPtr("CC2")}},
			txnBoth,
			true,
		},
		{
			"VG falls back to verificator 1 at 2021 when 2 absent",
			status.DisbursementPending2,
			[]entity.Role{{UserType: "VG001", CostCenter: strPtr("CC1")}},
			txnFirstOnly,
			true,
		},
		{
			"VD cannot act at 1021",
			status.CashAdvancePending2,
			[]entity.Role{{UserType: "VD001", CostCenter: strPtr("CC2")}},
			txnBoth,
			false,
		},
		{
			"VA with nil cost center at 1030",
			status.CashAdvanceAccounting,
			[]entity.Role{{UserType: "VA001", CostCenter: nil}},
			txnBoth,
			true,
		},
		{
			"VA with scoped cost center rejected at 2030",
			status.DisbursementAccounting,
			[]entity.Role{{UserType: "VA001", CostCenter: strPtr("CC1")}},
			txnBoth,
			false,
		},
		{
			"VA at 2040",
			status.DisbursementPendingSAP,
			[]entity.Role{{UserType: "VA001", CostCenter: nil}},
			txnBoth,
			true,
		},
		{
			"no approver at creation status",
			status.CashAdvanceCreated,
			[]entity.Role{{UserType: "VD001", CostCenter: strPtr("CC1")}, {UserType: "VA001"}},
			txnBoth,
			false,
		},
		{
			"no approver at paid status",
			status.CashAdvancePaid,
			[]entity.Role{{UserType: "VA001", CostCenter: nil}},
			txnBoth,
			false,
		},
		{
			"nil transaction",
			status.CashAdvancePending1,
			[]entity.Role{{UserType: "VD001", CostCenter: strPtr("CC1")}},
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanApprove(tt.code, tt.roles, tt.txn); got != tt.expected {
				t.Errorf("CanApprove(%v) = %v, want %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestCanApprove_Idempotent(t *testing.T) {
	txn := &entity.Transaction{Verificator1: "CC1", Verificator2: ""}
	roles := []entity.Role{{UserType: "VD001", CostCenter: strPtr("CC1")}}

	first := CanApprove(status.CashAdvancePending1, roles, txn)
	second := CanApprove(status.CashAdvancePending1, roles, txn)
	if first != second {
		t.Errorf("CanApprove not idempotent: %v then %v", first, second)
	}
}
