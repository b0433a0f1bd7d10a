// Package authz resolves DOTS roles and approval eligibility.
package authz

import (
	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
)

// ApplicationName is the application entry holding DOTS roles in the BPMS
// identity payload.
const ApplicationName = "DOTS"

// ResolveRoles returns the role list of the first application entry matching
// appName, or nil when the user holds no roles there.
func ResolveRoles(applications []entity.Application, appName string) []entity.Role {
	for _, app := range applications {
		if app.Name == appName {
			return app.Roles
		}
	}
	return nil
}

// IsAdmin returns true iff any role carries the admin user type.
func IsAdmin(roles []entity.Role) bool {
	for _, r := range roles {
		if r.UserType == entity.UserTypeAdmin {
			return true
		}
	}
	return false
}

// CanApprove decides whether a holder of roles may approve the transaction
// at the given status.
//
// The status-dependent requirement:
//   - x020: VD001 whose cost center equals verificator 1, or VG001 matching
//     verificator 1 when verificator 2 is absent.
//   - x021: VG001 matching verificator 2 (or verificator 1 when 2 is absent).
//   - x030, x040: VA001 with a nil cost center (global accounting role).
//   - everything else: no.
func CanApprove(code status.Code, roles []entity.Role, txn *entity.Transaction) bool {
	if txn == nil {
		return false
	}

	switch code {
	case status.CashAdvancePending1, status.DisbursementPending1:
		for _, r := range roles {
			if r.UserType == entity.UserTypeVerificatorDept && matches(r.CostCenter, txn.Verificator1) {
				return true
			}
			if r.UserType == entity.UserTypeVerificatorGroup && txn.Verificator2 == "" && matches(r.CostCenter, txn.Verificator1) {
				return true
			}
		}
	case status.CashAdvancePending2, status.DisbursementPending2:
		target := txn.Verificator2
		if target == "" {
			target = txn.Verificator1
		}
		for _, r := range roles {
			if r.UserType == entity.UserTypeVerificatorGroup && matches(r.CostCenter, target) {
				return true
			}
		}
	case status.CashAdvanceAccounting, status.DisbursementAccounting,
		status.CashAdvancePendingSAP, status.DisbursementPendingSAP:
		for _, r := range roles {
			if r.UserType == entity.UserTypeVerificatorAcct && r.CostCenter == nil {
				return true
			}
		}
	}

	return false
}

func matches(costCenter *string, verificator string) bool {
	return costCenter != nil && verificator != "" && *costCenter == verificator
}
