// Package approval derives the action set available on a transaction for a
// given viewer, replacing per-button conditionals with one table-driven
// lookup over (status, roles, ownership).
package approval

import (
	"github.com/tugu-digital/dots/internal/authz"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
)

// Action is a user-triggerable operation on a transaction.
type Action string

const (
	ActionUpdate          Action = "UPDATE"
	ActionDelete          Action = "DELETE"
	ActionRequestApproval Action = "REQUEST_APPROVAL"
	ActionNextStep        Action = "NEXT_STEP"
	ActionApprove         Action = "APPROVE"
	ActionRevise          Action = "REVISE"
	ActionReject          Action = "REJECT"
)

// ActionSet is the set of actions a viewer may take.
type ActionSet map[Action]bool

// Has reports membership.
func (s ActionSet) Has(a Action) bool { return s[a] }

// List returns the actions in a stable order.
func (s ActionSet) List() []Action {
	ordered := []Action{
		ActionUpdate, ActionDelete, ActionRequestApproval,
		ActionNextStep, ActionApprove, ActionRevise, ActionReject,
	}
	var out []Action
	for _, a := range ordered {
		if s[a] {
			out = append(out, a)
		}
	}
	return out
}

// rejectSuppressed lists the statuses where reject is withheld even from an
// eligible approver: accounting review onward is settled via revise or SAP.
var rejectSuppressed = map[status.Code]bool{
	status.CashAdvanceAccounting:  true,
	status.DisbursementAccounting: true,
	status.CashAdvancePendingSAP:  true,
	status.DisbursementPendingSAP: true,
}

// approveSuppressed lists the statuses where approval already happened and
// only the SAP posting is pending.
var approveSuppressed = map[status.Code]bool{
	status.CashAdvancePendingSAP:  true,
	status.DisbursementPendingSAP: true,
}

// reviseWindow lists the statuses where an admin may send a transaction
// back to its creator even without approver authority at that stage.
var reviseWindow = map[status.Code]bool{
	status.CashAdvancePending1:    true,
	status.CashAdvancePending2:    true,
	status.CashAdvanceAccounting:  true,
	status.DisbursementPending1:   true,
	status.DisbursementPending2:   true,
	status.DisbursementAccounting: true,
}

// AvailableActions resolves the action set for a viewer. items carries the
// material line items when the transaction is a disbursement close-out;
// their realization amounts gate request-approval.
func AvailableActions(txn *entity.Transaction, roles []entity.Role, viewerEmail string, items []entity.MaterialItem) ActionSet {
	actions := ActionSet{}
	if txn == nil || txn.Status.IsTerminal() && txn.Status != status.CashAdvancePaid {
		return actions
	}

	isCreator := txn.CreatedBy != "" && txn.CreatedBy == viewerEmail

	if isCreator {
		switch txn.Status {
		case status.CashAdvanceCreated, status.DisbursementCreated:
			actions[ActionUpdate] = true
			actions[ActionDelete] = true
			if requestApprovalAllowed(txn, items) {
				actions[ActionRequestApproval] = true
			}
		case status.CashAdvancePaid:
			// A paid cash advance proceeds to its close-out disbursement.
			actions[ActionNextStep] = true
		}
	}

	if txn.Status.IsTerminal() {
		return actions
	}

	canApprove := authz.CanApprove(txn.Status, roles, txn)
	admin := authz.IsAdmin(roles)

	if canApprove && !approveSuppressed[txn.Status] {
		actions[ActionApprove] = true
	}
	if canApprove || (admin && reviseWindow[txn.Status]) {
		actions[ActionRevise] = true
	}
	if (canApprove || admin) && !rejectSuppressed[txn.Status] &&
		txn.Status != status.CashAdvanceCreated && txn.Status != status.DisbursementCreated {
		actions[ActionReject] = true
	}

	return actions
}

// requestApprovalAllowed applies the close-out guard: a disbursement that
// settles a cash advance may only enter approval once every material item
// carries a nonzero realization amount.
func requestApprovalAllowed(txn *entity.Transaction, items []entity.MaterialItem) bool {
	if !txn.IsCloseOut() {
		return true
	}
	for _, item := range items {
		if item.RealizationAmount == 0 {
			return false
		}
	}
	return true
}
