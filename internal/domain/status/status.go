// Package status defines the DOTS transaction status taxonomy.
//
// A status is a 4-digit string whose leading digit encodes the transaction
// kind (1 = Cash in Advance, 2 = Disbursement, 3 = terminal) and whose
// remaining digits encode the workflow stage.
package status

// Code is a 4-digit transaction status code.
type Code string

const (
	// Cash in Advance lifecycle.
	CashAdvanceCreated    Code = "1010"
	CashAdvancePending1   Code = "1020"
	CashAdvancePending2   Code = "1021"
	CashAdvanceAccounting Code = "1030"
	CashAdvancePendingSAP Code = "1040"
	CashAdvancePosted     Code = "1050"
	CashAdvancePaid       Code = "1060"

	// Disbursement lifecycle.
	DisbursementCreated    Code = "2010"
	DisbursementPending1   Code = "2020"
	DisbursementPending2   Code = "2021"
	DisbursementAccounting Code = "2030"
	DisbursementPendingSAP Code = "2040"
	DisbursementPosted     Code = "2050"
	DisbursementPaid       Code = "2060"

	// Terminal codes shared by both kinds.
	Deleted  Code = "3010"
	Rejected Code = "3020"
)

// Kind is the transaction kind encoded in the leading status digit.
type Kind int

const (
	KindUnknown       Kind = 0
	KindCashAdvance   Kind = 1
	KindDisbursement  Kind = 2
	KindTerminalGroup Kind = 3
)

var validCodes = map[Code]bool{
	CashAdvanceCreated:     true,
	CashAdvancePending1:    true,
	CashAdvancePending2:    true,
	CashAdvanceAccounting:  true,
	CashAdvancePendingSAP:  true,
	CashAdvancePosted:      true,
	CashAdvancePaid:        true,
	DisbursementCreated:    true,
	DisbursementPending1:   true,
	DisbursementPending2:   true,
	DisbursementAccounting: true,
	DisbursementPendingSAP: true,
	DisbursementPosted:     true,
	DisbursementPaid:       true,
	Deleted:                true,
	Rejected:               true,
}

var terminalCodes = map[Code]bool{
	CashAdvancePaid:  true,
	DisbursementPaid: true,
	Deleted:          true,
	Rejected:         true,
}

// revisable lists the review stages that may be handed back to the creator.
// Revision keeps the numeric code in place; every stage with an eligible
// reviewer, the SAP queue included, is in the window.
var revisable = map[Code]bool{
	CashAdvancePending1:    true,
	CashAdvancePending2:    true,
	CashAdvanceAccounting:  true,
	CashAdvancePendingSAP:  true,
	DisbursementPending1:   true,
	DisbursementPending2:   true,
	DisbursementAccounting: true,
	DisbursementPendingSAP: true,
}

// All returns every code of the taxonomy in lifecycle order.
func All() []Code {
	return []Code{
		CashAdvanceCreated, CashAdvancePending1, CashAdvancePending2,
		CashAdvanceAccounting, CashAdvancePendingSAP, CashAdvancePosted,
		CashAdvancePaid,
		DisbursementCreated, DisbursementPending1, DisbursementPending2,
		DisbursementAccounting, DisbursementPendingSAP, DisbursementPosted,
		DisbursementPaid,
		Deleted, Rejected,
	}
}

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// IsValid returns true if the code belongs to the DOTS taxonomy.
func (c Code) IsValid() bool {
	return validCodes[c]
}

// IsTerminal returns true if no further transitions are allowed from the code.
func (c Code) IsTerminal() bool {
	return terminalCodes[c]
}

// CanRevise returns true if the code is a review stage that may be handed
// back to the creator.
func (c Code) CanRevise() bool {
	return revisable[c]
}

// Kind returns the transaction kind encoded in the leading digit.
func (c Code) Kind() Kind {
	if len(c) != 4 {
		return KindUnknown
	}
	switch c[0] {
	case '1':
		return KindCashAdvance
	case '2':
		return KindDisbursement
	case '3':
		return KindTerminalGroup
	default:
		return KindUnknown
	}
}

// Initial returns the creation status for a transaction kind.
func Initial(kind Kind) Code {
	switch kind {
	case KindCashAdvance:
		return CashAdvanceCreated
	case KindDisbursement:
		return DisbursementCreated
	default:
		return ""
	}
}

// advanceOnApprove maps each approvable status to its successor. Statuses
// with two entries pick the second when the transaction has no second
// verificator (the VG slot is skipped).
var advanceOnApprove = map[Code]Code{
	CashAdvancePending1:    CashAdvancePending2,
	CashAdvancePending2:    CashAdvanceAccounting,
	CashAdvanceAccounting:  CashAdvancePendingSAP,
	DisbursementPending1:   DisbursementPending2,
	DisbursementPending2:   DisbursementAccounting,
	DisbursementAccounting: DisbursementPendingSAP,
}

// NextOnApprove returns the status an approval advances to. When the
// transaction carries no second verificator the VG001 stage is skipped and
// the first approval lands directly on accounting review. ok is false when
// the status is not approvable.
func NextOnApprove(c Code, hasSecondVerificator bool) (Code, bool) {
	next, ok := advanceOnApprove[c]
	if !ok {
		return "", false
	}
	if !hasSecondVerificator {
		switch c {
		case CashAdvancePending1:
			return CashAdvanceAccounting, true
		case DisbursementPending1:
			return DisbursementAccounting, true
		}
	}
	return next, true
}

// NextOnRequestApproval returns the status a creator's request-approval
// action advances to. ok is false unless the transaction sits at its
// creation status.
func NextOnRequestApproval(c Code) (Code, bool) {
	switch c {
	case CashAdvanceCreated:
		return CashAdvancePending1, true
	case DisbursementCreated:
		return DisbursementPending1, true
	default:
		return "", false
	}
}

// NextOnPost returns the status a SAP posting advances to.
func NextOnPost(c Code) (Code, bool) {
	switch c {
	case CashAdvancePendingSAP:
		return CashAdvancePosted, true
	case DisbursementPendingSAP:
		return DisbursementPosted, true
	default:
		return "", false
	}
}

// NextOnPay returns the status a payment advances to.
func NextOnPay(c Code) (Code, bool) {
	switch c {
	case CashAdvancePosted:
		return CashAdvancePaid, true
	case DisbursementPosted:
		return DisbursementPaid, true
	default:
		return "", false
	}
}
