package wizard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
)

// ErrUnmappedLabel is returned when a label-valued field has no backend
// code.
var ErrUnmappedLabel = errors.New("label has no backend code")

// BuildSubmission translates the accumulated record into the transaction
// payload persisted at the final step. Label-valued fields become backend
// codes; vendor submissions hard-code a domestic destination scope and clear
// the region group. Approval chain slots are filled by the caller.
func BuildSubmission(s *Session) (*entity.Transaction, error) {
	formType := FormTypeCode(s.FormType, s.DocType)
	if formType == CodeErr {
		return nil, fmt.Errorf("%w: form type %q", ErrUnmappedLabel, s.FormType)
	}
	category := CategoryCode(s.Category, s.DocType)
	if s.DocType == DocTypeVendor && s.Category == "" {
		// Vendor runs have no category step.
		category = ""
	} else if category == CodeErr {
		return nil, fmt.Errorf("%w: category %q", ErrUnmappedLabel, s.Category)
	}

	trxType := TrxType(formType)
	initial := status.Initial(status.Kind(trxType))
	if initial == "" {
		return nil, fmt.Errorf("no initial status for form type %q", s.FormType)
	}

	amount := 0.0
	if s.Data.Amount != "" {
		parsed, err := strconv.ParseFloat(s.Data.Amount, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", s.Data.Amount, err)
		}
		amount = parsed
	}

	txn := &entity.Transaction{
		Status:           initial,
		TrxType:          trxType,
		FormType:         formType,
		Category:         category,
		DocType:          s.DocType,
		DestinationScope: s.Data.DestinationScope,
		RegionGroup:      s.Data.RegionGroup,
		StartDate:        s.Data.StartDate,
		EndDate:          s.Data.EndDate,
		EventName:        s.Data.EventName,
		Purpose:          s.Data.Purpose,
		CostCenter:       s.Data.CostCenter,
		Currency:         s.Data.Currency,
		PaymentType:      PaymentTypeCode(s.Data.PaymentType),
		BankKey:          s.Data.BankKey,
		BankAccount:      s.Data.BankAccount,
		BankName:         s.Data.BankName,
		Amount:           amount,
		Remark:           s.Data.Remark,
		CreatedBy:        s.CreatedBy,
	}

	switch s.DocType {
	case DocTypeVendor:
		txn.BusinessPartner = s.Data.VendorBP
		txn.PartyName = s.Data.VendorName
		txn.DestinationScope = "domestic"
		txn.RegionGroup = ""
	default:
		txn.BusinessPartner = s.Data.EmployeeBP
		txn.PartyName = s.Data.EmployeeName
		txn.PartyEmail = s.Data.EmployeeEmail
		txn.CardNumber = s.Data.CardNumber
	}

	return txn, nil
}
