package wizard

// Doc types.
const (
	DocTypeEmployee = "employee"
	DocTypeVendor   = "vendor"
)

// Form type labels.
const (
	FormTypeCashAdvance  = "Cash in Advance"
	FormTypeDisbursement = "Disbursement"
)

// Category labels.
const (
	CategoryBusinessEvent = "Business Event"
	CategoryBusinessTrip  = "Business Trip"
	CategoryReimbursement = "Reimbursement"
	CategoryCompBen       = "Compensation & Benefit"
	CategoryCashCard      = "Cash Card"
	CategoryCorporateCard = "Corporate Card"
)

// CodeErr is the sentinel returned for unmapped labels. Mapping never
// panics; callers treat the sentinel as a validation failure.
const CodeErr = "err"

var employeeCategoryCodes = map[string]string{
	CategoryBusinessEvent: "E",
	CategoryBusinessTrip:  "H",
	CategoryReimbursement: "R",
	CategoryCompBen:       "B",
	CategoryCashCard:      "A",
	CategoryCorporateCard: "P",
}

var vendorCategoryCodes = map[string]string{
	CategoryBusinessEvent: "E",
	CategoryBusinessTrip:  "H",
	CategoryReimbursement: "R",
}

// CategoryCode maps a category label to its backend code for the given doc
// type, or CodeErr when unmapped.
func CategoryCode(label, docType string) string {
	table := employeeCategoryCodes
	if docType == DocTypeVendor {
		table = vendorCategoryCodes
	}
	if code, ok := table[label]; ok {
		return code
	}
	return CodeErr
}

// FormTypeCode maps a form type label to its backend code, or CodeErr.
func FormTypeCode(label, docType string) string {
	switch label {
	case FormTypeCashAdvance:
		return "C"
	case FormTypeDisbursement:
		return "R"
	default:
		return CodeErr
	}
}

// PaymentTypeCode maps a payment type label to its backend code. Unmapped
// labels yield an empty string.
func PaymentTypeCode(label string) string {
	switch label {
	case "Transfer":
		return "T"
	case "Cash":
		return "C"
	default:
		return ""
	}
}

// TrxType returns the numeric transaction kind for a form type code.
func TrxType(formTypeCode string) int {
	switch formTypeCode {
	case "C":
		return 1
	case "R":
		return 2
	default:
		return 0
	}
}

// DefaultPaymentType picks the payment type label used when no bank record
// matches: Transfer for IDR, Cash otherwise.
func DefaultPaymentType(currency string) string {
	if currency == "IDR" {
		return "Transfer"
	}
	return "Cash"
}
