// Package wizard implements the DOTS multi-step form wizard: the shared
// form data record, the step sequencer and its required-field schema, and
// the label-to-code mapping applied at submission.
package wizard

// FormData is the flat record accumulated across wizard steps. Every field
// is a string; an empty string means "not filled". The form type and
// category choices live on the session, not here; they survive a step reset
// but fall to ResetAll.
type FormData struct {
	DestinationScope string `json:"destination_scope"`
	RegionGroup      string `json:"region_group"`
	CostCenter       string `json:"cost_center"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	EventName        string `json:"event_name"`
	Purpose          string `json:"purpose"`

	EmployeeBP    string `json:"employee_bp"`
	EmployeeName  string `json:"employee_name"`
	EmployeeNIK   string `json:"employee_nik"`
	EmployeeEmail string `json:"employee_email"`
	CardNumber    string `json:"card_number"`

	VendorBP      string `json:"vendor_bp"`
	VendorName    string `json:"vendor_name"`
	VendorAddress string `json:"vendor_address"`

	Currency    string `json:"currency"`
	PaymentType string `json:"payment_type"`
	BankKey     string `json:"bank_key"`
	BankAccount string `json:"bank_account"`
	BankName    string `json:"bank_name"`
	Amount      string `json:"amount"`

	Remark string `json:"remark"`
}

// fieldRef maps a field name to its storage. The names are the wire names
// the step components use.
func (f *FormData) fieldRef(name string) (*string, bool) {
	switch name {
	case "destination_scope":
		return &f.DestinationScope, true
	case "region_group":
		return &f.RegionGroup, true
	case "cost_center":
		return &f.CostCenter, true
	case "start_date":
		return &f.StartDate, true
	case "end_date":
		return &f.EndDate, true
	case "event_name":
		return &f.EventName, true
	case "purpose":
		return &f.Purpose, true
	case "employee_bp":
		return &f.EmployeeBP, true
	case "employee_name":
		return &f.EmployeeName, true
	case "employee_nik":
		return &f.EmployeeNIK, true
	case "employee_email":
		return &f.EmployeeEmail, true
	case "card_number":
		return &f.CardNumber, true
	case "vendor_bp":
		return &f.VendorBP, true
	case "vendor_name":
		return &f.VendorName, true
	case "vendor_address":
		return &f.VendorAddress, true
	case "currency":
		return &f.Currency, true
	case "payment_type":
		return &f.PaymentType, true
	case "bank_key":
		return &f.BankKey, true
	case "bank_account":
		return &f.BankAccount, true
	case "bank_name":
		return &f.BankName, true
	case "amount":
		return &f.Amount, true
	case "remark":
		return &f.Remark, true
	default:
		return nil, false
	}
}

// Set assigns a field by wire name. Unknown names report false.
func (f *FormData) Set(name, value string) bool {
	ref, ok := f.fieldRef(name)
	if !ok {
		return false
	}
	*ref = value
	return true
}

// Get reads a field by wire name.
func (f *FormData) Get(name string) (string, bool) {
	ref, ok := f.fieldRef(name)
	if !ok {
		return "", false
	}
	return *ref, true
}

// IsEmpty reports whether every field is blank.
func (f *FormData) IsEmpty() bool {
	return *f == FormData{}
}

// Reset restores the all-empty initial record.
func (f *FormData) Reset() {
	*f = FormData{}
}
