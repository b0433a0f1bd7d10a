package wizard

// Step names a wizard step.
type Step string

const (
	StepFormType       Step = "form_type"
	StepCategory       Step = "category"
	StepDestination    Step = "destination"
	StepCostCenter     Step = "cost_center"
	StepTransaction    Step = "transaction_detail"
	StepEmployee       Step = "employee_information"
	StepVendor         Step = "vendor_information"
	StepPayment        Step = "payment_information"
	StepCardPayment    Step = "card_payment"
	StepAdditionalInfo Step = "additional_information"
	StepFinish         Step = "finish"
)

// stepFields is the single declarative schema consumed by both the
// can-advance predicate and the reset-on-back logic, so the two can never
// drift apart.
var stepFields = map[Step][]string{
	// Form type and category live on the session; the sequencer checks them
	// directly.
	StepFormType:       {},
	StepCategory:       {},
	StepDestination:    {"destination_scope"},
	StepCostCenter:     {"cost_center"},
	StepTransaction:    {"start_date", "end_date", "event_name", "purpose"},
	StepEmployee:       {"employee_bp", "employee_name"},
	StepVendor:         {"vendor_bp", "vendor_name"},
	StepPayment:        {"currency", "payment_type", "amount"},
	StepCardPayment:    {"card_number"},
	StepAdditionalInfo: {},
	StepFinish:         {},
}

// optionalStepFields are owned by a step (cleared on back) but not required
// to advance.
var optionalStepFields = map[Step][]string{
	StepDestination:    {"region_group"},
	StepEmployee:       {"employee_nik", "employee_email"},
	StepVendor:         {"vendor_address"},
	StepPayment:        {"bank_key", "bank_account", "bank_name"},
	StepAdditionalInfo: {"remark"},
}

// RequiredFields returns the fields that must be non-empty to advance past
// the step.
func RequiredFields(step Step) []string {
	return stepFields[step]
}

// OwnedFields returns every field a step owns, required and optional. Back
// navigation clears exactly these.
func OwnedFields(step Step) []string {
	owned := append([]string{}, stepFields[step]...)
	return append(owned, optionalStepFields[step]...)
}

// domesticOnlyCategories force destination scope to domestic and skip the
// international/region step entirely.
var domesticOnlyCategories = map[string]bool{
	CategoryCompBen:       true,
	CategoryReimbursement: true,
	CategoryCashCard:      true,
	CategoryCorporateCard: true,
	CategoryBusinessEvent: true,
}

// IsDomesticOnly reports whether the category is on the domestic allow-list.
func IsDomesticOnly(category string) bool {
	return domesticOnlyCategories[category]
}

// cardCategories require the card payment step and restrict eligible
// employees to card holders.
var cardCategories = map[string]bool{
	CategoryCashCard:      true,
	CategoryCorporateCard: true,
}

// IsCardCategory reports whether the category is card-funded.
func IsCardCategory(category string) bool {
	return cardCategories[category]
}

// Sequence produces the ordered step list for a doc type and category. The
// category may be empty, in which case the employee sequence includes every
// potentially reachable step up to the category choice.
func Sequence(docType, category string) []Step {
	if docType == DocTypeVendor {
		return []Step{
			StepTransaction,
			StepVendor,
			StepDestination,
			StepCostCenter,
			StepPayment,
			StepAdditionalInfo,
			StepFinish,
		}
	}

	steps := []Step{StepFormType, StepCategory}
	if category == "" || !IsDomesticOnly(category) {
		steps = append(steps, StepDestination)
	}
	steps = append(steps, StepCostCenter, StepTransaction, StepEmployee, StepPayment)
	if IsCardCategory(category) {
		steps = append(steps, StepCardPayment)
	}
	return append(steps, StepAdditionalInfo, StepFinish)
}
