package wizard

import "testing"

func TestCategoryCode(t *testing.T) {
	tests := []struct {
		label    string
		docType  string
		expected string
	}{
		{CategoryCashCard, DocTypeEmployee, "A"},
		{CategoryBusinessTrip, DocTypeEmployee, "H"},
		{CategoryBusinessEvent, DocTypeEmployee, "E"},
		{CategoryReimbursement, DocTypeEmployee, "R"},
		{CategoryCompBen, DocTypeEmployee, "B"},
		{CategoryCorporateCard, DocTypeEmployee, "P"},
		{CategoryBusinessEvent, DocTypeVendor, "E"},
		{CategoryCashCard, DocTypeVendor, CodeErr},
		{"Unknown", DocTypeEmployee, CodeErr},
		{"", DocTypeEmployee, CodeErr},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.docType, func(t *testing.T) {
			if got := CategoryCode(tt.label, tt.docType); got != tt.expected {
				t.Errorf("CategoryCode(%q, %q) = %q, want %q", tt.label, tt.docType, got, tt.expected)
			}
		})
	}
}

func TestFormTypeCode(t *testing.T) {
	if got := FormTypeCode(FormTypeCashAdvance, DocTypeEmployee); got != "C" {
		t.Errorf("FormTypeCode(Cash in Advance) = %q, want C", got)
	}
	if got := FormTypeCode(FormTypeDisbursement, DocTypeEmployee); got != "R" {
		t.Errorf("FormTypeCode(Disbursement) = %q, want R", got)
	}
	if got := FormTypeCode("Other", DocTypeEmployee); got != CodeErr {
		t.Errorf("FormTypeCode(Other) = %q, want %q", got, CodeErr)
	}
}

func TestPaymentTypeCode(t *testing.T) {
	if got := PaymentTypeCode("Transfer"); got != "T" {
		t.Errorf("PaymentTypeCode(Transfer) = %q, want T", got)
	}
	if got := PaymentTypeCode("Cash"); got != "C" {
		t.Errorf("PaymentTypeCode(Cash) = %q, want C", got)
	}
	if got := PaymentTypeCode("Cheque"); got != "" {
		t.Errorf("PaymentTypeCode(Cheque) = %q, want empty", got)
	}
}

func TestTrxType(t *testing.T) {
	if got := TrxType("C"); got != 1 {
		t.Errorf("TrxType(C) = %d, want 1", got)
	}
	if got := TrxType("R"); got != 2 {
		t.Errorf("TrxType(R) = %d, want 2", got)
	}
	if got := TrxType("X"); got != 0 {
		t.Errorf("TrxType(X) = %d, want 0", got)
	}
}

func TestDefaultPaymentType(t *testing.T) {
	if got := DefaultPaymentType("IDR"); got != "Transfer" {
		t.Errorf("DefaultPaymentType(IDR) = %q, want Transfer", got)
	}
	if got := DefaultPaymentType("USD"); got != "Cash" {
		t.Errorf("DefaultPaymentType(USD) = %q, want Cash", got)
	}
}
