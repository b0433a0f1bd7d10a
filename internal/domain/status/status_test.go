package status

import "testing"

func TestCode_IsTerminal(t *testing.T) {
	tests := []struct {
		code     Code
		expected bool
	}{
		{CashAdvanceCreated, false},
		{CashAdvancePending1, false},
		{CashAdvancePending2, false},
		{CashAdvanceAccounting, false},
		{CashAdvancePendingSAP, false},
		{CashAdvancePosted, false},
		{CashAdvancePaid, true},
		{DisbursementCreated, false},
		{DisbursementPosted, false},
		{DisbursementPaid, true},
		{Deleted, true},
		{Rejected, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.IsTerminal(); got != tt.expected {
				t.Errorf("Code.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		expected bool
	}{
		{"cash advance created", CashAdvanceCreated, true},
		{"disbursement paid", DisbursementPaid, true},
		{"rejected", Rejected, true},
		{"unknown code", Code("9999"), false},
		{"empty code", Code(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.IsValid(); got != tt.expected {
				t.Errorf("Code.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCode_Kind(t *testing.T) {
	tests := []struct {
		code     Code
		expected Kind
	}{
		{CashAdvanceCreated, KindCashAdvance},
		{CashAdvancePaid, KindCashAdvance},
		{DisbursementPending2, KindDisbursement},
		{Deleted, KindTerminalGroup},
		{Rejected, KindTerminalGroup},
		{Code(""), KindUnknown},
		{Code("4010"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Kind(); got != tt.expected {
				t.Errorf("Code.Kind() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInitial(t *testing.T) {
	if got := Initial(KindCashAdvance); got != CashAdvanceCreated {
		t.Errorf("Initial(KindCashAdvance) = %v, want %v", got, CashAdvanceCreated)
	}
	if got := Initial(KindDisbursement); got != DisbursementCreated {
		t.Errorf("Initial(KindDisbursement) = %v, want %v", got, DisbursementCreated)
	}
	if got := Initial(KindUnknown); got != "" {
		t.Errorf("Initial(KindUnknown) = %v, want empty", got)
	}
}

func TestNextOnApprove(t *testing.T) {
	tests := []struct {
		name          string
		code          Code
		hasSecond     bool
		expected      Code
		expectedOK    bool
	}{
		{"1020 with second verificator", CashAdvancePending1, true, CashAdvancePending2, true},
		{"1020 without second verificator", CashAdvancePending1, false, CashAdvanceAccounting, true},
		{"1021", CashAdvancePending2, true, CashAdvanceAccounting, true},
		{"1030", CashAdvanceAccounting, true, CashAdvancePendingSAP, true},
		{"2020 with second verificator", DisbursementPending1, true, DisbursementPending2, true},
		{"2020 without second verificator", DisbursementPending1, false, DisbursementAccounting, true},
		{"2030", DisbursementAccounting, false, DisbursementPendingSAP, true},
		{"created not approvable", CashAdvanceCreated, true, "", false},
		{"pending SAP not approvable", CashAdvancePendingSAP, true, "", false},
		{"terminal not approvable", Rejected, true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextOnApprove(tt.code, tt.hasSecond)
			if got != tt.expected || ok != tt.expectedOK {
				t.Errorf("NextOnApprove(%v, %v) = (%v, %v), want (%v, %v)",
					tt.code, tt.hasSecond, got, ok, tt.expected, tt.expectedOK)
			}
		})
	}
}

func TestNextOnRequestApproval(t *testing.T) {
	if got, ok := NextOnRequestApproval(CashAdvanceCreated); !ok || got != CashAdvancePending1 {
		t.Errorf("NextOnRequestApproval(1010) = (%v, %v), want (1020, true)", got, ok)
	}
	if got, ok := NextOnRequestApproval(DisbursementCreated); !ok || got != DisbursementPending1 {
		t.Errorf("NextOnRequestApproval(2010) = (%v, %v), want (2020, true)", got, ok)
	}
	if _, ok := NextOnRequestApproval(CashAdvancePending1); ok {
		t.Error("NextOnRequestApproval(1020) should not be allowed")
	}
}

func TestNextOnPostAndPay(t *testing.T) {
	if got, ok := NextOnPost(CashAdvancePendingSAP); !ok || got != CashAdvancePosted {
		t.Errorf("NextOnPost(1040) = (%v, %v), want (1050, true)", got, ok)
	}
	if _, ok := NextOnPost(CashAdvancePosted); ok {
		t.Error("NextOnPost(1050) should not be allowed")
	}
	if got, ok := NextOnPay(DisbursementPosted); !ok || got != DisbursementPaid {
		t.Errorf("NextOnPay(2050) = (%v, %v), want (2060, true)", got, ok)
	}
	if _, ok := NextOnPay(DisbursementPaid); ok {
		t.Error("NextOnPay(2060) should not be allowed")
	}
}

func TestCode_CanRevise(t *testing.T) {
	tests := []struct {
		code     Code
		expected bool
	}{
		{CashAdvanceCreated, false},
		{CashAdvancePending1, true},
		{CashAdvancePending2, true},
		{CashAdvanceAccounting, true},
		{CashAdvancePendingSAP, true},
		{CashAdvancePosted, false},
		{CashAdvancePaid, false},
		{DisbursementPendingSAP, true},
		{DisbursementPosted, false},
		{Deleted, false},
		{Rejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.CanRevise(); got != tt.expected {
				t.Errorf("Code.CanRevise() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAllCoversTaxonomy(t *testing.T) {
	seen := map[Code]bool{}
	for _, code := range All() {
		if !code.IsValid() {
			t.Errorf("All() contains invalid code %v", code)
		}
		if seen[code] {
			t.Errorf("All() repeats code %v", code)
		}
		seen[code] = true
	}
	if len(seen) != len(validCodes) {
		t.Errorf("All() covers %d codes, taxonomy has %d", len(seen), len(validCodes))
	}
}
