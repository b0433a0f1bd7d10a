package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tugu-digital/dots/internal/domain/status"
)

// Walks the employee Cash in Advance path end to end and checks the mapped
// payload the backend receives.
func TestBuildSubmission_EmployeeCashAdvanceBusinessTrip(t *testing.T) {
	s := NewSession(DocTypeEmployee, "creator@tugu.com", "BP100")
	s.FormType = FormTypeCashAdvance
	s.Category = CategoryBusinessTrip
	s.Data.DestinationScope = "international"
	s.Data.RegionGroup = "ASEAN"
	s.Data.CostCenter = "CC1"
	s.Data.StartDate = "2026-08-30"
	s.Data.EndDate = "2026-09-01"
	s.Data.EventName = "Client visit"
	s.Data.Purpose = "Quarterly review"
	s.Data.EmployeeBP = "BP200"
	s.Data.EmployeeName = "Budi"
	s.Data.Currency = "IDR"
	s.Data.PaymentType = "Transfer"
	s.Data.Amount = "1500000"

	txn, err := BuildSubmission(s)
	require.NoError(t, err)

	assert.Equal(t, status.Code("1010"), txn.Status)
	assert.Equal(t, "C", txn.FormType)
	assert.Equal(t, 1, txn.TrxType)
	assert.Equal(t, "H", txn.Category)
	// Business Trip is not domestic-only; the chosen scope passes through.
	assert.Equal(t, "international", txn.DestinationScope)
	assert.Equal(t, "ASEAN", txn.RegionGroup)
	assert.Equal(t, "T", txn.PaymentType)
	assert.Equal(t, 1500000.0, txn.Amount)
	assert.Equal(t, "BP200", txn.BusinessPartner)
	assert.Equal(t, "creator@tugu.com", txn.CreatedBy)
}

func TestBuildSubmission_VendorForcesDomestic(t *testing.T) {
	s := NewSession(DocTypeVendor, "creator@tugu.com", "BP100")
	s.FormType = FormTypeDisbursement
	s.Data.RegionGroup = "EMEA"
	s.Data.DestinationScope = "international"
	s.Data.VendorBP = "V001"
	s.Data.VendorName = "PT Vendor"
	s.Data.Currency = "USD"
	s.Data.PaymentType = "Cash"
	s.Data.Amount = "250.50"

	txn, err := BuildSubmission(s)
	require.NoError(t, err)

	assert.Equal(t, status.Code("2010"), txn.Status)
	assert.Equal(t, 2, txn.TrxType)
	assert.Equal(t, "domestic", txn.DestinationScope)
	assert.Equal(t, "", txn.RegionGroup)
	assert.Equal(t, "V001", txn.BusinessPartner)
	assert.Equal(t, "C", txn.PaymentType)
}

func TestBuildSubmission_UnmappedFormType(t *testing.T) {
	s := NewSession(DocTypeEmployee, "creator@tugu.com", "BP100")
	s.FormType = "Petty Cash"
	s.Category = CategoryBusinessTrip

	_, err := BuildSubmission(s)
	assert.ErrorIs(t, err, ErrUnmappedLabel)
}

func TestBuildSubmission_UnmappedCategory(t *testing.T) {
	s := NewSession(DocTypeEmployee, "creator@tugu.com", "BP100")
	s.FormType = FormTypeCashAdvance
	s.Category = "Office Party"

	_, err := BuildSubmission(s)
	assert.ErrorIs(t, err, ErrUnmappedLabel)
}

func TestBuildSubmission_InvalidAmount(t *testing.T) {
	s := NewSession(DocTypeEmployee, "creator@tugu.com", "BP100")
	s.FormType = FormTypeCashAdvance
	s.Category = CategoryBusinessTrip
	s.Data.Amount = "abc"

	_, err := BuildSubmission(s)
	assert.Error(t, err)
}
