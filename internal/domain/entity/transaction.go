package entity

import (
	"time"

	"github.com/tugu-digital/dots/internal/domain/status"
)

// Transaction is the persisted DOTS non-insurance transaction. It is
// identified by DotsNumber and addressed externally by Hash.
type Transaction struct {
	ID         int64       `json:"id"`
	DotsNumber string      `json:"dots_number"`
	Hash       string      `json:"hash"`
	Status     status.Code `json:"status"`

	// TrxType is 1 for Cash in Advance, 2 for Disbursement.
	TrxType  int    `json:"trx_type"`
	FormType string `json:"form_type"` // backend code: C / R
	Category string `json:"category"`  // backend code, see wizard codes
	DocType  string `json:"doc_type"`  // employee / vendor

	DestinationScope string `json:"destination_scope"`
	RegionGroup      string `json:"region_group"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	EventName        string `json:"event_name"`
	Purpose          string `json:"purpose"`
	CostCenter       string `json:"cost_center"`

	// Employee-or-vendor identity.
	BusinessPartner string `json:"bp"`
	PartyName       string `json:"party_name"`
	PartyEmail      string `json:"party_email,omitempty"`
	CardNumber      string `json:"card_number,omitempty"`

	// Payment.
	Currency    string  `json:"currency"`
	PaymentType string  `json:"payment_type"` // backend code: T / C
	BankKey     string  `json:"bank_key,omitempty"`
	BankAccount string  `json:"bank_account,omitempty"`
	BankName    string  `json:"bank_name,omitempty"`
	Amount      float64 `json:"amount"`

	// Approval chain slots resolved at creation.
	Verificator1 string `json:"cost_center_verificator_1"`
	Verificator2 string `json:"cost_center_verificator_2,omitempty"`
	Verificator3 string `json:"cost_center_verificator_3,omitempty"`
	Verificator4 string `json:"cost_center_verificator_4,omitempty"`
	Verificator5 string `json:"cost_center_verificator_5,omitempty"`

	Remark string `json:"remark,omitempty"`

	// LinkedDotsNumber ties a close-out disbursement back to its cash
	// advance.
	LinkedDotsNumber string `json:"linked_dots_number,omitempty"`

	CreatedBy  string    `json:"created_by"`
	ModifiedBy string    `json:"modified_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasSecondVerificator reports whether the VG001 approval stage applies.
func (t *Transaction) HasSecondVerificator() bool {
	return t.Verificator2 != ""
}

// IsCloseOut reports whether the transaction settles a cash advance: a
// disbursement carrying the Cash in Advance form type.
func (t *Transaction) IsCloseOut() bool {
	return t.TrxType == 2 && t.FormType == "C"
}

// MaterialItem is a line item of a disbursement close-out. The realization
// amount gates the request-approval action.
type MaterialItem struct {
	ID                int64   `json:"id"`
	TransactionID     int64   `json:"transaction_id"`
	Description       string  `json:"description"`
	Amount            float64 `json:"amount"`
	RealizationAmount float64 `json:"realization_amount"`
}
