package port

import (
	"context"
	"io"

	"github.com/tugu-digital/dots/internal/domain/entity"
)

// TokenProvider hands out a valid BPMS bearer token, refreshing it when the
// cached one is absent or past its expiry claim. All outgoing BPMS, master
// data and M-Files calls share one provider.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// IdentityClient resolves users and their application roles from BPMS.
type IdentityClient interface {
	GetApplications(ctx context.Context, email string) ([]entity.Application, error)
}

// ApprovalNotifier mirrors workflow actions to the BPMS approval endpoints.
type ApprovalNotifier interface {
	NotifyApproval(ctx context.Context, email, dotsNumber string) error
	NotifyRevision(ctx context.Context, email, dotsNumber, notes string) error
}

// Employee is a master-data employee record.
type Employee struct {
	BusinessPartner string `json:"bp"`
	Name            string `json:"name"`
	NIK             string `json:"nik"`
	Email           string `json:"email"`
	CostCenter      string `json:"cost_center"`
}

// CashCard is a card record held by an employee.
type CashCard struct {
	BusinessPartner string `json:"bp"`
	CardNumber      string `json:"card_number"`
	CardType        string `json:"card_type"`
}

// BankRecord is a bank detail row from the ERP proxy.
type BankRecord struct {
	BusinessPartner string `json:"bp"`
	BankKey         string `json:"bank_key"`
	BankAccount     string `json:"bank_account"`
	BankName        string `json:"bank_name"`
	Currency        string `json:"currency"`
}

// MasterDataClient proxies the cost-center, employee, currency, cash-card
// and bank lookup services.
type MasterDataClient interface {
	CostCenters(ctx context.Context) ([]string, error)
	Currencies(ctx context.Context) ([]string, error)
	Employees(ctx context.Context) ([]Employee, error)
	CashCards(ctx context.Context) ([]CashCard, error)
	CostCenterApproval(ctx context.Context, key string) (*entity.CostCenterApproval, error)
	BankRecords(ctx context.Context, bp string) ([]BankRecord, error)
}

// DocumentClient uploads supporting documents to M-Files.
type DocumentClient interface {
	Upload(ctx context.Context, group, class, dotsNumber, fileName string, content io.Reader) (string, error)
}
