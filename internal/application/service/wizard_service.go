package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/wizard"
)

// ErrNoApprovalChain is returned when no verificator chain can be resolved
// for a submission.
var ErrNoApprovalChain = errors.New("no approval chain resolved")

// WizardService drives the multi-step form wizard server-side
type WizardService interface {
	Start(ctx context.Context, docType string, viewer Viewer) (*wizard.Session, error)
	Get(ctx context.Context, id string) (*wizard.Session, error)
	SetFields(ctx context.Context, id string, fields map[string]string) (*wizard.Session, error)
	Advance(ctx context.Context, id string) (*wizard.Session, error)
	Back(ctx context.Context, id string) (*wizard.Session, error)
	Reset(ctx context.Context, id string, opts wizard.ResetOptions) (*wizard.Session, error)
	EligibleEmployees(ctx context.Context, id string) ([]port.Employee, error)
	Submit(ctx context.Context, id string, viewer Viewer) (*entity.Transaction, error)
}

type wizardServiceImpl struct {
	store      *wizard.SessionStore
	masterData port.MasterDataClient
	txnService TransactionService
	logger     Logger
}

// NewWizardService creates a new WizardService
func NewWizardService(
	store *wizard.SessionStore,
	masterData port.MasterDataClient,
	txnService TransactionService,
	logger Logger,
) WizardService {
	return &wizardServiceImpl{
		store:      store,
		masterData: masterData,
		txnService: txnService,
		logger:     logger,
	}
}

func (s *wizardServiceImpl) Start(ctx context.Context, docType string, viewer Viewer) (*wizard.Session, error) {
	if docType != wizard.DocTypeEmployee && docType != wizard.DocTypeVendor {
		return nil, fmt.Errorf("unknown doc type %q", docType)
	}
	session := wizard.NewSession(docType, viewer.Email, viewer.BP)
	if docType == wizard.DocTypeVendor {
		// Vendor runs are always disbursements.
		session.FormType = wizard.FormTypeDisbursement
	}
	s.store.Put(session)
	s.logger.Info("Wizard session started", "session_id", session.ID, "doc_type", docType, "by", viewer.Email)
	return session, nil
}

func (s *wizardServiceImpl) Get(ctx context.Context, id string) (*wizard.Session, error) {
	return s.store.Get(id)
}

func (s *wizardServiceImpl) SetFields(ctx context.Context, id string, fields map[string]string) (*wizard.Session, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	for name, value := range fields {
		if err := session.Dispatch(wizard.SetField{Name: name, Value: value}); err != nil {
			return nil, err
		}
	}
	s.store.Put(session)
	return session, nil
}

func (s *wizardServiceImpl) Advance(ctx context.Context, id string) (*wizard.Session, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if session.Current() == wizard.StepPayment && session.Data.PaymentType == "" {
		s.applyPaymentDefault(ctx, session)
	}

	if err := session.Advance(); err != nil {
		return nil, err
	}
	s.store.Put(session)
	return session, nil
}

func (s *wizardServiceImpl) Back(ctx context.Context, id string) (*wizard.Session, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := session.Back(); err != nil {
		return nil, err
	}
	s.store.Put(session)
	return session, nil
}

func (s *wizardServiceImpl) Reset(ctx context.Context, id string, opts wizard.ResetOptions) (*wizard.Session, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := session.Dispatch(wizard.ResetAllAction{Options: opts}); err != nil {
		return nil, err
	}
	s.store.Put(session)
	return session, nil
}

// EligibleEmployees lists the employees selectable in the employee step.
// Card-funded categories narrow the list to employees holding a matching
// card record.
func (s *wizardServiceImpl) EligibleEmployees(ctx context.Context, id string) ([]port.Employee, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	employees, err := s.masterData.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("employee lookup: %w", err)
	}
	if !wizard.IsCardCategory(session.Category) {
		return employees, nil
	}

	cards, err := s.masterData.CashCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("cash card lookup: %w", err)
	}
	holders := make(map[string]bool, len(cards))
	for _, card := range cards {
		holders[card.BusinessPartner] = true
	}

	var eligible []port.Employee
	for _, emp := range employees {
		if holders[emp.BusinessPartner] {
			eligible = append(eligible, emp)
		}
	}
	return eligible, nil
}

func (s *wizardServiceImpl) Submit(ctx context.Context, id string, viewer Viewer) (*entity.Transaction, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	txn, err := wizard.BuildSubmission(session)
	if err != nil {
		return nil, err
	}

	chain, err := s.resolveChain(ctx, session, viewer)
	if err != nil {
		return nil, err
	}
	txn.Verificator1 = chain.Approval1
	txn.Verificator2 = chain.Approval2
	txn.Verificator3 = chain.Approval3
	txn.Verificator4 = chain.Approval4
	txn.Verificator5 = chain.Approval5

	created, err := s.txnService.Create(ctx, txn)
	if err != nil {
		return nil, err
	}

	s.store.Delete(session.ID)
	s.logger.Info("Wizard submitted", "session_id", session.ID, "dots_number", created.DotsNumber)
	return created, nil
}

// resolveChain picks the approval chain for a submission. Compensation &
// Benefit bypasses the business-partner lookup and resolves via the
// creator's own cost-center role.
func (s *wizardServiceImpl) resolveChain(ctx context.Context, session *wizard.Session, viewer Viewer) (*entity.CostCenterApproval, error) {
	key := session.Data.EmployeeBP
	if session.DocType == wizard.DocTypeVendor {
		key = session.Data.VendorBP
	}

	if session.Category == wizard.CategoryCompBen {
		key = ""
		for _, role := range viewer.Roles {
			if role.CostCenter != nil && *role.CostCenter != "" {
				key = *role.CostCenter
				break
			}
		}
		if key == "" {
			return nil, fmt.Errorf("%w: creator holds no cost-center role", ErrNoApprovalChain)
		}
	}

	chain, err := s.masterData.CostCenterApproval(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("approval chain lookup: %w", err)
	}
	if chain == nil || chain.Approval1 == "" {
		return nil, ErrNoApprovalChain
	}
	return chain, nil
}

// applyPaymentDefault fills the payment type when no bank record matches
// the party: Transfer for IDR, Cash otherwise. Lookup failures fall back to
// the same default rule.
func (s *wizardServiceImpl) applyPaymentDefault(ctx context.Context, session *wizard.Session) {
	bp := session.Data.EmployeeBP
	if session.DocType == wizard.DocTypeVendor {
		bp = session.Data.VendorBP
	}

	matched := false
	records, err := s.masterData.BankRecords(ctx, bp)
	if err != nil {
		s.logger.Error("Bank lookup failed", "error", err, "bp", bp)
	} else {
		for _, rec := range records {
			if rec.Currency == session.Data.Currency {
				session.Data.PaymentType = "Transfer"
				session.Data.BankKey = rec.BankKey
				session.Data.BankAccount = rec.BankAccount
				session.Data.BankName = rec.BankName
				matched = true
				break
			}
		}
	}
	if !matched {
		session.Data.PaymentType = wizard.DefaultPaymentType(session.Data.Currency)
	}
}
