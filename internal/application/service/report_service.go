package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tugu-digital/dots/internal/application/port"
)

// ReportService exports transaction listings as spreadsheets
type ReportService interface {
	TransactionsXLSX(ctx context.Context, filter port.TransactionFilter) ([]byte, error)
}

type reportServiceImpl struct {
	txnRepo port.TransactionRepository
	logger  Logger
}

// NewReportService creates a new ReportService
func NewReportService(txnRepo port.TransactionRepository, logger Logger) ReportService {
	return &reportServiceImpl{txnRepo: txnRepo, logger: logger}
}

var reportHeader = []string{
	"DOTS Number", "Status", "Form Type", "Category", "Doc Type",
	"Business Partner", "Party Name", "Cost Center", "Currency", "Amount",
	"Created By", "Created At",
}

// TransactionsXLSX renders the filtered transactions to a workbook.
func (s *reportServiceImpl) TransactionsXLSX(ctx context.Context, filter port.TransactionFilter) ([]byte, error) {
	txns, err := s.txnRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list transactions for report", "error", err)
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for row, txn := range txns {
		values := []interface{}{
			txn.DotsNumber, txn.Status.String(), txn.FormType, txn.Category,
			txn.DocType, txn.BusinessPartner, txn.PartyName, txn.CostCenter,
			txn.Currency, txn.Amount, txn.CreatedBy,
			txn.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("Transaction report generated", "rows", len(txns))
	return buf.Bytes(), nil
}
