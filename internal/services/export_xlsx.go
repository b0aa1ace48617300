package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

const (
	expensesSheet = "Expenses"
	summarySheet  = "Summary"

	amountNumFmt = 4 // #,##0.00
)

// XLSX renders the expense list and a summary sheet.
func (s *exportService) XLSX(ctx context.Context, uid string) (dto.ExportFile, error) {
	log := logger.FromContext(ctx)

	expenses, err := s.expenses.List(ctx, uid)
	if err != nil {
		return dto.ExportFile{}, err
	}
	currency := s.currency(ctx, uid)

	data, err := renderXLSX(expenses, Summarize(expenses), currency)
	if err != nil {
		log.Error("xlsx render failed", "error", err)
		return dto.ExportFile{}, err
	}

	log.Info("xlsx export generated", "rows", len(expenses), "currency", currency)
	return dto.ExportFile{
		Name:        xlsxFileName,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

func renderXLSX(expenses []models.Expense, summary dto.PeriodSummary, currency taxonomy.Currency) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"6366F1"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return nil, err
	}

	header := []any{"Date", "Category", "Description", "Amount (" + string(currency) + ")"}
	if err := f.SetSheetRow(expensesSheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(expensesSheet, "A1", "D1", headerStyle); err != nil {
		return nil, err
	}

	for i, e := range expenses {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			e.Date.UTC().Format(dayLayout),
			string(e.Category),
			e.Description,
			e.Amount,
		}
		if err := f.SetSheetRow(expensesSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if len(expenses) > 0 {
		last, err := excelize.CoordinatesToCellName(4, len(expenses)+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(expensesSheet, "D2", last, amountStyle); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(expensesSheet, "A", "B", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(expensesSheet, "C", "C", 48); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(expensesSheet, "D", "D", 16); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	rows := [][]any{
		{"Total Expenses", summary.TotalAmount},
		{"Transactions", summary.ExpenseCount},
		{"Average per Day", summary.AvgPerDay},
		{},
		{"Category", "Amount (" + string(currency) + ")"},
	}
	for _, ct := range summary.CategoryTotals {
		rows = append(rows, []any{string(ct.Category), ct.Amount})
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A5", "B5", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
