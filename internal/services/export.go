package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

const (
	csvFileName  = "expenses.csv"
	pdfFileName  = "expense_report.pdf"
	xlsxFileName = "expenses.xlsx"

	descriptionLimit = 40
)

var exportHeader = []string{"Date", "Category", "Description", "Amount"}

type exportExpenseLister interface {
	List(ctx context.Context, uid string) ([]models.Expense, error)
}

type exportSettings interface {
	Get(ctx context.Context, uid string) (models.Settings, error)
}

type exportInsights interface {
	GenerateInsights(ctx context.Context, summary dto.PeriodSummary) string
}

type exportService struct {
	expenses exportExpenseLister
	settings exportSettings
	insights exportInsights
}

func NewExportService(expenses exportExpenseLister, settings exportSettings, insights exportInsights) *exportService {
	return &exportService{
		expenses: expenses,
		settings: settings,
		insights: insights,
	}
}

func (s *exportService) CSV(ctx context.Context, uid string) (dto.ExportFile, error) {
	expenses, err := s.expenses.List(ctx, uid)
	if err != nil {
		return dto.ExportFile{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return dto.ExportFile{}, err
	}
	for _, e := range expenses {
		if err := w.Write([]string{
			e.Date.UTC().Format(dayLayout),
			string(e.Category),
			e.Description,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
		}); err != nil {
			return dto.ExportFile{}, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return dto.ExportFile{}, err
	}

	logger.FromContext(ctx).Info("csv export generated", "rows", len(expenses))
	return dto.ExportFile{
		Name:        csvFileName,
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

// currency falls back to the default when settings cannot be read, so an
// export never fails on preferences alone.
func (s *exportService) currency(ctx context.Context, uid string) taxonomy.Currency {
	settings, err := s.settings.Get(ctx, uid)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to read settings, using default currency", "error", err)
		return taxonomy.DefaultCurrency
	}
	if !settings.Currency.Valid() {
		return taxonomy.DefaultCurrency
	}
	return settings.Currency
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
