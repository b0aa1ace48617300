package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/normalize"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

type reportStore interface {
	ListRange(ctx context.Context, uid string, from, to time.Time) ([]models.Expense, error)
}

type reportService struct {
	store reportStore
}

func NewReportService(store reportStore) *reportService {
	return &reportService{store: store}
}

// Daily covers the UTC calendar day of args.Date.
func (s *reportService) Daily(ctx context.Context, uid string, args dto.DailyReportArgs) (dto.ReportResponse, error) {
	start, err := parseDay(args.Date, "date")
	if err != nil {
		return dto.ReportResponse{}, err
	}

	resp, err := s.build(ctx, uid, start, start.AddDate(0, 0, 1))
	if err != nil {
		return dto.ReportResponse{}, err
	}
	resp.Period = dto.PeriodDaily
	resp.Date = start.Format(dayLayout)
	return resp, nil
}

// Weekly covers seven UTC days starting at args.StartDate.
func (s *reportService) Weekly(ctx context.Context, uid string, args dto.WeeklyReportArgs) (dto.ReportResponse, error) {
	start, err := parseDay(args.StartDate, "startDate")
	if err != nil {
		return dto.ReportResponse{}, err
	}

	resp, err := s.build(ctx, uid, start, start.AddDate(0, 0, 7))
	if err != nil {
		return dto.ReportResponse{}, err
	}
	resp.Period = dto.PeriodWeekly
	resp.StartDate = start.Format(dayLayout)
	resp.EndDate = start.AddDate(0, 0, 6).Format(dayLayout)
	return resp, nil
}

func (s *reportService) Monthly(ctx context.Context, uid string, args dto.MonthlyReportArgs) (dto.ReportResponse, error) {
	if strings.TrimSpace(args.Month) == "" || strings.TrimSpace(args.Year) == "" {
		return dto.ReportResponse{}, errs.NewValidationError("month and year are required")
	}
	month, err := strconv.Atoi(strings.TrimSpace(args.Month))
	if err != nil || month < 1 || month > 12 {
		return dto.ReportResponse{}, errs.NewValidationError("month must be between 1 and 12")
	}
	year, err := strconv.Atoi(strings.TrimSpace(args.Year))
	if err != nil || year < 1 || year > 9999 {
		return dto.ReportResponse{}, errs.NewValidationError("invalid year")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	resp, err := s.build(ctx, uid, start, start.AddDate(0, 1, 0))
	if err != nil {
		return dto.ReportResponse{}, err
	}
	resp.Period = dto.PeriodMonthly
	resp.Month = month
	resp.Year = year
	return resp, nil
}

func (s *reportService) build(ctx context.Context, uid string, from, to time.Time) (dto.ReportResponse, error) {
	expenses, err := s.store.ListRange(ctx, uid, from, to)
	if err != nil {
		return dto.ReportResponse{}, err
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	logger.FromContext(ctx).Debug("report built",
		"from", from.Format(time.RFC3339),
		"to", to.Format(time.RFC3339),
		"count", len(expenses))

	return dto.ReportResponse{
		Expenses: expenses,
		Summary:  Summarize(expenses),
	}, nil
}

// parseDay reads a date parameter and truncates it to the start of its UTC day.
func parseDay(value, name string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, errs.NewValidationError(name + " is required")
	}
	t, ok := normalize.ParseDate(value)
	if !ok {
		return time.Time{}, errs.NewValidationError("invalid " + name)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
