package dto

import (
	"bytes"
	"encoding/json"

	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

type CategoryTotal struct {
	Category taxonomy.Category
	Amount   float64
}

// CategoryTotals is ordered by first appearance and serializes as a JSON
// object whose keys keep that order.
type CategoryTotals []CategoryTotal

func (c CategoryTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(t.Category))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type TopCategory struct {
	Name   taxonomy.Category `json:"name"`
	Amount float64           `json:"amount"`
}

type PeriodSummary struct {
	TotalAmount    float64        `json:"totalAmount"`
	ExpenseCount   int            `json:"expenseCount"`
	CategoryTotals CategoryTotals `json:"categoryTotals"`
	TopCategory    *TopCategory   `json:"topCategory"`
	AvgPerDay      float64        `json:"avgPerDay"`
}

type ReportResponse struct {
	Expenses  []models.Expense `json:"expenses"`
	Summary   PeriodSummary    `json:"summary"`
	Period    Period           `json:"period"`
	Date      string           `json:"date,omitempty"`
	StartDate string           `json:"startDate,omitempty"`
	EndDate   string           `json:"endDate,omitempty"`
	Month     int              `json:"month,omitempty"`
	Year      int              `json:"year,omitempty"`
}

type DailyReportArgs struct {
	Date string
}

type WeeklyReportArgs struct {
	StartDate string
}

type MonthlyReportArgs struct {
	Month string
	Year  string
}
