package services

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
)

const dayLayout = "2006-01-02"

// Summarize aggregates a set of expenses. Categories keep the order in which
// they first appear; the top category is the first one to reach the highest
// total. Days are counted in UTC.
func Summarize(expenses []models.Expense) dto.PeriodSummary {
	summary := dto.PeriodSummary{
		ExpenseCount:   len(expenses),
		CategoryTotals: dto.CategoryTotals{},
	}
	if len(expenses) == 0 {
		return summary
	}

	total := decimal.Zero
	order := make([]taxonomy.Category, 0, len(taxonomy.CategoryList))
	byCategory := make(map[taxonomy.Category]decimal.Decimal)
	days := make(map[string]struct{})

	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		total = total.Add(amount)

		current, seen := byCategory[e.Category]
		if !seen {
			order = append(order, e.Category)
		}
		byCategory[e.Category] = current.Add(amount)

		days[e.Date.UTC().Format(dayLayout)] = struct{}{}
	}

	var top *dto.TopCategory
	var topAmount decimal.Decimal
	for _, cat := range order {
		amount := byCategory[cat].Round(2)
		summary.CategoryTotals = append(summary.CategoryTotals, dto.CategoryTotal{
			Category: cat,
			Amount:   amount.InexactFloat64(),
		})
		if top == nil || amount.GreaterThan(topAmount) {
			topAmount = amount
			top = &dto.TopCategory{Name: cat, Amount: amount.InexactFloat64()}
		}
	}

	distinctDays := int64(len(days))
	if distinctDays < 1 {
		distinctDays = 1
	}

	summary.TotalAmount = total.Round(2).InexactFloat64()
	summary.TopCategory = top
	summary.AvgPerDay = total.Div(decimal.NewFromInt(distinctDays)).Round(2).InexactFloat64()
	return summary
}
