package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
	"github.com/GregMSThompson/expense-tracker/pkg/retry"
)

const NoDataInsight = "No expenses recorded for this period yet. Add a few expenses to get personalised insights."

var defaultInsightPolicy = retry.Policy{
	MaxAttempts: 2,
	BaseDelay:   time.Second,
	Retryable:   errs.IsTransient,
}

type insightService struct {
	vertex vertexClient
	policy retry.Policy
}

func NewInsightService(vertex vertexClient) *insightService {
	return &insightService{vertex: vertex, policy: defaultInsightPolicy}
}

// GenerateInsights never fails: upstream errors fall back to a locally
// computed text.
func (s *insightService) GenerateInsights(ctx context.Context, summary dto.PeriodSummary) string {
	log := logger.FromContext(ctx)

	if summary.ExpenseCount == 0 || summary.TotalAmount == 0 {
		return NoDataInsight
	}

	prompt, err := insightPrompt(summary)
	if err != nil {
		log.Error("failed to build insight prompt", "error", err)
		return FallbackInsights(summary)
	}

	var text string
	err = retry.Do(ctx, s.policy, func(ctx context.Context, attempt int) error {
		resp, err := s.vertex.GenerateContent(ctx, dto.VertexGenerateRequest{UserMessage: prompt})
		if err != nil {
			log.Warn("insight generation failed",
				"attempt", attempt,
				"max_attempts", s.policy.MaxAttempts,
				"error", err)
			return err
		}
		text = strings.TrimSpace(resp.Text)
		return nil
	})
	if err != nil || text == "" {
		log.Info("using fallback insights")
		return FallbackInsights(summary)
	}
	return text
}

func insightPrompt(summary dto.PeriodSummary) (string, error) {
	totals, err := json.Marshal(summary.CategoryTotals)
	if err != nil {
		return "", err
	}
	return "Analyze this student expense summary and provide 3 short, actionable insights (max 50 words total).\n\n" +
		"Data:\n" +
		"Total Spent: " + decimal.NewFromFloat(summary.TotalAmount).String() + "\n" +
		"Category Totals: " + string(totals) + "\n" +
		fmt.Sprintf("Transactions: %d\n", summary.ExpenseCount), nil
}

// FallbackInsights builds three short paragraphs from the summary alone.
// Categories with equal totals keep their input order.
func FallbackInsights(summary dto.PeriodSummary) string {
	if summary.ExpenseCount == 0 || summary.TotalAmount == 0 {
		return NoDataInsight
	}

	ranked := make(dto.CategoryTotals, len(summary.CategoryTotals))
	copy(ranked, summary.CategoryTotals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})

	total := decimal.NewFromFloat(summary.TotalAmount)
	insights := make([]string, 0, 3)

	if len(ranked) > 0 {
		top := ranked[0]
		pct := decimal.NewFromFloat(top.Amount).Div(total).Mul(decimal.NewFromInt(100)).Round(0)
		insights = append(insights, fmt.Sprintf(
			"**High %s Spending:** %s represents %s%% of total expenses. Consider reducing discretionary spending here.",
			top.Category, top.Category, pct.String()))
	}

	avg := total.Div(decimal.NewFromInt(int64(summary.ExpenseCount))).StringFixed(2)
	insights = append(insights, fmt.Sprintf(
		"**Transaction Analysis:** %d transactions averaging %s each. Track small purchases to identify saving opportunities.",
		summary.ExpenseCount, avg))

	if len(ranked) > 1 {
		insights = append(insights, fmt.Sprintf(
			"**Budget Tips:** Focus on %s and %s categories. Set weekly limits to control spending effectively.",
			ranked[0].Category, ranked[1].Category))
	} else {
		insights = append(insights,
			"**Budget Tips:** Set weekly spending limits and track daily expenses to maintain better financial control.")
	}

	return strings.Join(insights, "\n\n")
}
