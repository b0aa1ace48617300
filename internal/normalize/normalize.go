package normalize

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

const (
	NoDescription = "No description"

	minYear = 2000
	// earliest year a stored timestamp can carry
	firstYear = 1
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type Normalizer struct {
	clockNow func() time.Time
}

func New() *Normalizer {
	return &Normalizer{clockNow: time.Now}
}

// Expense turns an extracted, loosely typed record into a storable expense.
// Only the amount is mandatory; other fields fall back to safe defaults.
func (n *Normalizer) Expense(ctx context.Context, raw any) (models.Expense, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return models.Expense{}, errs.NewValidationError("expense must be an object")
	}

	v, present := fields["amount"]
	if !present {
		return models.Expense{}, errs.NewValidationError("amount is required")
	}
	amount, err := Amount(v)
	if err != nil {
		return models.Expense{}, err
	}

	category := taxonomy.CategoryOthers
	if s, ok := fields["category"].(string); ok && taxonomy.IsCategoryAllowed(s) {
		category = taxonomy.Category(s)
	}

	date, ok := ParseDate(fields["date"])
	if !ok || date.Year() < minYear {
		now := n.clockNow().UTC()
		logger.FromContext(ctx).Warn("expense date missing or invalid, using current time",
			"date", fields["date"],
			"fallback", now.Format(time.RFC3339))
		date = now
	}

	description := NoDescription
	if s, ok := fields["description"].(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			description = trimmed
		}
	}

	return models.Expense{
		Amount:      amount,
		Category:    category,
		Date:        date,
		Description: description,
	}, nil
}

// Patch validates the fields of a partial update. Present fields must be
// valid; nothing is substituted.
func (n *Normalizer) Patch(_ context.Context, raw map[string]any) (models.ExpensePatch, error) {
	var patch models.ExpensePatch

	if v, ok := raw["amount"]; ok {
		amount, err := Amount(v)
		if err != nil {
			return models.ExpensePatch{}, err
		}
		patch.Amount = &amount
	}

	if v, ok := raw["category"]; ok {
		s, isString := v.(string)
		if !isString || !taxonomy.IsCategoryAllowed(s) {
			return models.ExpensePatch{}, errs.NewValidationError("invalid category")
		}
		category := taxonomy.Category(s)
		patch.Category = &category
	}

	if v, ok := raw["date"]; ok {
		date, valid := ParseDate(v)
		if !valid {
			return models.ExpensePatch{}, errs.NewValidationError("invalid date")
		}
		patch.Date = &date
	}

	if v, ok := raw["description"]; ok {
		s, isString := v.(string)
		if !isString {
			return models.ExpensePatch{}, errs.NewValidationError("invalid description")
		}
		s = strings.TrimSpace(s)
		patch.Description = &s
	}

	if patch.Empty() {
		return models.ExpensePatch{}, errs.NewValidationError("no fields to update")
	}
	return patch, nil
}

// Amount validates a money value and rounds it half away from zero to two
// decimals. Strings are not coerced.
func Amount(v any) (float64, error) {
	var f float64
	switch a := v.(type) {
	case float64:
		f = a
	case float32:
		f = float64(a)
	case int:
		f = float64(a)
	case int32:
		f = float64(a)
	case int64:
		f = float64(a)
	case json.Number:
		parsed, err := a.Float64()
		if err != nil {
			return 0, errs.NewValidationError("amount must be a number")
		}
		f = parsed
	default:
		return 0, errs.NewValidationError("amount must be a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errs.NewValidationError("amount must be a finite number")
	}

	rounded := decimal.NewFromFloat(f).Round(2)
	if !rounded.IsPositive() {
		return 0, errs.NewValidationError("amount must be greater than 0")
	}
	return rounded.InexactFloat64(), nil
}

// ParseDate accepts a time.Time or a date string and returns it in UTC.
// Strings without a zone are read as UTC.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() || d.UTC().Year() < firstYear {
			return time.Time{}, false
		}
		return d.UTC(), true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.UTC(), t.Year() >= firstYear
			}
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil || t.Year() < firstYear {
			// dateparse leaves the year at 0 when the input has none
			return time.Time{}, false
		}
		return t.UTC(), true
	default:
		return time.Time{}, false
	}
}
