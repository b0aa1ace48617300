package normalize

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
	"github.com/GregMSThompson/expense-tracker/pkg/helpers"
)

var fixedNow = time.Date(2025, time.December, 28, 9, 30, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	n := New()
	n.clockNow = func() time.Time { return fixedNow }
	return n
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    float64
		wantErr bool
	}{
		{name: "integer", in: 150, want: 150},
		{name: "float", in: 12.5, want: 12.5},
		{name: "rounds half up", in: 10.005, want: 10.01},
		{name: "rounds down", in: 3.14159, want: 3.14},
		{name: "json number", in: json.Number("99.999"), want: 100},
		{name: "zero", in: 0, wantErr: true},
		{name: "negative", in: -5.0, wantErr: true},
		{name: "rounds to zero", in: 0.004, wantErr: true},
		{name: "string", in: "150", wantErr: true},
		{name: "nil", in: nil, wantErr: true},
		{name: "nan", in: math.NaN(), wantErr: true},
		{name: "inf", in: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Amount(tt.in)
			if tt.wantErr {
				var verr *errs.ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpenseLenientDefaults(t *testing.T) {
	n := newTestNormalizer()

	got, err := n.Expense(helpers.TestCtx(), map[string]any{
		"amount":      42.126,
		"category":    "Groceries",
		"date":        "not a date",
		"description": "   ",
	})
	require.NoError(t, err)

	assert.Equal(t, 42.13, got.Amount)
	assert.Equal(t, taxonomy.CategoryOthers, got.Category)
	assert.Equal(t, fixedNow, got.Date)
	assert.Equal(t, NoDescription, got.Description)
}

func TestExpenseCategoryIsCaseSensitive(t *testing.T) {
	n := newTestNormalizer()

	got, err := n.Expense(helpers.TestCtx(), map[string]any{"amount": 1, "category": "food"})
	require.NoError(t, err)
	assert.Equal(t, taxonomy.CategoryOthers, got.Category)
}

func TestExpenseDateBeforeFloorFallsBackToToday(t *testing.T) {
	n := newTestNormalizer()

	got, err := n.Expense(helpers.TestCtx(), map[string]any{"amount": 10, "date": "1999-12-31"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, got.Date)

	got, err = n.Expense(helpers.TestCtx(), map[string]any{"amount": 10})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, got.Date)
}

func TestExpenseKeepsValidFields(t *testing.T) {
	n := newTestNormalizer()

	got, err := n.Expense(helpers.TestCtx(), map[string]any{
		"amount":      150,
		"category":    "Food",
		"date":        "2025-12-27",
		"description": "  lunch ",
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, got.Amount)
	assert.Equal(t, taxonomy.CategoryFood, got.Category)
	assert.Equal(t, time.Date(2025, time.December, 27, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, "lunch", got.Description)
}

func TestExpenseRejects(t *testing.T) {
	n := newTestNormalizer()

	for name, raw := range map[string]any{
		"not an object":  []any{1, 2},
		"missing amount": map[string]any{"category": "Food"},
		"null amount":    map[string]any{"amount": nil},
		"zero amount":    map[string]any{"amount": 0},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := n.Expense(helpers.TestCtx(), raw)
			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestExpenseIsIdempotent(t *testing.T) {
	n := newTestNormalizer()

	inputs := []map[string]any{
		{"amount": 19.999, "category": "Bills", "date": "2024-02-29T18:45:00+05:30", "description": " rent "},
		{"amount": 7, "category": "nope", "description": 12},
		{"amount": 0.01, "category": "Travel", "date": "March 3, 2023"},
	}

	for _, in := range inputs {
		once, err := n.Expense(helpers.TestCtx(), in)
		require.NoError(t, err)
		twice, err := n.Expense(helpers.TestCtx(), once.Raw())
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestPatch(t *testing.T) {
	n := newTestNormalizer()

	patch, err := n.Patch(helpers.TestCtx(), map[string]any{
		"amount":      25.555,
		"description": "  taxi ",
	})
	require.NoError(t, err)
	require.NotNil(t, patch.Amount)
	require.NotNil(t, patch.Description)
	assert.Equal(t, 25.56, *patch.Amount)
	assert.Equal(t, "taxi", *patch.Description)
	assert.Nil(t, patch.Category)
	assert.Nil(t, patch.Date)
}

func TestPatchAllowsOldDates(t *testing.T) {
	n := newTestNormalizer()

	patch, err := n.Patch(helpers.TestCtx(), map[string]any{"date": "1995-06-01"})
	require.NoError(t, err)
	require.NotNil(t, patch.Date)
	assert.Equal(t, 1995, patch.Date.Year())
}

func TestPatchRejects(t *testing.T) {
	n := newTestNormalizer()

	for name, raw := range map[string]map[string]any{
		"bad amount":      {"amount": -1},
		"string amount":   {"amount": "12"},
		"bad category":    {"category": "Groceries"},
		"bad date":        {"date": "someday"},
		"month day only":  {"date": "Dec 14"},
		"slash no year":   {"date": "1/2"},
		"year zero":       {"date": "0000-01-01"},
		"bad description": {"description": 3},
		"empty":           {},
		"unknown only":    {"colour": "red"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := n.Patch(helpers.TestCtx(), raw)
			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   any
		want time.Time
		ok   bool
	}{
		{in: "2025-12-14", want: time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2025-12-14T10:00:00Z", want: time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2025-12-14T10:00:00+02:00", want: time.Date(2025, 12, 14, 8, 0, 0, 0, time.UTC), ok: true},
		{in: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), want: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), ok: true},
		{in: "", ok: false},
		{in: "garbage", ok: false},
		{in: 20251214, ok: false},
		{in: time.Time{}, ok: false},
		{in: "Dec 14", ok: false},
		{in: "1/2", ok: false},
		{in: "0000", ok: false},
		{in: "1:", ok: false},
		{in: "0000-06-01", ok: false},
		{in: time.Date(0, 6, 1, 0, 0, 0, 0, time.UTC), ok: false},
		{in: "0001-01-01", want: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), ok: true},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, "input %v", tt.in)
		if tt.ok {
			assert.True(t, tt.want.Equal(got), "input %v: got %v", tt.in, got)
			assert.Equal(t, time.UTC, got.Location())
		}
	}
}
