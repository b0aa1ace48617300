package models

import (
	"time"

	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
)

// Expense is a single spending record stored under users/{uid}/expenses.
type Expense struct {
	ID          string            `firestore:"-" json:"id"` // Firestore doc ID
	Amount      float64           `firestore:"amount" json:"amount"`
	Category    taxonomy.Category `firestore:"category" json:"category"`
	Date        time.Time         `firestore:"date" json:"date"`
	Description string            `firestore:"description" json:"description"`
	CreatedAt   time.Time         `firestore:"createdAt" json:"createdAt"`
}

// Raw returns the record in the loosely typed shape the model extraction
// produces, so it can be normalized again.
func (e Expense) Raw() map[string]any {
	return map[string]any{
		"amount":      e.Amount,
		"category":    string(e.Category),
		"date":        e.Date.UTC().Format(time.RFC3339Nano),
		"description": e.Description,
	}
}

// ExpensePatch holds the validated fields of a partial update. Nil fields are
// left untouched.
type ExpensePatch struct {
	Amount      *float64
	Category    *taxonomy.Category
	Date        *time.Time
	Description *string
}

func (p ExpensePatch) Empty() bool {
	return p.Amount == nil && p.Category == nil && p.Date == nil && p.Description == nil
}
