package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/models"
)

type expenseStore struct {
	client *firestore.Client
}

func NewExpenseStore(client *firestore.Client) *expenseStore {
	return &expenseStore{client: client}
}

func (s *expenseStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("expenses")
}

// Create assigns a new document ID to e and stores it.
func (s *expenseStore) Create(ctx context.Context, uid string, e *models.Expense) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	id := uuid.New().String()
	if _, err := s.collection(uid).Doc(id).Create(ctx, e); err != nil {
		return errs.NewDatabaseError("create", "failed to create expense", err)
	}
	e.ID = id
	return nil
}

// List returns every expense of the user, newest first.
func (s *expenseStore) List(ctx context.Context, uid string) ([]models.Expense, error) {
	docs, err := s.collection(uid).OrderBy("date", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list expenses", err)
	}
	return decodeExpenses(docs)
}

// ListRange returns expenses dated in [from, to), newest first.
func (s *expenseStore) ListRange(ctx context.Context, uid string, from, to time.Time) ([]models.Expense, error) {
	docs, err := s.collection(uid).
		Where("date", ">=", from).
		Where("date", "<", to).
		OrderBy("date", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to query expenses", err)
	}
	return decodeExpenses(docs)
}

func (s *expenseStore) Update(ctx context.Context, uid, id string, patch models.ExpensePatch) error {
	updates := patchUpdates(patch)
	if len(updates) == 0 {
		return errs.NewValidationError("no fields to update")
	}

	_, err := s.collection(uid).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("expense not found")
		}
		return errs.NewDatabaseError("update", "failed to update expense", err)
	}
	return nil
}

func (s *expenseStore) Delete(ctx context.Context, uid, id string) error {
	if _, err := s.collection(uid).Doc(id).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete expense", err)
	}
	return nil
}

func patchUpdates(patch models.ExpensePatch) []firestore.Update {
	var updates []firestore.Update
	if patch.Amount != nil {
		updates = append(updates, firestore.Update{Path: "amount", Value: *patch.Amount})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: string(*patch.Category)})
	}
	if patch.Date != nil {
		updates = append(updates, firestore.Update{Path: "date", Value: patch.Date.UTC()})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	return updates
}

func decodeExpenses(docs []*firestore.DocumentSnapshot) ([]models.Expense, error) {
	out := make([]models.Expense, 0, len(docs))
	for _, d := range docs {
		var e models.Expense
		if err := d.DataTo(&e); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse expense data", err)
		}
		e.ID = d.Ref.ID
		e.Date = e.Date.UTC()
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	return out, nil
}
