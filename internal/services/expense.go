package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

type expenseStore interface {
	Create(ctx context.Context, uid string, e *models.Expense) error
	List(ctx context.Context, uid string) ([]models.Expense, error)
	ListRange(ctx context.Context, uid string, from, to time.Time) ([]models.Expense, error)
	Update(ctx context.Context, uid, id string, patch models.ExpensePatch) error
	Delete(ctx context.Context, uid, id string) error
}

type expenseExtractor interface {
	Extract(ctx context.Context, text string, ref time.Time) (any, error)
}

type expenseNormalizer interface {
	Expense(ctx context.Context, raw any) (models.Expense, error)
	Patch(ctx context.Context, raw map[string]any) (models.ExpensePatch, error)
}

type expenseService struct {
	store      expenseStore
	extractor  expenseExtractor
	normalizer expenseNormalizer
	clockNow   func() time.Time
}

func NewExpenseService(store expenseStore, extractor expenseExtractor, normalizer expenseNormalizer) *expenseService {
	return &expenseService{
		store:      store,
		extractor:  extractor,
		normalizer: normalizer,
		clockNow:   time.Now,
	}
}

// Create extracts an expense from free text and stores it.
func (s *expenseService) Create(ctx context.Context, uid, text string) (models.Expense, error) {
	log := logger.FromContext(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Expense{}, errs.NewValidationError("text is required")
	}

	now := s.clockNow().UTC()
	raw, err := s.extractor.Extract(ctx, text, now)
	if err != nil {
		return models.Expense{}, err
	}

	expense, err := s.normalizer.Expense(ctx, raw)
	if err != nil {
		return models.Expense{}, err
	}
	expense.CreatedAt = now

	if err := s.store.Create(ctx, uid, &expense); err != nil {
		log.Error("failed to store expense", "error", err)
		return models.Expense{}, err
	}

	log.Info("expense created",
		"expense_id", expense.ID,
		"category", expense.Category,
		"amount", expense.Amount)
	return expense, nil
}

func (s *expenseService) List(ctx context.Context, uid string) ([]models.Expense, error) {
	return s.store.List(ctx, uid)
}

func (s *expenseService) Update(ctx context.Context, uid, id string, fields map[string]any) error {
	if id == "" {
		return errs.NewValidationError("expense id is required")
	}

	patch, err := s.normalizer.Patch(ctx, fields)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, uid, id, patch); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("expense updated", "expense_id", id)
	return nil
}

func (s *expenseService) Delete(ctx context.Context, uid, id string) error {
	if id == "" {
		return errs.NewValidationError("expense id is required")
	}
	if err := s.store.Delete(ctx, uid, id); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("expense deleted", "expense_id", id)
	return nil
}
