package services

import (
	"context"
	"errors"

	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

type settingsStore interface {
	Get(ctx context.Context, uid string) (models.Settings, error)
	Set(ctx context.Context, uid string, settings models.Settings) error
}

type settingsService struct {
	store settingsStore
}

func NewSettingsService(store settingsStore) *settingsService {
	return &settingsService{store: store}
}

// Get returns the stored settings, or the defaults when none were saved.
func (s *settingsService) Get(ctx context.Context, uid string) (models.Settings, error) {
	settings, err := s.store.Get(ctx, uid)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, err
	}
	if settings.Currency == "" {
		settings.Currency = taxonomy.DefaultCurrency
	}
	return settings, nil
}

// Update merges the given currency into the stored settings. An empty
// currency leaves them untouched.
func (s *settingsService) Update(ctx context.Context, uid, currency string) (models.Settings, error) {
	if currency == "" {
		return s.Get(ctx, uid)
	}
	if !taxonomy.IsCurrencyAllowed(currency) {
		return models.Settings{}, errs.NewValidationError("Invalid currency")
	}

	settings := models.Settings{Currency: taxonomy.Currency(currency)}
	if err := s.store.Set(ctx, uid, settings); err != nil {
		return models.Settings{}, err
	}

	logger.FromContext(ctx).Info("settings updated", "currency", currency)
	return settings, nil
}
