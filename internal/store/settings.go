package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/models"
)

type settingsStore struct {
	client *firestore.Client
}

func NewSettingsStore(client *firestore.Client) *settingsStore {
	return &settingsStore{client: client}
}

func (s *settingsStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid).Collection("settings").Doc("preferences")
}

func (s *settingsStore) Get(ctx context.Context, uid string) (models.Settings, error) {
	snap, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.Settings{}, errs.NewNotFoundError("settings not found")
		}
		return models.Settings{}, errs.NewDatabaseError("read", "failed to get settings", err)
	}
	var out models.Settings
	if err := snap.DataTo(&out); err != nil {
		return models.Settings{}, errs.NewDatabaseError("read", "failed to parse settings data", err)
	}
	return out, nil
}

// Set merges the non-empty fields into the stored preferences.
func (s *settingsStore) Set(ctx context.Context, uid string, settings models.Settings) error {
	data := map[string]interface{}{}
	if settings.Currency != "" {
		data["currency"] = string(settings.Currency)
	}
	if len(data) == 0 {
		return nil
	}
	if _, err := s.doc(uid).Set(ctx, data, firestore.MergeAll); err != nil {
		return errs.NewDatabaseError("update", "failed to save settings", err)
	}
	return nil
}
