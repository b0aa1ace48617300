package models

import "github.com/GregMSThompson/expense-tracker/internal/taxonomy"

// Settings is stored at users/{uid}/settings/preferences.
type Settings struct {
	Currency taxonomy.Currency `firestore:"currency" json:"currency" redis:"currency"`
}

func DefaultSettings() Settings {
	return Settings{Currency: taxonomy.DefaultCurrency}
}
