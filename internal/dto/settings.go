package dto

import "github.com/GregMSThompson/expense-tracker/internal/models"

type SettingsUpdateRequest struct {
	UID      string `json:"uid"`
	Currency string `json:"currency" validate:"omitempty,currency"`
}

type SettingsUpdateResponse struct {
	Success  bool            `json:"success"`
	Settings models.Settings `json:"settings"`
}
