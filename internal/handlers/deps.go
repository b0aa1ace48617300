package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/expense-tracker/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ExpenseSvc      expenseService
	ExportSvc       exportService
	ReportSvc       reportService
	SettingsSvc     settingsService
	Firebase        *auth.Client
	AuthEnabled     bool
	AllowedOrigins  []string
	StaticDir       string
}
