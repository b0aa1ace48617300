package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
)

type stubSettingsService struct {
	called   bool
	uid      string
	currency string
	settings models.Settings
	err      error
}

func (s *stubSettingsService) Get(_ context.Context, uid string) (models.Settings, error) {
	s.called, s.uid = true, uid
	return s.settings, s.err
}

func (s *stubSettingsService) Update(_ context.Context, uid, currency string) (models.Settings, error) {
	s.called, s.uid, s.currency = true, uid, currency
	return models.Settings{Currency: taxonomy.Currency(currency)}, s.err
}

func TestGetSettings(t *testing.T) {
	svc := &stubSettingsService{settings: models.DefaultSettings()}
	resp := &stubResponseHandler{}
	h := NewSettingsHandlers(&Deps{ResponseHandler: resp, SettingsSvc: svc})

	h.GetSettings(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/settings?uid=u1", nil))

	if svc.uid != "u1" {
		t.Fatalf("unexpected uid %q", svc.uid)
	}
	if got := resp.writeSuccessData.(models.Settings); got.Currency != taxonomy.CurrencyINR {
		t.Fatalf("unexpected settings %+v", got)
	}
}

func TestUpdateSettings(t *testing.T) {
	svc := &stubSettingsService{}
	resp := &stubResponseHandler{}
	h := NewSettingsHandlers(&Deps{ResponseHandler: resp, SettingsSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"uid":"u1","currency":"EUR"}`))
	h.UpdateSettings(httptest.NewRecorder(), req)

	want := dto.SettingsUpdateResponse{Success: true, Settings: models.Settings{Currency: taxonomy.CurrencyEUR}}
	if resp.writeSuccessData != want {
		t.Fatalf("unexpected response %+v", resp.writeSuccessData)
	}
}

func TestUpdateSettingsRejectsUnknownCurrency(t *testing.T) {
	svc := &stubSettingsService{}
	resp := &stubResponseHandler{}
	h := NewSettingsHandlers(&Deps{ResponseHandler: resp, SettingsSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"uid":"u1","currency":"AUD"}`))
	h.UpdateSettings(httptest.NewRecorder(), req)

	var validation *errs.ValidationError
	if svc.called || !errors.As(resp.handleError, &validation) || validation.Message != "Invalid currency" {
		t.Fatalf("expected currency validation error, got %v", resp.handleError)
	}
}

func TestUpdateSettingsEmptyCurrencyReachesService(t *testing.T) {
	svc := &stubSettingsService{}
	resp := &stubResponseHandler{}
	h := NewSettingsHandlers(&Deps{ResponseHandler: resp, SettingsSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"uid":"u1"}`))
	h.UpdateSettings(httptest.NewRecorder(), req)

	if !svc.called || svc.currency != "" {
		t.Fatalf("expected pass-through of empty currency, got called=%v currency=%q", svc.called, svc.currency)
	}
}
