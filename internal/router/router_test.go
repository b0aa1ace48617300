package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/handlers"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/response"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

type fakeSettings struct{ uid string }

func (f *fakeSettings) Get(_ context.Context, uid string) (models.Settings, error) {
	f.uid = uid
	return models.DefaultSettings(), nil
}

func (f *fakeSettings) Update(_ context.Context, uid, _ string) (models.Settings, error) {
	f.uid = uid
	return models.DefaultSettings(), nil
}

type fakeReports struct{}

func (fakeReports) Daily(context.Context, string, dto.DailyReportArgs) (dto.ReportResponse, error) {
	return dto.ReportResponse{Period: dto.PeriodDaily}, nil
}

func (fakeReports) Weekly(context.Context, string, dto.WeeklyReportArgs) (dto.ReportResponse, error) {
	return dto.ReportResponse{Period: dto.PeriodWeekly}, nil
}

func (fakeReports) Monthly(context.Context, string, dto.MonthlyReportArgs) (dto.ReportResponse, error) {
	return dto.ReportResponse{Period: dto.PeriodMonthly}, nil
}

func testDeps() *handlers.Deps {
	log := logger.New("", logger.NewTestHandler)
	return &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		SettingsSvc:     &fakeSettings{},
		ReportSvc:       fakeReports{},
	}
}

func TestHealthz(t *testing.T) {
	r := NewRouter(testDeps(), Options{})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	assertJSON(t, rr.Body.String(), `{"status":"ok"}`)
}

func TestSettingsRouteRequiresUID(t *testing.T) {
	r := NewRouter(testDeps(), Options{})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	assertJSON(t, rr.Body.String(), `{"error":"UID is required","code":"invalid_input"}`)
}

func TestSettingsRoute(t *testing.T) {
	deps := testDeps()
	r := NewRouter(deps, Options{})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/settings?uid=u1", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	assertJSON(t, rr.Body.String(), `{"currency":"INR"}`)
	if uid := deps.SettingsSvc.(*fakeSettings).uid; uid != "u1" {
		t.Fatalf("service got uid %q", uid)
	}
}

func TestAuthEnabledRejectsMissingToken(t *testing.T) {
	deps := testDeps()
	deps.AuthEnabled = true
	r := NewRouter(deps, Options{})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/reports/daily?uid=u1", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	deps := testDeps()
	deps.AllowedOrigins = []string{"https://app.example.com"}
	r := NewRouter(deps, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/expenses", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestStaticDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>tracker</h1>"), 0o600); err != nil {
		t.Fatal(err)
	}

	deps := testDeps()
	deps.StaticDir = dir
	r := NewRouter(deps, Options{})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "tracker") {
		t.Fatalf("unexpected static response %d %q", rr.Code, rr.Body.String())
	}
}

func assertJSON(t *testing.T, got, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal([]byte(got), &g); err != nil {
		t.Fatalf("invalid json %q: %v", got, err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Fatalf("body = %s, want %s", got, want)
	}
}
