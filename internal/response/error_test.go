package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/pkg/helpers"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

func newTestRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(helpers.TestCtx())
}

func TestHandleErrorStatusMapping(t *testing.T) {
	h := New(logger.New("", logger.NewTestHandler))

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"validation", errs.NewValidationError("amount is required"), http.StatusBadRequest, "invalid_input", "amount is required"},
		{"wrapped validation", fmt.Errorf("create: %w", errs.NewValidationError("bad")), http.StatusBadRequest, "invalid_input", "bad"},
		{"forbidden", errs.NewForbiddenError("uid mismatch"), http.StatusForbidden, "forbidden", "uid mismatch"},
		{"not found", errs.NewNotFoundError("expense not found"), http.StatusNotFound, "not_found", "expense not found"},
		{"extraction", errs.NewExtractionError("no json", nil), http.StatusInternalServerError, "extraction_failed", "Failed to parse expense: no json"},
		{"database", errs.NewDatabaseError("read", "failed to list expenses", errors.New("rpc")), http.StatusInternalServerError, "internal_error", "failed to list expenses: rpc"},
		{"transient upstream", errs.NewExternalServiceError("vertex", "x", true, nil), http.StatusServiceUnavailable, "service_unavailable", "Service temporarily unavailable"},
		{"permanent upstream", errs.NewExternalServiceError("vertex", "x", false, nil), http.StatusBadGateway, "service_unavailable", "Service temporarily unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.HandleError(rr, newTestRequest(), tt.err)

			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Code != tt.code || body.Error != tt.msg {
				t.Fatalf("body = %+v, want code=%s error=%s", body, tt.code, tt.msg)
			}
		})
	}
}

func TestWriteSuccessHasNoEnvelope(t *testing.T) {
	h := New(logger.New("", logger.NewTestHandler))
	rr := httptest.NewRecorder()

	h.WriteSuccess(rr, newTestRequest(), http.StatusCreated, map[string]string{"currency": "INR"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Body.String(); got != "{\"currency\":\"INR\"}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	h := New(logger.New("", logger.NewTestHandler))
	rr := httptest.NewRecorder()

	h.WriteFile(rr, newTestRequest(), dto.ExportFile{Name: "expenses.csv", ContentType: "text/csv", Data: []byte("a,b\n")})

	if rr.Header().Get("Content-Disposition") != `attachment; filename="expenses.csv"` {
		t.Fatalf("unexpected disposition %q", rr.Header().Get("Content-Disposition"))
	}
	if rr.Header().Get("Content-Type") != "text/csv" || rr.Body.String() != "a,b\n" {
		t.Fatal("unexpected file response")
	}
}
