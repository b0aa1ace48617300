package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/middleware"
	"github.com/GregMSThompson/expense-tracker/internal/response"
)

type reportService interface {
	Daily(ctx context.Context, uid string, args dto.DailyReportArgs) (dto.ReportResponse, error)
	Weekly(ctx context.Context, uid string, args dto.WeeklyReportArgs) (dto.ReportResponse, error)
	Monthly(ctx context.Context, uid string, args dto.MonthlyReportArgs) (dto.ReportResponse, error)
}

type reportHandlers struct {
	ResponseHandler response.ResponseHandler
	ReportSvc       reportService
}

func NewReportHandlers(deps *Deps) *reportHandlers {
	return &reportHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReportSvc:       deps.ReportSvc,
	}
}

func (h *reportHandlers) ReportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/daily", h.DailyReport)
	r.Get("/weekly", h.WeeklyReport)
	r.Get("/monthly", h.MonthlyReport)
	return r
}

func (h *reportHandlers) DailyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.report(w, r, func(ctx context.Context, uid string) (dto.ReportResponse, error) {
		return h.ReportSvc.Daily(ctx, uid, dto.DailyReportArgs{Date: q.Get("date")})
	})
}

func (h *reportHandlers) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.report(w, r, func(ctx context.Context, uid string) (dto.ReportResponse, error) {
		return h.ReportSvc.Weekly(ctx, uid, dto.WeeklyReportArgs{StartDate: q.Get("startDate")})
	})
}

func (h *reportHandlers) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.report(w, r, func(ctx context.Context, uid string) (dto.ReportResponse, error) {
		return h.ReportSvc.Monthly(ctx, uid, dto.MonthlyReportArgs{Month: q.Get("month"), Year: q.Get("year")})
	})
}

func (h *reportHandlers) report(w http.ResponseWriter, r *http.Request, build func(context.Context, string) (dto.ReportResponse, error)) {
	uid, err := middleware.ResolveUID(r.Context(), r.URL.Query().Get("uid"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := build(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
