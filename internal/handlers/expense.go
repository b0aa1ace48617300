package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/middleware"
	"github.com/GregMSThompson/expense-tracker/internal/models"
	"github.com/GregMSThompson/expense-tracker/internal/response"
)

type expenseService interface {
	Create(ctx context.Context, uid, text string) (models.Expense, error)
	List(ctx context.Context, uid string) ([]models.Expense, error)
	Update(ctx context.Context, uid, id string, fields map[string]any) error
	Delete(ctx context.Context, uid, id string) error
}

type exportService interface {
	CSV(ctx context.Context, uid string) (dto.ExportFile, error)
	PDF(ctx context.Context, uid string) (dto.ExportFile, error)
	XLSX(ctx context.Context, uid string) (dto.ExportFile, error)
}

type expenseHandlers struct {
	ResponseHandler response.ResponseHandler
	ExpenseSvc      expenseService
	ExportSvc       exportService
}

func NewExpenseHandlers(deps *Deps) *expenseHandlers {
	return &expenseHandlers{
		ResponseHandler: deps.ResponseHandler,
		ExpenseSvc:      deps.ExpenseSvc,
		ExportSvc:       deps.ExportSvc,
	}
}

func (h *expenseHandlers) ExpenseRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateExpense)
	r.Get("/", h.ListExpenses)
	r.Get("/export/csv", h.ExportCSV) // must be before /{id}
	r.Get("/export/pdf", h.ExportPDF)
	r.Get("/export/xlsx", h.ExportXLSX)
	r.Put("/{id}", h.UpdateExpense)
	r.Delete("/{id}", h.DeleteExpense)
	return r
}

func (h *expenseHandlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid, err := middleware.ResolveUID(r.Context(), req.UID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := validateStruct(req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	expense, err := h.ExpenseSvc.Create(r.Context(), uid, req.Text)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, expense)
}

func (h *expenseHandlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	uid, err := middleware.ResolveUID(r.Context(), r.URL.Query().Get("uid"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	expenses, err := h.ExpenseSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, expenses)
}

func (h *expenseHandlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.UpdateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid, err := middleware.ResolveUID(r.Context(), req.UID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if err := h.ExpenseSvc.Update(r.Context(), uid, id, req.Fields); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.MutationResponse{
		Success: true,
		Message: "Expense updated",
		ID:      id,
	})
}

func (h *expenseHandlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	uid, err := middleware.ResolveUID(r.Context(), r.URL.Query().Get("uid"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if err := h.ExpenseSvc.Delete(r.Context(), uid, id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.MutationResponse{
		Success: true,
		Message: "Expense deleted",
		ID:      id,
	})
}

func (h *expenseHandlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.ExportSvc.CSV)
}

func (h *expenseHandlers) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.ExportSvc.PDF)
}

func (h *expenseHandlers) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.ExportSvc.XLSX)
}

func (h *expenseHandlers) export(w http.ResponseWriter, r *http.Request, render func(context.Context, string) (dto.ExportFile, error)) {
	uid, err := middleware.ResolveUID(r.Context(), r.URL.Query().Get("uid"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	file, err := render(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteFile(w, r, file)
}
