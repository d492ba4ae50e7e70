package report

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"expenseshare/internal/expense"
	"expenseshare/pkg/middleware"
	"expenseshare/pkg/response"
)

// DataSource provides the rows the report projects. Implemented by
// *expense.Repository.
type DataSource interface {
	ListLedgerRows(ctx context.Context, userID int64) ([]*expense.LedgerRow, error)
	ListAllExpenses(ctx context.Context) ([]*expense.Expense, error)
}

// Handler handles HTTP requests for ledger report downloads
type Handler struct {
	source  DataSource
	builder *Builder
}

// NewHandler creates a new report handler
func NewHandler(source DataSource, builder *Builder) *Handler {
	return &Handler{source: source, builder: builder}
}

// Routes returns the router for report endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/balance-sheet", h.BalanceSheet)

	return r
}

// BalanceSheet handles GET /reports/balance-sheet
// @Summary      Download the balance sheet
// @Description  Generate and download a spreadsheet with the caller's shares and the full expense history
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Failure      500 {object} response.APIResponse
// @Router       /reports/balance-sheet [get]
func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	shares, err := h.source.ListLedgerRows(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to load shares for report")
		return
	}

	expenses, err := h.source.ListAllExpenses(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load expenses for report")
		return
	}

	path, err := h.builder.Build(shares, expenses)
	if err != nil {
		// An artifact write failure is a report failure only; it never
		// affects allocation state.
		response.InternalError(w, "Failed to generate balance sheet")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="balance-sheet.xlsx"`)
	http.ServeFile(w, r, path)
}
