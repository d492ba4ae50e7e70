package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"expenseshare/internal/expense/split"
	"expenseshare/pkg/middleware"
	"expenseshare/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Allocate)
	r.Get("/", h.List)
	r.Get("/shares", h.MyShares)
	r.Get("/{id}", h.GetByID)

	return r
}

// Allocate handles POST /expenses
// @Summary      Allocate a new expense
// @Description  Create an expense and split it among participants using the EQUAL, EXACT, or PERCENTAGE method
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body object true "Allocation request; users shape depends on splitMethod"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	payerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.Allocate(r.Context(), payerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownParticipant):
			response.NotFound(w, err.Error())
		case errors.Is(err, split.ErrComputation):
			// Post-derivation invariant violation is an engine fault;
			// the arithmetic detail stays in the logs.
			response.InternalError(w, "Failed to allocate expense")
		case errors.Is(err, ErrParticipantCountMismatch),
			errors.Is(err, split.ErrUnknownMethod),
			errors.Is(err, split.ErrNonPositiveAmount),
			errors.Is(err, split.ErrMissingExactAmount),
			errors.Is(err, split.ErrMissingPercentage),
			errors.Is(err, split.ErrMissingPayerValue),
			errors.Is(err, split.ErrPercentageOutOfRange),
			errors.Is(err, split.ErrExactSumMismatch),
			errors.Is(err, split.ErrPercentageSumMismatch):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to allocate expense")
		}
		return
	}

	expenseResp := result.Expense.ToResponse()
	expenseResp.Shares = make([]*ShareResponse, len(result.Shares))
	for i, s := range result.Shares {
		expenseResp.Shares[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusCreated, expenseResp)
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Description  Get an expense with all its shares
// @Tags         expenses
// @Produce      json
// @Param        id path int true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	result, err := h.service.GetExpenseByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get expense")
		return
	}

	expenseResp := result.Expense.ToResponse()
	expenseResp.Shares = make([]*ShareResponse, len(result.Shares))
	for i, s := range result.Shares {
		expenseResp.Shares[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, expenseResp)
}

// List handles GET /expenses
// @Summary      List all expenses
// @Description  Get a paginated list of all expenses with payer names
// @Tags         expenses
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	expenses, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list expenses")
		return
	}

	expenseResponses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		expenseResponses[i] = e.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, expenseResponses, meta)
}

// MyShares handles GET /expenses/shares
// @Summary      List the caller's shares
// @Description  Get every share assigned to the authenticated user across all expenses
// @Tags         expenses
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]ShareResponse}
// @Router       /expenses/shares [get]
func (h *Handler) MyShares(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	shares, err := h.service.SharesForUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list shares")
		return
	}

	shareResponses := make([]*ShareResponse, len(shares))
	for i, s := range shares {
		shareResponses[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, shareResponses)
}
