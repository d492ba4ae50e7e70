package balance

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"expenseshare/pkg/middleware"
	"expenseshare/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.MyBalance)

	return r
}

// MyBalance handles GET /balances
// @Summary      Get the caller's balance summary
// @Description  Total paid across own expenses, total owed across others' expenses, and the net position
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=Summary}
// @Failure      404 {object} response.APIResponse
// @Router       /balances [get]
func (h *Handler) MyBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	summary, err := h.service.Summarize(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNoHistory) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to summarize balance")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
