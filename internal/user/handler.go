package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"expenseshare/internal/auth"
	"expenseshare/internal/expense"
	"expenseshare/pkg/middleware"
	"expenseshare/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for user endpoints. Register and login are
// public; profile requires the auth middleware.
func (h *Handler) Routes(authMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(authMW)
		r.Get("/profile", h.Profile)
	})

	return r
}

// Register handles POST /users/register
// @Summary      Register a new user
// @Description  Create an account and receive a session token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} response.APIResponse{data=AuthResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /users/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.PhoneNumber == "" || req.Password == "" {
		response.BadRequest(w, "name, email, phone_number and password are required")
		return
	}

	user, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyInUse) {
			response.Conflict(w, err.Error())
			return
		}
		if errors.Is(err, auth.ErrWeakPassword) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to register user")
		return
	}

	response.JSON(w, http.StatusCreated, &AuthResponse{User: user.ToResponse(), Token: token})
}

// Login handles POST /users/login
// @Summary      Log in
// @Description  Verify credentials and receive a session token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=AuthResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /users/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to process login")
		return
	}

	response.JSON(w, http.StatusOK, &AuthResponse{User: user.ToResponse(), Token: token})
}

// Profile handles GET /users/profile
// @Summary      Get the caller's profile
// @Description  The authenticated user together with their expenses and shares
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=ProfileResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	user, expenses, shares, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to load profile")
		return
	}

	profile := &ProfileResponse{
		User:     user.ToResponse(),
		Expenses: make([]*expense.ExpenseResponse, len(expenses)),
		Shares:   make([]*expense.ShareResponse, len(shares)),
	}
	for i, e := range expenses {
		profile.Expenses[i] = e.ToResponse()
	}
	for i, s := range shares {
		profile.Shares[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, profile)
}
