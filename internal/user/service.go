package user

import (
	"context"
	"errors"

	"expenseshare/internal/auth"
	"expenseshare/internal/expense"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found, please register first")
	ErrEmailAlreadyInUse  = errors.New("user already registered with this email")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// ActivitySource provides a user's expense history for the profile view.
// Implemented by *expense.Repository.
type ActivitySource interface {
	ListByPayer(ctx context.Context, payerID int64) ([]*expense.Expense, error)
	ListSharesByUser(ctx context.Context, userID int64) ([]*expense.Share, error)
}

// Service handles user business logic
type Service struct {
	repo       *Repository
	activity   ActivitySource
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewService creates a new user service with dependencies injected
func NewService(repo *Repository, activity ActivitySource, tokens *auth.TokenManager, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		activity:   activity,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user and issues a session token
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, string, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyInUse
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.repo.Create(ctx, req.Name, req.Email, req.PhoneNumber, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and issues a session token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*User, string, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Profile retrieves a user together with the expenses they created and
// the shares assigned to them
func (s *Service) Profile(ctx context.Context, userID int64) (*User, []*expense.Expense, []*expense.Share, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	if user == nil {
		return nil, nil, nil, ErrUserNotFound
	}

	expenses, err := s.activity.ListByPayer(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	shares, err := s.activity.ListSharesByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	return user, expenses, shares, nil
}
