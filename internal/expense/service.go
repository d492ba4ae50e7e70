package expense

import (
	"context"
	"log/slog"

	"expenseshare/internal/expense/split"
)

// Store defines the persistence operations the service needs. Implemented
// by *Repository; a fake stands in for it in tests.
type Store interface {
	CreateExpenseWithShares(ctx context.Context, exp *Expense, shares []*Share) (*Expense, []*Share, error)
	GetExpenseByID(ctx context.Context, id int64) (*Expense, error)
	GetSharesByExpenseID(ctx context.Context, expenseID int64) ([]*Share, error)
	ListSharesByUser(ctx context.Context, userID int64) ([]*Share, error)
	ListExpenses(ctx context.Context, limit, offset int) ([]*Expense, int, error)
}

// UserDirectory resolves participant identities. Implemented by the user
// feature; the engine holds references only.
type UserDirectory interface {
	ResolveByID(ctx context.Context, id int64) (*ParticipantRef, error)
	ResolveByEmails(ctx context.Context, emails []string) (map[string]ParticipantRef, error)
}

// Notifier delivers expense notifications to listed participants.
// Delivery failures never fail an allocation.
type Notifier interface {
	ExpenseShared(ctx context.Context, recipientID, expenseID int64, payerName string, amount float64) error
}

// Service orchestrates expense allocation: resolve participants, validate,
// compute shares, then persist everything as one atomic unit of work.
type Service struct {
	store        Store
	users        UserDirectory
	splitFactory *split.Factory
	validator    *AllocationValidator
	notifier     Notifier
}

// NewService creates a new expense service with dependencies injected.
// notifier may be nil.
func NewService(store Store, users UserDirectory, splitFactory *split.Factory, notifier Notifier) *Service {
	return &Service{
		store:        store,
		users:        users,
		splitFactory: splitFactory,
		validator:    NewValidator(splitFactory),
		notifier:     notifier,
	}
}

// Allocate creates an expense and its shares under the requested split
// method. Validation failures surface before any write; the expense and
// all shares are persisted in one transaction.
func (s *Service) Allocate(ctx context.Context, payerID int64, req *AllocateRequest) (*ExpenseWithShares, error) {
	payer, err := s.users.ResolveByID(ctx, payerID)
	if err != nil {
		return nil, err
	}

	var resolved map[string]ParticipantRef
	if req.Split != nil {
		resolved, err = s.users.ResolveByEmails(ctx, req.Split.Emails())
		if err != nil {
			return nil, err
		}
	}

	if err := s.validator.Validate(req, resolved); err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitMethod)
	if err != nil {
		return nil, err
	}

	computed, err := strategy.Compute(req.Amount, payer.ID, req.Split.Entries(resolved), req.Split.Payer())
	if err != nil {
		return nil, err
	}

	shares := make([]*Share, len(computed))
	for i, c := range computed {
		shares[i] = &Share{
			UserID:      c.UserID,
			Amount:      c.Amount,
			Percentage:  c.Percentage,
			ExactAmount: c.ExactAmount,
		}
	}

	expense, createdShares, err := s.store.CreateExpenseWithShares(ctx, &Expense{
		PayerID:     payer.ID,
		Description: req.Description,
		TotalAmount: req.Amount,
		SplitMethod: req.SplitMethod,
	}, shares)
	if err != nil {
		return nil, err
	}

	s.notifyParticipants(ctx, payer, expense, resolved)

	return &ExpenseWithShares{
		Expense: expense,
		Shares:  createdShares,
	}, nil
}

// notifyParticipants tells each listed participant about the new expense.
// Runs after the allocation committed; failures are logged and dropped.
func (s *Service) notifyParticipants(ctx context.Context, payer *ParticipantRef, expense *Expense, resolved map[string]ParticipantRef) {
	if s.notifier == nil {
		return
	}
	for _, ref := range resolved {
		if ref.ID == payer.ID {
			continue
		}
		if err := s.notifier.ExpenseShared(ctx, ref.ID, expense.ID, payer.Name, expense.TotalAmount); err != nil {
			slog.Warn("failed to notify participant", "user_id", ref.ID, "expense_id", expense.ID, "error", err)
		}
	}
}

// GetExpenseByID retrieves an expense with its shares
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithShares, error) {
	expense, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	shares, err := s.store.GetSharesByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithShares{
		Expense: expense,
		Shares:  shares,
	}, nil
}

// SharesForUser retrieves all shares belonging to a user
func (s *Service) SharesForUser(ctx context.Context, userID int64) ([]*Share, error) {
	return s.store.ListSharesByUser(ctx, userID)
}

// List retrieves all expenses with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListExpenses(ctx, perPage, offset)
}
