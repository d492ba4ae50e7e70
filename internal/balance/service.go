package balance

import (
	"context"
	"errors"

	"expenseshare/internal/expense"
)

// ErrNoHistory is returned for a participant with zero shares. It is
// distinct from a participant whose paid and owed totals cancel out.
var ErrNoHistory = errors.New("no expense history for this user")

// Summary holds a user's aggregated position across all expenses
type Summary struct {
	UserID    int64   `json:"user_id"`
	TotalPaid float64 `json:"total_paid"`
	TotalOwed float64 `json:"total_owed"`
	Net       float64 `json:"net"`
}

// ShareSource provides the joined share rows the aggregator reduces.
// Implemented by *expense.Repository.
type ShareSource interface {
	ListLedgerRows(ctx context.Context, userID int64) ([]*expense.LedgerRow, error)
}

// Service reduces a user's share history into paid/owed/net totals
type Service struct {
	shares ShareSource
}

// NewService creates a new balance service
func NewService(shares ShareSource) *Service {
	return &Service{shares: shares}
}

// Summarize aggregates the user's shares. A share on an expense the user
// created contributes that expense's total to TotalPaid (the user fronted
// the whole amount); a share on someone else's expense contributes the
// share amount to TotalOwed. Each own expense appears exactly once
// because every expense carries exactly one share per participant.
func (s *Service) Summarize(ctx context.Context, userID int64) (*Summary, error) {
	rows, err := s.shares.ListLedgerRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoHistory
	}

	summary := &Summary{UserID: userID}
	for _, row := range rows {
		if row.ExpensePayerID == userID {
			summary.TotalPaid += row.ExpenseTotal
		} else {
			summary.TotalOwed += row.Amount
		}
	}
	summary.Net = summary.TotalPaid - summary.TotalOwed

	return summary, nil
}
