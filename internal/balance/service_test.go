package balance

import (
	"context"
	"errors"
	"math"
	"testing"

	"expenseshare/internal/expense"
)

type fakeShareSource struct {
	rows map[int64][]*expense.LedgerRow
}

func (f *fakeShareSource) ListLedgerRows(_ context.Context, userID int64) ([]*expense.LedgerRow, error) {
	return f.rows[userID], nil
}

func TestSummarize(t *testing.T) {
	const epsilon = 1e-6

	// User 1 fronted two expenses (300 + 200) and owes shares of 100
	// and 50 on expenses created by users 2 and 3.
	source := &fakeShareSource{rows: map[int64][]*expense.LedgerRow{
		1: {
			{ExpensePayerID: 1, ExpenseTotal: 300, Amount: 100},
			{ExpensePayerID: 1, ExpenseTotal: 200, Amount: 66.67},
			{ExpensePayerID: 2, ExpenseTotal: 400, Amount: 100},
			{ExpensePayerID: 3, ExpenseTotal: 150, Amount: 50},
		},
		2: {
			{ExpensePayerID: 1, ExpenseTotal: 300, Amount: 100},
		},
	}}
	svc := NewService(source)

	t.Run("paid and owed classified by expense payer", func(t *testing.T) {
		got, err := svc.Summarize(context.Background(), 1)
		if err != nil {
			t.Fatalf("Summarize() returned error: %v", err)
		}
		if math.Abs(got.TotalPaid-500) > epsilon {
			t.Errorf("TotalPaid = %v, want 500", got.TotalPaid)
		}
		if math.Abs(got.TotalOwed-150) > epsilon {
			t.Errorf("TotalOwed = %v, want 150", got.TotalOwed)
		}
		if math.Abs(got.Net-350) > epsilon {
			t.Errorf("Net = %v, want 350", got.Net)
		}
	})

	t.Run("own share amount does not count toward owed", func(t *testing.T) {
		got, err := svc.Summarize(context.Background(), 2)
		if err != nil {
			t.Fatalf("Summarize() returned error: %v", err)
		}
		if got.TotalPaid != 0 {
			t.Errorf("TotalPaid = %v, want 0", got.TotalPaid)
		}
		if math.Abs(got.TotalOwed-100) > epsilon {
			t.Errorf("TotalOwed = %v, want 100", got.TotalOwed)
		}
		if math.Abs(got.Net-(-100)) > epsilon {
			t.Errorf("Net = %v, want -100", got.Net)
		}
	})

	t.Run("idempotent without new allocations", func(t *testing.T) {
		first, err := svc.Summarize(context.Background(), 1)
		if err != nil {
			t.Fatalf("Summarize() returned error: %v", err)
		}
		second, err := svc.Summarize(context.Background(), 1)
		if err != nil {
			t.Fatalf("Summarize() returned error: %v", err)
		}
		if *first != *second {
			t.Errorf("repeated summaries differ: %+v vs %+v", first, second)
		}
	})

	t.Run("no history is distinct from zero net", func(t *testing.T) {
		_, err := svc.Summarize(context.Background(), 99)
		if !errors.Is(err, ErrNoHistory) {
			t.Errorf("Summarize() error = %v, want ErrNoHistory", err)
		}
	})
}
