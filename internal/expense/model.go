package expense

import "time"

// Expense represents a shared expense in the system. Expenses are created
// once and never edited or deleted.
type Expense struct {
	ID          int64     `json:"id"`
	PayerID     int64     `json:"payer_id"`
	Description *string   `json:"description,omitempty"`
	TotalAmount float64   `json:"total_amount"`
	SplitMethod string    `json:"split_method"` // EQUAL, EXACT, PERCENTAGE
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Share represents one participant's monetary and proportional liability
// for one expense. Every expense has exactly one share per participant,
// the payer included.
type Share struct {
	ID          int64     `json:"id"`
	ExpenseID   int64     `json:"expense_id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Percentage  float64   `json:"percentage"`
	ExactAmount float64   `json:"exact_amount"`
	Settled     bool      `json:"settled"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithShares combines an expense with its calculated shares
type ExpenseWithShares struct {
	Expense *Expense
	Shares  []*Share
}

// LedgerRow is a share joined with its owning expense and the participant
// name. It is built on demand for balance aggregation and the ledger
// report and never persisted.
type LedgerRow struct {
	UserName       string
	Description    *string
	ExpenseTotal   float64
	ExpensePayerID int64
	Amount         float64
	Percentage     float64
	ExactAmount    float64
	Settled        bool
	CreatedAt      time.Time
}

// ParticipantRef is a resolved participant identity. The engine only
// holds references; user records are owned by the user feature.
type ParticipantRef struct {
	ID    int64
	Name  string
	Email string
}
