package expense

import (
	"encoding/json"
	"fmt"

	"expenseshare/internal/expense/split"
)

// SplitDetails is the method-specific portion of an allocation request.
// The request body carries different participant shapes per split method,
// so decoding produces one of the variants below rather than a single
// struct with conditional optional fields.
type SplitDetails interface {
	Method() split.Method

	// Emails returns the listed participants' emails in request order.
	Emails() []string

	// Entries converts the listed participants to calculator entries
	// using the resolved email-to-ID mapping.
	Entries(ids map[string]ParticipantRef) []split.Entry

	// Payer returns the payer's own declared contribution.
	Payer() split.PayerDeclared
}

// EqualSplit lists participants by email only
type EqualSplit struct {
	UserEmails []string
}

func (s *EqualSplit) Method() split.Method { return split.MethodEqual }
func (s *EqualSplit) Emails() []string     { return s.UserEmails }

func (s *EqualSplit) Entries(ids map[string]ParticipantRef) []split.Entry {
	entries := make([]split.Entry, len(s.UserEmails))
	for i, email := range s.UserEmails {
		entries[i] = split.Entry{UserID: ids[email].ID}
	}
	return entries
}

func (s *EqualSplit) Payer() split.PayerDeclared { return split.PayerDeclared{} }

// ExactUser is one listed participant with their exact contribution
type ExactUser struct {
	Email       string  `json:"email"`
	ExactAmount float64 `json:"exact_amount"`
}

// ExactSplit lists participants with exact amounts plus the payer's own
// declared amount
type ExactSplit struct {
	Users            []ExactUser
	PayerExactAmount *float64
}

func (s *ExactSplit) Method() split.Method { return split.MethodExact }

func (s *ExactSplit) Emails() []string {
	emails := make([]string, len(s.Users))
	for i, u := range s.Users {
		emails[i] = u.Email
	}
	return emails
}

func (s *ExactSplit) Entries(ids map[string]ParticipantRef) []split.Entry {
	entries := make([]split.Entry, len(s.Users))
	for i, u := range s.Users {
		amount := u.ExactAmount
		entries[i] = split.Entry{UserID: ids[u.Email].ID, ExactAmount: &amount}
	}
	return entries
}

func (s *ExactSplit) Payer() split.PayerDeclared {
	return split.PayerDeclared{ExactAmount: s.PayerExactAmount}
}

// PercentageUser is one listed participant with their percentage
type PercentageUser struct {
	Email      string  `json:"email"`
	Percentage float64 `json:"percentage"`
}

// PercentageSplit lists participants with percentages plus the payer's
// own declared percentage
type PercentageSplit struct {
	Users           []PercentageUser
	PayerPercentage *float64
}

func (s *PercentageSplit) Method() split.Method { return split.MethodPercentage }

func (s *PercentageSplit) Emails() []string {
	emails := make([]string, len(s.Users))
	for i, u := range s.Users {
		emails[i] = u.Email
	}
	return emails
}

func (s *PercentageSplit) Entries(ids map[string]ParticipantRef) []split.Entry {
	entries := make([]split.Entry, len(s.Users))
	for i, u := range s.Users {
		pct := u.Percentage
		entries[i] = split.Entry{UserID: ids[u.Email].ID, Percentage: &pct}
	}
	return entries
}

func (s *PercentageSplit) Payer() split.PayerDeclared {
	return split.PayerDeclared{Percentage: s.PayerPercentage}
}

// AllocateRequest represents the request to allocate a new expense
type AllocateRequest struct {
	Amount      float64
	Description *string
	SplitMethod string
	UsersCount  int
	Split       SplitDetails
}

// allocateWire mirrors the raw request body. The users array shape
// depends on splitMethod, so it is decoded in a second pass.
type allocateWire struct {
	Amount      float64         `json:"amount"`
	Description *string         `json:"description,omitempty"`
	SplitMethod string          `json:"splitMethod"`
	UsersCount  int             `json:"users_count"`
	Users       json.RawMessage `json:"users"`
	ExactAmount *float64        `json:"exact_amount,omitempty"`
	Percentage  *float64        `json:"percentage,omitempty"`
}

// UnmarshalJSON decodes the request body and selects the SplitDetails
// variant matching splitMethod. An unrecognized method leaves Split nil
// for the validator to reject. A recognized method with no users field
// yields an empty variant: a solo expense carried by the payer alone.
func (r *AllocateRequest) UnmarshalJSON(data []byte) error {
	var wire allocateWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.Amount = wire.Amount
	r.Description = wire.Description
	r.SplitMethod = wire.SplitMethod
	r.UsersCount = wire.UsersCount
	r.Split = nil

	switch split.Method(wire.SplitMethod) {
	case split.MethodEqual:
		var emails []string
		if len(wire.Users) > 0 {
			if err := json.Unmarshal(wire.Users, &emails); err != nil {
				return fmt.Errorf("equal split users must be a list of emails: %w", err)
			}
		}
		r.Split = &EqualSplit{UserEmails: emails}
	case split.MethodExact:
		var users []ExactUser
		if len(wire.Users) > 0 {
			if err := json.Unmarshal(wire.Users, &users); err != nil {
				return fmt.Errorf("exact split users must carry email and exact_amount: %w", err)
			}
		}
		r.Split = &ExactSplit{Users: users, PayerExactAmount: wire.ExactAmount}
	case split.MethodPercentage:
		var users []PercentageUser
		if len(wire.Users) > 0 {
			if err := json.Unmarshal(wire.Users, &users); err != nil {
				return fmt.Errorf("percentage split users must carry email and percentage: %w", err)
			}
		}
		r.Split = &PercentageSplit{Users: users, PayerPercentage: wire.Percentage}
	}

	return nil
}

// ShareResponse represents the response for a single share
type ShareResponse struct {
	ID          int64   `json:"id"`
	ExpenseID   int64   `json:"expense_id"`
	UserID      int64   `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	Amount      float64 `json:"amount"`
	Percentage  float64 `json:"percentage"`
	ExactAmount float64 `json:"exact_amount"`
	Settled     bool    `json:"settled"`
	CreatedAt   string  `json:"created_at"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64            `json:"id"`
	PayerID     int64            `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description *string          `json:"description,omitempty"`
	TotalAmount float64          `json:"total_amount"`
	SplitMethod string           `json:"split_method"`
	CreatedAt   string           `json:"created_at"`
	Shares      []*ShareResponse `json:"shares,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		TotalAmount: e.TotalAmount,
		SplitMethod: e.SplitMethod,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Share model to a ShareResponse DTO
func (s *Share) ToResponse() *ShareResponse {
	return &ShareResponse{
		ID:          s.ID,
		ExpenseID:   s.ExpenseID,
		UserID:      s.UserID,
		UserName:    s.UserName,
		Amount:      s.Amount,
		Percentage:  s.Percentage,
		ExactAmount: s.ExactAmount,
		Settled:     s.Settled,
		CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
