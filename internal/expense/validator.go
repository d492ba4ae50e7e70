package expense

import (
	"errors"
	"fmt"

	"expenseshare/internal/expense/split"
)

// Common errors
var (
	ErrParticipantCountMismatch = errors.New("users_count does not match the provided users list")
	ErrUnknownParticipant       = errors.New("one or more participants not found")
	ErrExpenseNotFound          = errors.New("expense not found")
)

// AllocationValidator runs pre-flight consistency checks on an allocation
// request before any computation or write occurs. It is pure: the caller
// supplies the resolved participant identities.
type AllocationValidator struct {
	factory *split.Factory
}

// NewValidator creates a new allocation validator
func NewValidator(factory *split.Factory) *AllocationValidator {
	return &AllocationValidator{factory: factory}
}

// Validate runs checks in order: declared count, participant resolution,
// then method-specific shape via the strategy's own Validate. The payer
// is never in the listed users, hence the +1 in the count check.
func (v *AllocationValidator) Validate(req *AllocateRequest, resolved map[string]ParticipantRef) error {
	if req.Split == nil {
		return fmt.Errorf("%w: %s", split.ErrUnknownMethod, req.SplitMethod)
	}

	emails := req.Split.Emails()
	if req.UsersCount != len(emails)+1 {
		return fmt.Errorf("%w: declared %d, listed %d", ErrParticipantCountMismatch, req.UsersCount, len(emails))
	}

	for _, email := range emails {
		if _, ok := resolved[email]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownParticipant, email)
		}
	}

	strategy, err := v.factory.Create(req.Split.Method())
	if err != nil {
		return err
	}

	return strategy.Validate(req.Amount, req.Split.Entries(resolved), req.Split.Payer())
}
