package split

import (
	"errors"
	"fmt"
	"math"
)

// Method defines the split method used to divide an expense
type Method string

const (
	MethodEqual      Method = "EQUAL"
	MethodExact      Method = "EXACT"
	MethodPercentage Method = "PERCENTAGE"
)

// Epsilon is the absolute tolerance used for monetary and percentage
// sum checks. Amounts are float64, so equality is never exact.
const Epsilon = 1e-6

// Entry represents a listed participant in a split with optional values
type Entry struct {
	UserID      int64    `json:"user_id"`
	Percentage  *float64 `json:"percentage,omitempty"`   // For PERCENTAGE split
	ExactAmount *float64 `json:"exact_amount,omitempty"` // For EXACT split
}

// PayerDeclared carries the payer's own declared contribution. It is used
// as a cross-check during validation only; the stored payer share is
// always derived as the residual of the listed entries.
type PayerDeclared struct {
	Percentage  *float64
	ExactAmount *float64
}

// Share is the calculated share for a single participant. The calculator
// emits one Share per listed entry plus one for the payer, payer last.
type Share struct {
	UserID      int64   `json:"user_id"`
	Amount      float64 `json:"amount"`
	Percentage  float64 `json:"percentage"`
	ExactAmount float64 `json:"exact_amount"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Compute calculates the shares for all participants including the payer
	Compute(totalAmount float64, payerID int64, entries []Entry, payer PayerDeclared) ([]Share, error)

	// Method returns the method identifier for this strategy
	Method() Method

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount float64, entries []Entry, payer PayerDeclared) error
}

// Factory creates split strategies based on the requested method
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation for the method
func (f *Factory) Create(method Method) (Strategy, error) {
	switch method {
	case MethodEqual:
		return &EqualStrategy{}, nil
	case MethodExact:
		return &ExactStrategy{}, nil
	case MethodPercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

// CreateFromString creates a strategy from a string method (useful for API requests)
func (f *Factory) CreateFromString(method string) (Strategy, error) {
	return f.Create(Method(method))
}

var (
	ErrUnknownMethod         = errors.New("unknown split method")
	ErrNonPositiveAmount     = errors.New("amount must be positive")
	ErrMissingExactAmount    = errors.New("exact amount required for all participants")
	ErrMissingPercentage     = errors.New("percentage value required for all participants")
	ErrMissingPayerValue     = errors.New("payer's own exact amount or percentage is required")
	ErrPercentageOutOfRange  = errors.New("percentage must be greater than 0 and at most 100")
	ErrExactSumMismatch      = errors.New("exact amounts plus payer amount must sum to the total")
	ErrPercentageSumMismatch = errors.New("percentages plus payer percentage must sum to 100")

	// ErrComputation marks a post-derivation invariant violation. Inputs
	// that reach this point already passed validation, so it is an
	// internal failure, never a client one.
	ErrComputation = errors.New("share computation invariant violated")
)

// withinEpsilon reports whether two values agree within Epsilon
func withinEpsilon(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// checkInvariants verifies that computed shares sum to the expense total
// and that percentages sum to 100
func checkInvariants(totalAmount float64, shares []Share) error {
	var amountSum, pctSum float64
	for _, s := range shares {
		amountSum += s.Amount
		pctSum += s.Percentage
	}
	if !withinEpsilon(amountSum, totalAmount) {
		return fmt.Errorf("%w: shares sum to %.6f, expected %.6f", ErrComputation, amountSum, totalAmount)
	}
	if !withinEpsilon(pctSum, 100) {
		return fmt.Errorf("%w: percentages sum to %.6f, expected 100", ErrComputation, pctSum)
	}
	return nil
}
