package split

import "math"

// =============================================================================
// EXACT SPLIT STRATEGY
// Each listed participant owes a specific exact amount; the payer's share
// is the residual of the total
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Method returns the split method identifier
func (s *ExactStrategy) Method() Method {
	return MethodExact
}

// Validate checks if the inputs are valid for an exact split.
// Every listed participant must carry a positive exact amount, the payer
// must declare their own, and listed amounts plus the declared payer
// amount must sum to the total. The payer's declared amount may be zero;
// a payer who fronted the whole expense owes nothing.
func (s *ExactStrategy) Validate(totalAmount float64, entries []Entry, payer PayerDeclared) error {
	if totalAmount <= 0 {
		return ErrNonPositiveAmount
	}

	var listedSum float64
	for _, e := range entries {
		if e.ExactAmount == nil {
			return ErrMissingExactAmount
		}
		if *e.ExactAmount <= 0 {
			return ErrNonPositiveAmount
		}
		listedSum += *e.ExactAmount
	}

	if payer.ExactAmount == nil {
		return ErrMissingPayerValue
	}

	if math.Abs(listedSum+*payer.ExactAmount-totalAmount) > Epsilon {
		return ErrExactSumMismatch
	}

	return nil
}

// Compute assigns each listed participant their specified amount and the
// payer the derived residual `total - sum(listed)`. The payer's declared
// amount was verified by Validate but is never stored; the residual is.
func (s *ExactStrategy) Compute(totalAmount float64, payerID int64, entries []Entry, payer PayerDeclared) ([]Share, error) {
	if err := s.Validate(totalAmount, entries, payer); err != nil {
		return nil, err
	}

	shares := make([]Share, 0, len(entries)+1)
	var listedSum float64
	for _, e := range entries {
		amount := *e.ExactAmount
		listedSum += amount
		shares = append(shares, Share{
			UserID:      e.UserID,
			Amount:      amount,
			Percentage:  (amount / totalAmount) * 100,
			ExactAmount: amount,
		})
	}

	residual := totalAmount - listedSum
	shares = append(shares, Share{
		UserID:      payerID,
		Amount:      residual,
		Percentage:  (residual / totalAmount) * 100,
		ExactAmount: residual,
	})

	if err := checkInvariants(totalAmount, shares); err != nil {
		return nil, err
	}

	return shares, nil
}
