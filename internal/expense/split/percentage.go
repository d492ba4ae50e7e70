package split

import "math"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Each listed participant owes a percentage of the total; the payer's
// percentage is the residual of 100
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Method returns the split method identifier
func (s *PercentageStrategy) Method() Method {
	return MethodPercentage
}

// Validate checks if the inputs are valid for a percentage split.
// Every listed participant must carry a percentage in (0,100], the payer
// must declare their own, and listed percentages plus the declared payer
// percentage must sum to 100. The payer may declare zero percent; a payer
// who fronted the whole expense owes nothing.
func (s *PercentageStrategy) Validate(totalAmount float64, entries []Entry, payer PayerDeclared) error {
	if totalAmount <= 0 {
		return ErrNonPositiveAmount
	}

	var listedSum float64
	for _, e := range entries {
		if e.Percentage == nil {
			return ErrMissingPercentage
		}
		if *e.Percentage <= 0 || *e.Percentage > 100 {
			return ErrPercentageOutOfRange
		}
		listedSum += *e.Percentage
	}

	if payer.Percentage == nil {
		return ErrMissingPayerValue
	}
	if *payer.Percentage < 0 || *payer.Percentage > 100 {
		return ErrPercentageOutOfRange
	}

	if math.Abs(listedSum+*payer.Percentage-100) > Epsilon {
		return ErrPercentageSumMismatch
	}

	return nil
}

// Compute converts each listed percentage to an amount and assigns the
// payer the derived residual percentage `100 - sum(listed)`. As with
// exact splits, the payer's declared percentage is a cross-check only.
func (s *PercentageStrategy) Compute(totalAmount float64, payerID int64, entries []Entry, payer PayerDeclared) ([]Share, error) {
	if err := s.Validate(totalAmount, entries, payer); err != nil {
		return nil, err
	}

	shares := make([]Share, 0, len(entries)+1)
	var listedSum float64
	for _, e := range entries {
		pct := *e.Percentage
		listedSum += pct
		amount := (totalAmount * pct) / 100
		shares = append(shares, Share{
			UserID:      e.UserID,
			Amount:      amount,
			Percentage:  pct,
			ExactAmount: amount,
		})
	}

	residualPct := 100 - listedSum
	residualAmount := (totalAmount * residualPct) / 100
	shares = append(shares, Share{
		UserID:      payerID,
		Amount:      residualAmount,
		Percentage:  residualPct,
		ExactAmount: residualAmount,
	})

	if err := checkInvariants(totalAmount, shares); err != nil {
		return nil, err
	}

	return shares, nil
}
