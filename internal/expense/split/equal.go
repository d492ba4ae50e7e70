package split

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants, payer included
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Method returns the split method identifier
func (s *EqualStrategy) Method() Method {
	return MethodEqual
}

// Validate checks if the inputs are valid for an equal split.
// Equal splits need only identities; declared values are ignored. An
// empty list is a solo expense carried entirely by the payer.
func (s *EqualStrategy) Validate(totalAmount float64, entries []Entry, _ PayerDeclared) error {
	if totalAmount <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// Compute divides the total amount evenly among all participants.
// Every participant, the payer included, receives an identical share.
// When the total does not divide evenly the residual is bounded by
// float64 precision and stays well under one minor unit; the invariant
// check at the end enforces that.
func (s *EqualStrategy) Compute(totalAmount float64, payerID int64, entries []Entry, payer PayerDeclared) ([]Share, error) {
	if err := s.Validate(totalAmount, entries, payer); err != nil {
		return nil, err
	}

	count := len(entries) + 1 // listed participants plus the payer
	perShare := totalAmount / float64(count)
	perPercentage := 100 / float64(count)

	shares := make([]Share, 0, count)
	for _, e := range entries {
		shares = append(shares, Share{
			UserID:      e.UserID,
			Amount:      perShare,
			Percentage:  perPercentage,
			ExactAmount: perShare,
		})
	}

	// Payer carries an identical share, appended last
	shares = append(shares, Share{
		UserID:      payerID,
		Amount:      perShare,
		Percentage:  perPercentage,
		ExactAmount: perShare,
	})

	if err := checkInvariants(totalAmount, shares); err != nil {
		return nil, err
	}

	return shares, nil
}
