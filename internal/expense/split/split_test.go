package split

import (
	"errors"
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func sumAmounts(shares []Share) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Amount
	}
	return sum
}

func sumPercentages(shares []Share) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Percentage
	}
	return sum
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	for _, m := range []Method{MethodEqual, MethodExact, MethodPercentage} {
		strategy, err := f.Create(m)
		if err != nil {
			t.Fatalf("Create(%s) returned error: %v", m, err)
		}
		if strategy.Method() != m {
			t.Errorf("Create(%s).Method() = %s", m, strategy.Method())
		}
	}

	if _, err := f.CreateFromString("HALVSIES"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("CreateFromString(HALVSIES) error = %v, want ErrUnknownMethod", err)
	}
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		payerID   int64
		entries   []Entry
		wantErr   error
		wantShare float64
		wantPct   float64
	}{
		{
			name:      "three way split of 300",
			total:     300,
			payerID:   1,
			entries:   []Entry{{UserID: 2}, {UserID: 3}},
			wantShare: 100,
			wantPct:   100.0 / 3,
		},
		{
			name:      "two way split with odd cents",
			total:     100.01,
			payerID:   1,
			entries:   []Entry{{UserID: 2}},
			wantShare: 50.005,
			wantPct:   50,
		},
		{
			name:      "solo expense with no listed participants",
			total:     100,
			payerID:   1,
			entries:   nil,
			wantShare: 100,
			wantPct:   100,
		},
		{
			name:    "zero amount",
			total:   0,
			payerID: 1,
			entries: []Entry{{UserID: 2}},
			wantErr: ErrNonPositiveAmount,
		},
	}

	s := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := s.Compute(tt.total, tt.payerID, tt.entries, PayerDeclared{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Compute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compute() returned error: %v", err)
			}

			if len(shares) != len(tt.entries)+1 {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.entries)+1)
			}
			for _, sh := range shares {
				if math.Abs(sh.Amount-tt.wantShare) > Epsilon {
					t.Errorf("share for user %d = %v, want %v", sh.UserID, sh.Amount, tt.wantShare)
				}
				if math.Abs(sh.Percentage-tt.wantPct) > Epsilon {
					t.Errorf("percentage for user %d = %v, want %v", sh.UserID, sh.Percentage, tt.wantPct)
				}
				if sh.ExactAmount != sh.Amount {
					t.Errorf("exact amount %v does not mirror amount %v", sh.ExactAmount, sh.Amount)
				}
			}

			// Payer's share is appended last
			if shares[len(shares)-1].UserID != tt.payerID {
				t.Errorf("last share belongs to user %d, want payer %d", shares[len(shares)-1].UserID, tt.payerID)
			}

			// Residual from an uneven division must stay under one minor unit
			if diff := math.Abs(sumAmounts(shares) - tt.total); diff > 0.01 {
				t.Errorf("split residual %v exceeds one minor unit", diff)
			}
			if math.Abs(sumPercentages(shares)-100) > Epsilon {
				t.Errorf("percentages sum to %v, want 100", sumPercentages(shares))
			}
		})
	}
}

func TestExactStrategy(t *testing.T) {
	s := &ExactStrategy{}

	t.Run("payer share is derived not declared", func(t *testing.T) {
		// Declared payer amount passes validation (30+70=100) but the
		// stored payer share must be the residual 100-30.
		shares, err := s.Compute(100, 1, []Entry{{UserID: 2, ExactAmount: fp(30)}}, PayerDeclared{ExactAmount: fp(70)})
		if err != nil {
			t.Fatalf("Compute() returned error: %v", err)
		}
		if len(shares) != 2 {
			t.Fatalf("got %d shares, want 2", len(shares))
		}
		if shares[0].UserID != 2 || math.Abs(shares[0].Amount-30) > Epsilon {
			t.Errorf("listed share = %+v, want user 2 owing 30", shares[0])
		}
		payer := shares[1]
		if payer.UserID != 1 || math.Abs(payer.Amount-70) > Epsilon {
			t.Errorf("payer share = %+v, want user 1 owing 70", payer)
		}
		if math.Abs(payer.Percentage-70) > Epsilon {
			t.Errorf("payer percentage = %v, want 70", payer.Percentage)
		}
		if math.Abs(sumAmounts(shares)-100) > Epsilon {
			t.Errorf("shares sum to %v, want 100", sumAmounts(shares))
		}
	})

	t.Run("sum mismatch rejected before computation", func(t *testing.T) {
		_, err := s.Compute(100, 1, []Entry{{UserID: 2, ExactAmount: fp(30)}}, PayerDeclared{ExactAmount: fp(60)})
		if !errors.Is(err, ErrExactSumMismatch) {
			t.Errorf("Compute() error = %v, want ErrExactSumMismatch", err)
		}
	})

	t.Run("missing entry amount", func(t *testing.T) {
		_, err := s.Compute(100, 1, []Entry{{UserID: 2}}, PayerDeclared{ExactAmount: fp(70)})
		if !errors.Is(err, ErrMissingExactAmount) {
			t.Errorf("Compute() error = %v, want ErrMissingExactAmount", err)
		}
	})

	t.Run("missing payer amount", func(t *testing.T) {
		_, err := s.Compute(100, 1, []Entry{{UserID: 2, ExactAmount: fp(30)}}, PayerDeclared{})
		if !errors.Is(err, ErrMissingPayerValue) {
			t.Errorf("Compute() error = %v, want ErrMissingPayerValue", err)
		}
	})

	t.Run("payer declaring zero owes nothing", func(t *testing.T) {
		// One listed participant covers the whole amount; the payer
		// fronted it and keeps a zero residual share.
		shares, err := s.Compute(100, 1, []Entry{{UserID: 2, ExactAmount: fp(100)}}, PayerDeclared{ExactAmount: fp(0)})
		if err != nil {
			t.Fatalf("Compute() returned error: %v", err)
		}
		payer := shares[len(shares)-1]
		if payer.UserID != 1 || math.Abs(payer.Amount) > Epsilon {
			t.Errorf("payer share = %+v, want zero residual", payer)
		}
		if math.Abs(sumAmounts(shares)-100) > Epsilon {
			t.Errorf("shares sum to %v, want 100", sumAmounts(shares))
		}
	})

	t.Run("exact amounts survive exactly", func(t *testing.T) {
		shares, err := s.Compute(250, 7, []Entry{
			{UserID: 2, ExactAmount: fp(100.55)},
			{UserID: 3, ExactAmount: fp(49.45)},
		}, PayerDeclared{ExactAmount: fp(100)})
		if err != nil {
			t.Fatalf("Compute() returned error: %v", err)
		}
		if shares[0].ExactAmount != 100.55 || shares[1].ExactAmount != 49.45 {
			t.Errorf("listed exact amounts changed: %v, %v", shares[0].ExactAmount, shares[1].ExactAmount)
		}
		if math.Abs(shares[2].Amount-100) > Epsilon {
			t.Errorf("payer residual = %v, want 100", shares[2].Amount)
		}
	})
}

func TestPercentageStrategy(t *testing.T) {
	s := &PercentageStrategy{}

	t.Run("percentages convert to amounts with derived payer residual", func(t *testing.T) {
		shares, err := s.Compute(200, 1, []Entry{{UserID: 2, Percentage: fp(40)}}, PayerDeclared{Percentage: fp(60)})
		if err != nil {
			t.Fatalf("Compute() returned error: %v", err)
		}
		if len(shares) != 2 {
			t.Fatalf("got %d shares, want 2", len(shares))
		}
		if math.Abs(shares[0].Amount-80) > Epsilon {
			t.Errorf("listed share = %v, want 80 (40%% of 200)", shares[0].Amount)
		}
		payer := shares[1]
		if math.Abs(payer.Amount-120) > Epsilon || math.Abs(payer.Percentage-60) > Epsilon {
			t.Errorf("payer share = %+v, want 120 at 60%%", payer)
		}
		if math.Abs(sumPercentages(shares)-100) > Epsilon {
			t.Errorf("percentages sum to %v, want 100", sumPercentages(shares))
		}
	})

	t.Run("percentage sum mismatch rejected", func(t *testing.T) {
		_, err := s.Compute(200, 1, []Entry{{UserID: 2, Percentage: fp(40)}}, PayerDeclared{Percentage: fp(50)})
		if !errors.Is(err, ErrPercentageSumMismatch) {
			t.Errorf("Compute() error = %v, want ErrPercentageSumMismatch", err)
		}
	})

	t.Run("payer declaring zero percent owes nothing", func(t *testing.T) {
		shares, err := s.Compute(200, 1, []Entry{{UserID: 2, Percentage: fp(100)}}, PayerDeclared{Percentage: fp(0)})
		if err != nil {
			t.Fatalf("Compute() returned error: %v", err)
		}
		if math.Abs(shares[0].Amount-200) > Epsilon {
			t.Errorf("listed share = %v, want the full 200", shares[0].Amount)
		}
		payer := shares[1]
		if math.Abs(payer.Amount) > Epsilon || math.Abs(payer.Percentage) > Epsilon {
			t.Errorf("payer share = %+v, want zero residual", payer)
		}
	})

	t.Run("percentage out of range", func(t *testing.T) {
		_, err := s.Compute(200, 1, []Entry{{UserID: 2, Percentage: fp(120)}}, PayerDeclared{Percentage: fp(-20)})
		if !errors.Is(err, ErrPercentageOutOfRange) {
			t.Errorf("Compute() error = %v, want ErrPercentageOutOfRange", err)
		}
	})

	t.Run("missing percentage", func(t *testing.T) {
		_, err := s.Compute(200, 1, []Entry{{UserID: 2}}, PayerDeclared{Percentage: fp(60)})
		if !errors.Is(err, ErrMissingPercentage) {
			t.Errorf("Compute() error = %v, want ErrMissingPercentage", err)
		}
	})

	t.Run("repeating decimals stay within epsilon", func(t *testing.T) {
		shares, err := s.Compute(100, 1, []Entry{
			{UserID: 2, Percentage: fp(33.333333)},
			{UserID: 3, Percentage: fp(33.333333)},
		}, PayerDeclared{Percentage: fp(33.333334)})
		if err != nil {
			t.Fatalf("Compute() returned error: %v", err)
		}
		if math.Abs(sumAmounts(shares)-100) > Epsilon {
			t.Errorf("shares sum to %v, want 100", sumAmounts(shares))
		}
	})
}
