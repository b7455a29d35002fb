package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNoTaxBrackets      = errors.New("no tax brackets configured for period")
	ErrBracketGap         = errors.New("tax brackets have a gap or overlap")
	ErrBracketNotAnchored = errors.New("tax brackets must start at zero")
	ErrBracketUnbounded   = errors.New("top tax bracket must be unbounded")
)

// ValidateBrackets checks that the bracket set partitions [0, inf) without
// gaps or overlaps. A malformed set indicates corrupted policy data and must
// fail the whole run before any employee is processed.
func ValidateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return ErrNoTaxBrackets
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("%w: first bracket starts at %s", ErrBracketNotAnchored, brackets[0].Min)
	}
	for i, b := range brackets {
		last := i == len(brackets)-1
		if last {
			if b.Max != nil {
				return fmt.Errorf("%w: bracket %d caps at %s", ErrBracketUnbounded, b.Order, *b.Max)
			}
			continue
		}
		if b.Max == nil {
			return fmt.Errorf("%w: bracket %d has no upper bound but is not last", ErrBracketGap, b.Order)
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("%w: bracket %d range [%s, %s)", ErrBracketGap, b.Order, b.Min, *b.Max)
		}
		if !brackets[i+1].Min.Equal(*b.Max) {
			return fmt.Errorf("%w: bracket %d ends at %s, next starts at %s",
				ErrBracketGap, b.Order, *b.Max, brackets[i+1].Min)
		}
	}
	return nil
}

// ComputeTax computes progressive income tax for taxableIncome. Reliefs are
// applied according to the policy's ReliefMode. The bracket set is assumed to
// have passed ValidateBrackets.
func ComputeTax(taxableIncome decimal.Decimal, policy TaxPolicy) (decimal.Decimal, error) {
	if len(policy.Brackets) == 0 {
		return decimal.Zero, ErrNoTaxBrackets
	}

	income := taxableIncome
	if policy.ReliefMode == ReliefPreTaxDeduction {
		income = income.Sub(policy.Relief)
	}
	if income.IsNegative() {
		income = decimal.Zero
	}

	bracket, err := findBracket(income, policy.Brackets)
	if err != nil {
		return decimal.Zero, err
	}

	tax := bracket.CumulativeAtMin.Add(
		income.Sub(bracket.Min).Mul(bracket.RatePercent).Div(decimal.NewFromInt(100)),
	)

	if policy.ReliefMode == ReliefPostTaxCredit {
		tax = tax.Sub(policy.Relief)
	}
	if tax.IsNegative() {
		tax = decimal.Zero
	}
	return tax, nil
}

func findBracket(income decimal.Decimal, brackets []TaxBracket) (TaxBracket, error) {
	for _, b := range brackets {
		if income.GreaterThanOrEqual(b.Min) && (b.Max == nil || income.LessThan(*b.Max)) {
			return b, nil
		}
	}
	return TaxBracket{}, fmt.Errorf("no bracket covers income %s", income)
}
