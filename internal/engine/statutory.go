package engine

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNoStatutoryRates = errors.New("no statutory rates configured for period")

// StatutoryContribution holds employee-side and employer-side totals. The
// employer side is reported for costing but never reduces net pay.
type StatutoryContribution struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// ComputeStatutory applies every configured tier to the statutory base (the
// post-proration sum of components flagged as affecting it). Tiers sum
// independently.
func ComputeStatutory(base decimal.Decimal, rates []StatutoryRate) (StatutoryContribution, error) {
	if len(rates) == 0 {
		return StatutoryContribution{}, ErrNoStatutoryRates
	}

	hundred := decimal.NewFromInt(100)
	total := StatutoryContribution{Employee: decimal.Zero, Employer: decimal.Zero}
	for _, r := range rates {
		total.Employee = total.Employee.Add(base.Mul(r.EmployeeRatePercent).Div(hundred))
		total.Employer = total.Employer.Add(base.Mul(r.EmployerRatePercent).Div(hundred))
	}
	return total, nil
}
