package engine

import "github.com/shopspring/decimal"

const (
	OvertimeTaxCode = "OVERTIME_TAX"
	BonusTaxCode    = "BONUS_TAX"
)

// OvertimeBonusAdjustment is the flat-rate tax treatment of overtime and
// bonus earnings. The taxed amounts stay out of ordinary PAYE income except
// for the bonus excess when the policy folds it back in.
type OvertimeBonusAdjustment struct {
	OvertimeTax decimal.Decimal
	BonusTax    decimal.Decimal
	// BonusExcessToPAYE is the part of the bonus that the policy routes into
	// ordinary taxable income instead of flat-taxing it.
	BonusExcessToPAYE decimal.Decimal
}

// AdjustOvertimeBonus computes the flat taxes for the employee's overtime and
// bonus totals. proratedBasic is the post-proration basic salary; the bonus
// threshold works off annualized basic.
func AdjustOvertimeBonus(
	cfg OvertimeBonusTaxConfig,
	nonResident bool,
	proratedBasic decimal.Decimal,
	overtimeAmount decimal.Decimal,
	bonusAmount decimal.Decimal,
) OvertimeBonusAdjustment {
	hundred := decimal.NewFromInt(100)
	adj := OvertimeBonusAdjustment{
		OvertimeTax:       decimal.Zero,
		BonusTax:          decimal.Zero,
		BonusExcessToPAYE: decimal.Zero,
	}

	if overtimeAmount.IsPositive() {
		rate := cfg.RateBelowThreshold
		switch {
		case nonResident:
			rate = cfg.NonResidentOvertimeRate
		default:
			monthlyThreshold := cfg.AnnualSalaryThreshold.Div(decimal.NewFromInt(12))
			overtimeCap := proratedBasic.Mul(cfg.BasicPercentageThreshold).Div(hundred)
			if proratedBasic.GreaterThan(monthlyThreshold) && overtimeAmount.GreaterThan(overtimeCap) {
				rate = cfg.RateAboveThreshold
			}
		}
		adj.OvertimeTax = overtimeAmount.Mul(rate).Div(hundred)
	}

	if bonusAmount.IsPositive() {
		if nonResident {
			adj.BonusTax = bonusAmount.Mul(cfg.NonResidentBonusRate).Div(hundred)
			return adj
		}

		annualBasic := proratedBasic.Mul(decimal.NewFromInt(12))
		threshold := annualBasic.Mul(cfg.BonusBasicPercentageThreshold).Div(hundred)

		within := bonusAmount
		excess := decimal.Zero
		if bonusAmount.GreaterThan(threshold) {
			within = threshold
			excess = bonusAmount.Sub(threshold)
		}

		adj.BonusTax = within.Mul(cfg.BonusFlatRate).Div(hundred)
		if excess.IsPositive() {
			if cfg.BonusExcessToPAYE {
				adj.BonusExcessToPAYE = excess
			} else {
				adj.BonusTax = adj.BonusTax.Add(excess.Mul(cfg.BonusFlatRate).Div(hundred))
			}
		}
	}

	return adj
}
