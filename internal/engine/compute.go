package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrMissingBasicComponent = errors.New("basic-pay component is not configured")

// Compute derives one employee's payroll for the period from the supplied
// policy. It is a pure function: same snapshot, period, and policy always
// produce an identical result, and nothing outside the return value is
// touched. Per-employee fatal conditions yield Success=false with a zeroed
// result; data anomalies are clamped and reported as warnings instead.
func Compute(emp EmployeeSnapshot, period PayPeriod, policy PayrollPolicyConfig) PayrollComputationResult {
	pro := Prorate(emp, period)
	warnings := append([]string(nil), pro.Warnings...)

	basicComp, ok := policy.Component(policy.BasicComponentCode)
	if !ok {
		return failed(emp, pro, warnings, fmt.Errorf("%w: %q", ErrMissingBasicComponent, policy.BasicComponentCode))
	}

	resolved, rawBasic, err := ResolveComponents(emp, policy)
	if err != nil {
		return failed(emp, pro, warnings, err)
	}

	basic := rawBasic
	if basicComp.Prorated {
		basic = basic.Mul(pro.Factor)
	}
	basic, warnings = clampRound(basic, basicComp.Code, warnings)

	details := make([]ComponentDetail, 0, len(resolved)+3)
	details = append(details, ComponentDetail{
		ComponentCode: basicComp.Code,
		Type:          basicComp.Type,
		Amount:        basic,
		Taxable:       basicComp.Taxable,
		Source:        SourceStructure,
		Prorated:      basicComp.Prorated,
	})

	for _, rc := range resolved {
		amount := rc.Amount
		prorated := rc.Component.Prorated && rc.Source != SourceAdHoc
		if prorated {
			amount = amount.Mul(pro.Factor)
		}
		amount, warnings = clampRound(amount, rc.Component.Code, warnings)
		details = append(details, ComponentDetail{
			ComponentCode: rc.Component.Code,
			Type:          rc.Component.Type,
			Amount:        amount,
			Taxable:       rc.Component.Taxable,
			Source:        rc.Source,
			Prorated:      prorated,
		})
	}

	gross := decimal.Zero
	deductions := decimal.Zero
	taxable := decimal.Zero
	statBase := decimal.Zero
	overtime := decimal.Zero
	bonus := decimal.Zero

	separateOvertimeBonus := policy.OvertimeBonus != nil

	for _, d := range details {
		comp, _ := policy.Component(d.ComponentCode)
		switch d.Type {
		case ComponentEarning:
			gross = gross.Add(d.Amount)
			isOvertimeOrBonus := comp.Overtime || comp.Bonus
			if comp.Overtime {
				overtime = overtime.Add(d.Amount)
			}
			if comp.Bonus {
				bonus = bonus.Add(d.Amount)
			}
			// Overtime and bonus earnings are taxed separately when the
			// flat-rate treatment is configured, never twice.
			if d.Taxable && !(separateOvertimeBonus && isOvertimeOrBonus) {
				taxable = taxable.Add(d.Amount)
			}
		case ComponentDeduction:
			deductions = deductions.Add(d.Amount)
		}
		if comp.AffectsStatutoryBase {
			statBase = statBase.Add(d.Amount)
		}
	}

	if separateOvertimeBonus && (overtime.IsPositive() || bonus.IsPositive()) {
		adj := AdjustOvertimeBonus(*policy.OvertimeBonus, emp.NonResident, basic, overtime, bonus)
		taxable = taxable.Add(adj.BonusExcessToPAYE)
		if adj.OvertimeTax.IsPositive() {
			amount := adj.OvertimeTax.Round(2)
			deductions = deductions.Add(amount)
			details = append(details, ComponentDetail{
				ComponentCode: OvertimeTaxCode,
				Type:          ComponentDeduction,
				Amount:        amount,
				Source:        SourceStructure,
			})
		}
		if adj.BonusTax.IsPositive() {
			amount := adj.BonusTax.Round(2)
			deductions = deductions.Add(amount)
			details = append(details, ComponentDetail{
				ComponentCode: BonusTaxCode,
				Type:          ComponentDeduction,
				Amount:        amount,
				Source:        SourceStructure,
			})
		}
	}

	paye, err := ComputeTax(taxable, policy.Tax)
	if err != nil {
		return failed(emp, pro, warnings, err)
	}
	paye = paye.Round(2)

	statutory, err := ComputeStatutory(statBase, policy.StatutoryRates)
	if err != nil {
		return failed(emp, pro, warnings, err)
	}
	statutoryEmployee := statutory.Employee.Round(2)
	statutoryEmployer := statutory.Employer.Round(2)

	// A configured TAX_LOOKUP component becomes the PAYE line on the slip.
	// Its amount is already accounted for via the paye field, so it is not
	// added to the deduction total.
	for _, comp := range policy.Components {
		if comp.CalculationKind == CalcTaxLookup {
			details = append(details, ComponentDetail{
				ComponentCode: comp.Code,
				Type:          comp.Type,
				Amount:        paye,
				Source:        SourceStructure,
			})
			break
		}
	}

	return PayrollComputationResult{
		Success:           true,
		EmployeeID:        emp.ID,
		BasicSalary:       basic,
		ProrationFactor:   pro.Factor,
		DaysPayable:       pro.DaysPayable,
		TotalDays:         pro.TotalDays,
		Gross:             gross,
		PAYE:              paye,
		StatutoryEmployee: statutoryEmployee,
		StatutoryEmployer: statutoryEmployer,
		NetPay:            gross.Sub(deductions).Sub(paye).Sub(statutoryEmployee),
		Warnings:          warnings,
		Details:           details,
	}
}

// clampRound rounds a final amount to two decimal places and clamps negative
// results to zero with a recorded warning. Negative amounts are never
// silently dropped.
func clampRound(amount decimal.Decimal, code string, warnings []string) (decimal.Decimal, []string) {
	amount = amount.Round(2)
	if amount.IsNegative() {
		warnings = append(warnings, fmt.Sprintf("component %s computed negative amount %s, clamped to zero", code, amount))
		return decimal.Zero, warnings
	}
	return amount, warnings
}

func failed(emp EmployeeSnapshot, pro Proration, warnings []string, err error) PayrollComputationResult {
	return PayrollComputationResult{
		Success:           false,
		EmployeeID:        emp.ID,
		BasicSalary:       decimal.Zero,
		ProrationFactor:   pro.Factor,
		DaysPayable:       pro.DaysPayable,
		TotalDays:         pro.TotalDays,
		Gross:             decimal.Zero,
		PAYE:              decimal.Zero,
		StatutoryEmployee: decimal.Zero,
		StatutoryEmployer: decimal.Zero,
		NetPay:            decimal.Zero,
		Error:             err.Error(),
		Warnings:          warnings,
	}
}
