package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ekowhinson/HRMS-sub004/internal/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func fullPolicy(employeeID uuid.UUID) engine.PayrollPolicyConfig {
	return engine.PayrollPolicyConfig{
		BasicComponentCode: "BASIC",
		Components: []engine.PayComponent{
			{Code: "BASIC", Type: engine.ComponentEarning, CalculationKind: engine.CalcFixed, Taxable: true, Prorated: true, AffectsStatutoryBase: true},
			{Code: "HOUSING", Type: engine.ComponentEarning, CalculationKind: engine.CalcPercentOfBasic, Taxable: true, Prorated: true, DefaultPercent: dec("10")},
			{Code: "TRANSPORT", Type: engine.ComponentEarning, CalculationKind: engine.CalcFixed, Taxable: true, Prorated: false, DefaultAmount: dec("300")},
			{Code: "OVERTIME", Type: engine.ComponentEarning, CalculationKind: engine.CalcFixed, Taxable: true, Overtime: true},
			{Code: "BONUS", Type: engine.ComponentEarning, CalculationKind: engine.CalcFixed, Taxable: true, Bonus: true},
			{Code: "UNION_DUES", Type: engine.ComponentDeduction, CalculationKind: engine.CalcFixed, DefaultAmount: dec("50")},
			{Code: "PAYE", Type: engine.ComponentDeduction, CalculationKind: engine.CalcTaxLookup},
		},
		SalaryRecords: map[uuid.UUID]engine.SalaryRecord{
			employeeID: {EmployeeID: employeeID, BasicSalary: dec("5000")},
		},
		StructureLines: map[uuid.UUID][]engine.SalaryStructureLine{
			employeeID: {
				{ComponentCode: "TRANSPORT", Amount: dec("300")},
				{ComponentCode: "UNION_DUES", Amount: dec("50")},
			},
		},
		Overrides: []engine.ComponentOverride{
			{ComponentCode: "HOUSING", Target: engine.TargetIndividual, EmployeeID: &employeeID, Kind: engine.OverrideNone},
		},
		AdHocPayments: map[uuid.UUID][]engine.AdHocPayment{},
		Tax: engine.TaxPolicy{
			Brackets:   sampleBrackets(),
			ReliefMode: engine.ReliefNone,
		},
		StatutoryRates: []engine.StatutoryRate{
			{Tier: 1, EmployeeRatePercent: dec("5.5"), EmployerRatePercent: dec("13")},
		},
	}
}

func januaryPeriod() engine.PayPeriod {
	return engine.PayPeriod{Start: date(2026, time.January, 1), End: date(2026, time.January, 31)}
}

func TestCompute_FullPeriod(t *testing.T) {
	emp := snapshot(date(2020, time.March, 1), nil)
	policy := fullPolicy(emp.ID)

	result := engine.Compute(emp, januaryPeriod(), policy)

	assert.True(t, result.Success, "error: %s", result.Error)
	assert.True(t, result.ProrationFactor.Equal(dec("1")))
	assert.True(t, result.BasicSalary.Equal(dec("5000")))
	// 5000 + 500 housing + 300 transport
	assert.True(t, result.Gross.Equal(dec("5800")), "gross %s", result.Gross)
	// 18.5 + (5800-600)*10%
	assert.True(t, result.PAYE.Equal(dec("538.5")), "paye %s", result.PAYE)
	assert.True(t, result.StatutoryEmployee.Equal(dec("275")), "statutory %s", result.StatutoryEmployee)
	assert.True(t, result.StatutoryEmployer.Equal(dec("650")))
	// 5800 - 50 dues - 538.5 paye - 275 statutory
	assert.True(t, result.NetPay.Equal(dec("4936.5")), "net %s", result.NetPay)
	assert.Empty(t, result.Warnings)

	codes := make([]string, 0, len(result.Details))
	for _, d := range result.Details {
		codes = append(codes, d.ComponentCode)
	}
	assert.Equal(t, []string{"BASIC", "HOUSING", "TRANSPORT", "UNION_DUES", "PAYE"}, codes)
}

func TestCompute_MidMonthJoinerProration(t *testing.T) {
	emp := snapshot(date(2026, time.January, 15), nil)
	policy := fullPolicy(emp.ID)

	result := engine.Compute(emp, januaryPeriod(), policy)

	assert.True(t, result.Success)
	assert.Equal(t, 17, result.DaysPayable)
	assert.True(t, result.BasicSalary.Equal(dec("2741.94")), "basic %s", result.BasicSalary)

	for _, d := range result.Details {
		switch d.ComponentCode {
		case "HOUSING":
			assert.True(t, d.Amount.Equal(dec("274.19")), "housing %s", d.Amount)
			assert.True(t, d.Prorated)
		case "TRANSPORT":
			// is_prorated=false keeps the full configured amount
			assert.True(t, d.Amount.Equal(dec("300")))
			assert.False(t, d.Prorated)
		}
	}
}

func TestCompute_AdHocPaymentNeverProrated(t *testing.T) {
	emp := snapshot(date(2026, time.January, 15), nil)
	policy := fullPolicy(emp.ID)
	// HOUSING is prorated by configuration, but ad-hoc entries are exempt.
	policy.AdHocPayments[emp.ID] = []engine.AdHocPayment{
		{ComponentCode: "HOUSING", Amount: dec("1000")},
	}

	result := engine.Compute(emp, januaryPeriod(), policy)

	assert.True(t, result.Success)
	var adhoc *engine.ComponentDetail
	for i := range result.Details {
		if result.Details[i].Source == engine.SourceAdHoc {
			adhoc = &result.Details[i]
		}
	}
	if assert.NotNil(t, adhoc) {
		assert.True(t, adhoc.Amount.Equal(dec("1000")), "adhoc %s", adhoc.Amount)
		assert.False(t, adhoc.Prorated)
	}
}

func TestCompute_OvertimeAndBonusTaxedSeparately(t *testing.T) {
	emp := snapshot(date(2020, time.March, 1), nil)
	policy := fullPolicy(emp.ID)
	cfg := otConfig()
	policy.OvertimeBonus = &cfg
	policy.Overrides = append(policy.Overrides,
		engine.ComponentOverride{ComponentCode: "OVERTIME", Target: engine.TargetIndividual, EmployeeID: &emp.ID, Kind: engine.OverrideFixed, Value: dec("400")},
		engine.ComponentOverride{ComponentCode: "BONUS", Target: engine.TargetIndividual, EmployeeID: &emp.ID, Kind: engine.OverrideFixed, Value: dec("1000")},
	)

	result := engine.Compute(emp, januaryPeriod(), policy)

	assert.True(t, result.Success, "error: %s", result.Error)
	assert.True(t, result.Gross.Equal(dec("7200")), "gross %s", result.Gross)
	// Ordinary PAYE unchanged: overtime and bonus stay out of taxable income.
	assert.True(t, result.PAYE.Equal(dec("538.5")), "paye %s", result.PAYE)

	amounts := map[string]string{}
	for _, d := range result.Details {
		amounts[d.ComponentCode] = d.Amount.String()
	}
	assert.Equal(t, "20", amounts[engine.OvertimeTaxCode])
	assert.Equal(t, "50", amounts[engine.BonusTaxCode])

	// 7200 - 50 dues - 20 - 50 - 538.5 - 275
	assert.True(t, result.NetPay.Equal(dec("6266.5")), "net %s", result.NetPay)
}

func TestCompute_BonusExcessFoldedIntoPAYE(t *testing.T) {
	emp := snapshot(date(2020, time.March, 1), nil)
	policy := fullPolicy(emp.ID)
	cfg := otConfig()
	cfg.BonusExcessToPAYE = true
	policy.OvertimeBonus = &cfg
	policy.Overrides = append(policy.Overrides,
		engine.ComponentOverride{ComponentCode: "BONUS", Target: engine.TargetIndividual, EmployeeID: &emp.ID, Kind: engine.OverrideFixed, Value: dec("10000")},
	)

	result := engine.Compute(emp, januaryPeriod(), policy)

	assert.True(t, result.Success)
	// threshold = 15% of annualized basic (60000) = 9000; 1000 excess joins
	// ordinary taxable income: 18.5 + (5800+1000-600)*10% = 638.5
	assert.True(t, result.PAYE.Equal(dec("638.5")), "paye %s", result.PAYE)
}

func TestCompute_Deterministic(t *testing.T) {
	emp := snapshot(date(2026, time.January, 10), nil)
	policy := fullPolicy(emp.ID)
	period := januaryPeriod()

	first := engine.Compute(emp, period, policy)
	second := engine.Compute(emp, period, policy)

	a, err := json.Marshal(first)
	assert.NoError(t, err)
	b, err := json.Marshal(second)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_NegativeAmountClampedWithWarning(t *testing.T) {
	emp := snapshot(date(2020, time.March, 1), nil)
	policy := fullPolicy(emp.ID)
	policy.Overrides = append(policy.Overrides, engine.ComponentOverride{
		ComponentCode: "TRANSPORT", Target: engine.TargetIndividual, EmployeeID: &emp.ID,
		Kind: engine.OverrideFixed, Value: dec("-120"),
	})

	result := engine.Compute(emp, januaryPeriod(), policy)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Warnings)
	for _, d := range result.Details {
		if d.ComponentCode == "TRANSPORT" {
			assert.True(t, d.Amount.IsZero())
		}
	}
}

func TestCompute_FatalConditions(t *testing.T) {
	period := januaryPeriod()

	t.Run("missing basic component configuration", func(t *testing.T) {
		emp := snapshot(date(2020, time.March, 1), nil)
		policy := fullPolicy(emp.ID)
		policy.BasicComponentCode = "MISSING"

		result := engine.Compute(emp, period, policy)
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
		assert.True(t, result.NetPay.IsZero())
	})

	t.Run("missing salary record", func(t *testing.T) {
		emp := snapshot(date(2020, time.March, 1), nil)
		policy := fullPolicy(uuid.New())

		result := engine.Compute(emp, period, policy)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "basic pay")
	})

	t.Run("formula failure", func(t *testing.T) {
		emp := snapshot(date(2020, time.March, 1), nil)
		policy := fullPolicy(emp.ID)
		policy.Components = append(policy.Components, engine.PayComponent{
			Code: "BROKEN", Type: engine.ComponentEarning, CalculationKind: engine.CalcFormula, Formula: "basic/0",
		})
		policy.Overrides = append(policy.Overrides, engine.ComponentOverride{
			ComponentCode: "BROKEN", Target: engine.TargetIndividual, EmployeeID: &emp.ID, Kind: engine.OverrideNone,
		})

		result := engine.Compute(emp, period, policy)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "division by zero")
	})

	t.Run("missing statutory rates", func(t *testing.T) {
		emp := snapshot(date(2020, time.March, 1), nil)
		policy := fullPolicy(emp.ID)
		policy.StatutoryRates = nil

		result := engine.Compute(emp, period, policy)
		assert.False(t, result.Success)
	})

	t.Run("clamp warnings survive a later fatal", func(t *testing.T) {
		emp := snapshot(date(2020, time.March, 1), nil)
		policy := fullPolicy(emp.ID)
		policy.Overrides = append(policy.Overrides, engine.ComponentOverride{
			ComponentCode: "TRANSPORT", Target: engine.TargetIndividual, EmployeeID: &emp.ID,
			Kind: engine.OverrideFixed, Value: dec("-120"),
		})
		policy.StatutoryRates = nil

		result := engine.Compute(emp, period, policy)
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
		assert.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "clamped to zero")
	})
}

func TestPolicyValidate(t *testing.T) {
	policy := fullPolicy(uuid.New())
	assert.NoError(t, policy.Validate())

	t.Run("bracket gap fails the run", func(t *testing.T) {
		p := fullPolicy(uuid.New())
		b := sampleBrackets()
		b[1].Min = dec("500")
		p.Tax.Brackets = b
		assert.ErrorIs(t, p.Validate(), engine.ErrBracketGap)
	})

	t.Run("missing statutory rates fail the run", func(t *testing.T) {
		p := fullPolicy(uuid.New())
		p.StatutoryRates = nil
		assert.ErrorIs(t, p.Validate(), engine.ErrNoStatutoryRates)
	})
}
