package engine_test

import (
	"testing"

	"github.com/ekowhinson/HRMS-sub004/internal/engine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func basePolicy(employeeID uuid.UUID) engine.PayrollPolicyConfig {
	return engine.PayrollPolicyConfig{
		BasicComponentCode: "BASIC",
		Components: []engine.PayComponent{
			{Code: "BASIC", Type: engine.ComponentEarning, CalculationKind: engine.CalcFixed, Taxable: true, Prorated: true, AffectsStatutoryBase: true},
			{Code: "HOUSING", Type: engine.ComponentEarning, CalculationKind: engine.CalcPercentOfBasic, Taxable: true, Prorated: true, DefaultPercent: dec("10")},
			{Code: "TRANSPORT", Type: engine.ComponentEarning, CalculationKind: engine.CalcFixed, Taxable: true, Prorated: true, DefaultAmount: dec("300")},
			{Code: "OVERTIME", Type: engine.ComponentEarning, CalculationKind: engine.CalcFormula, Taxable: true, Overtime: true, Formula: "basic/176*1.5"},
			{Code: "UNION_DUES", Type: engine.ComponentDeduction, CalculationKind: engine.CalcFixed, DefaultAmount: dec("50")},
		},
		SalaryRecords: map[uuid.UUID]engine.SalaryRecord{
			employeeID: {EmployeeID: employeeID, BasicSalary: dec("5000")},
		},
		StructureLines: map[uuid.UUID][]engine.SalaryStructureLine{},
		AdHocPayments:  map[uuid.UUID][]engine.AdHocPayment{},
	}
}

func TestResolveComponents_PrecedenceIndividualOverStructureOverGrade(t *testing.T) {
	gradeID := uuid.New()
	emp := engine.EmployeeSnapshot{ID: uuid.New(), GradeID: &gradeID}
	policy := basePolicy(emp.ID)

	policy.Overrides = []engine.ComponentOverride{
		{ComponentCode: "TRANSPORT", Target: engine.TargetGrade, GradeID: &gradeID, Kind: engine.OverrideFixed, Value: dec("100")},
		{ComponentCode: "TRANSPORT", Target: engine.TargetIndividual, EmployeeID: &emp.ID, Kind: engine.OverrideFixed, Value: dec("400")},
	}
	policy.StructureLines[emp.ID] = []engine.SalaryStructureLine{
		{ComponentCode: "TRANSPORT", Amount: dec("250")},
	}

	resolved, basic, err := engine.ResolveComponents(emp, policy)
	assert.NoError(t, err)
	assert.True(t, basic.Equal(dec("5000")))
	assert.Len(t, resolved, 1)
	assert.Equal(t, "TRANSPORT", resolved[0].Component.Code)
	assert.Equal(t, engine.SourceIndividual, resolved[0].Source)
	assert.True(t, resolved[0].Amount.Equal(dec("400")))
}

func TestResolveComponents_StructureBeatsGrade(t *testing.T) {
	gradeID := uuid.New()
	emp := engine.EmployeeSnapshot{ID: uuid.New(), GradeID: &gradeID}
	policy := basePolicy(emp.ID)

	policy.Overrides = []engine.ComponentOverride{
		{ComponentCode: "TRANSPORT", Target: engine.TargetGrade, GradeID: &gradeID, Kind: engine.OverrideFixed, Value: dec("100")},
	}
	policy.StructureLines[emp.ID] = []engine.SalaryStructureLine{
		{ComponentCode: "TRANSPORT", Amount: dec("250")},
	}

	resolved, _, err := engine.ResolveComponents(emp, policy)
	assert.NoError(t, err)
	assert.Len(t, resolved, 1)
	assert.Equal(t, engine.SourceStructure, resolved[0].Source)
	assert.True(t, resolved[0].Amount.Equal(dec("250")))
}

func TestResolveComponents_GradeOverrideAppliesDefaults(t *testing.T) {
	gradeID := uuid.New()
	emp := engine.EmployeeSnapshot{ID: uuid.New(), GradeID: &gradeID}
	policy := basePolicy(emp.ID)

	// Kind NONE marks the component applicable for the grade; amount comes
	// from the configured calculation (10% of basic).
	policy.Overrides = []engine.ComponentOverride{
		{ComponentCode: "HOUSING", Target: engine.TargetGrade, GradeID: &gradeID, Kind: engine.OverrideNone},
	}

	resolved, _, err := engine.ResolveComponents(emp, policy)
	assert.NoError(t, err)
	assert.Len(t, resolved, 1)
	assert.Equal(t, engine.SourceGrade, resolved[0].Source)
	assert.True(t, resolved[0].Amount.Equal(dec("500")))
}

func TestResolveComponents_PercentOverride(t *testing.T) {
	emp := engine.EmployeeSnapshot{ID: uuid.New()}
	policy := basePolicy(emp.ID)

	policy.Overrides = []engine.ComponentOverride{
		{ComponentCode: "HOUSING", Target: engine.TargetIndividual, EmployeeID: &emp.ID, Kind: engine.OverridePercent, Value: dec("15")},
	}

	resolved, _, err := engine.ResolveComponents(emp, policy)
	assert.NoError(t, err)
	assert.True(t, resolved[0].Amount.Equal(dec("750")))
}

func TestResolveComponents_FormulaReferencesResolvedComponents(t *testing.T) {
	emp := engine.EmployeeSnapshot{ID: uuid.New()}
	policy := basePolicy(emp.ID)

	policy.Overrides = []engine.ComponentOverride{
		{ComponentCode: "OVERTIME", Target: engine.TargetIndividual, EmployeeID: &emp.ID, Kind: engine.OverrideNone},
	}

	resolved, _, err := engine.ResolveComponents(emp, policy)
	assert.NoError(t, err)
	assert.Len(t, resolved, 1)
	// 5000/176*1.5
	assert.True(t, resolved[0].Amount.Equal(dec("5000").Div(dec("176")).Mul(dec("1.5"))),
		"got %s", resolved[0].Amount)
}

func TestResolveComponents_AdHocAlwaysAdditional(t *testing.T) {
	emp := engine.EmployeeSnapshot{ID: uuid.New()}
	policy := basePolicy(emp.ID)

	policy.StructureLines[emp.ID] = []engine.SalaryStructureLine{
		{ComponentCode: "TRANSPORT", Amount: dec("250")},
	}
	policy.AdHocPayments[emp.ID] = []engine.AdHocPayment{
		{ComponentCode: "TRANSPORT", Amount: dec("120")},
	}

	resolved, _, err := engine.ResolveComponents(emp, policy)
	assert.NoError(t, err)
	assert.Len(t, resolved, 2)
	assert.Equal(t, engine.SourceStructure, resolved[0].Source)
	assert.Equal(t, engine.SourceAdHoc, resolved[1].Source)
	assert.True(t, resolved[1].Amount.Equal(dec("120")))
}

func TestResolveComponents_MissingSalaryRecord(t *testing.T) {
	emp := engine.EmployeeSnapshot{ID: uuid.New()}
	policy := basePolicy(uuid.New()) // record for a different employee

	_, _, err := engine.ResolveComponents(emp, policy)
	assert.ErrorIs(t, err, engine.ErrNoBasicPay)
}

func TestResolveComponents_UnknownComponentCode(t *testing.T) {
	emp := engine.EmployeeSnapshot{ID: uuid.New()}
	policy := basePolicy(emp.ID)

	policy.StructureLines[emp.ID] = []engine.SalaryStructureLine{
		{ComponentCode: "NOT_CONFIGURED", Amount: dec("10")},
	}

	_, _, err := engine.ResolveComponents(emp, policy)
	assert.ErrorIs(t, err, engine.ErrUnknownComponent)
}

func TestResolveComponents_GradeOverrideForOtherGradeIgnored(t *testing.T) {
	gradeID := uuid.New()
	otherGrade := uuid.New()
	emp := engine.EmployeeSnapshot{ID: uuid.New(), GradeID: &gradeID}
	policy := basePolicy(emp.ID)

	policy.Overrides = []engine.ComponentOverride{
		{ComponentCode: "TRANSPORT", Target: engine.TargetGrade, GradeID: &otherGrade, Kind: engine.OverrideFixed, Value: dec("999")},
	}

	resolved, _, err := engine.ResolveComponents(emp, policy)
	assert.NoError(t, err)
	assert.Empty(t, resolved)
}
