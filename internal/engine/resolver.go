package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNoBasicPay       = errors.New("no basic pay configuration for employee")
	ErrUnknownComponent = errors.New("entry references unknown component")
)

// ResolvedComponent is one pay-component entry with its raw (pre-proration)
// amount and the source that won precedence for it.
type ResolvedComponent struct {
	Component PayComponent
	Amount    decimal.Decimal
	Source    OverrideSource
}

// ResolveComponents merges the four entry sources (grade overrides, individual
// overrides, salary-structure lines, ad-hoc payments) into one ordered,
// de-duplicated component list for the employee. Per component code the
// highest-precedence source wins outright, no summation across sources:
// individual > structure > grade. Ad-hoc payments are additional entries and
// are appended after all recurring ones.
//
// Amounts are raw: proration is the orchestrator's job. TAX_LOOKUP components
// resolve to zero here; the tax engine fills them in later.
func ResolveComponents(emp EmployeeSnapshot, policy PayrollPolicyConfig) ([]ResolvedComponent, decimal.Decimal, error) {
	record, ok := policy.SalaryRecords[emp.ID]
	if !ok {
		return nil, decimal.Zero, ErrNoBasicPay
	}
	basic := record.BasicSalary

	type entry struct {
		source OverrideSource
		kind   OverrideKind
		value  decimal.Decimal
	}
	winners := map[string]entry{}

	apply := func(code string, e entry) {
		if cur, ok := winners[code]; ok && sourceRank(cur.source) >= sourceRank(e.source) {
			return
		}
		winners[code] = e
	}

	for _, ov := range policy.Overrides {
		switch ov.Target {
		case TargetGrade:
			if emp.GradeID != nil && ov.GradeID != nil && *emp.GradeID == *ov.GradeID {
				apply(ov.ComponentCode, entry{source: SourceGrade, kind: ov.Kind, value: ov.Value})
			}
		case TargetIndividual:
			if ov.EmployeeID != nil && *ov.EmployeeID == emp.ID {
				apply(ov.ComponentCode, entry{source: SourceIndividual, kind: ov.Kind, value: ov.Value})
			}
		}
	}
	for _, line := range policy.StructureLines[emp.ID] {
		apply(line.ComponentCode, entry{source: SourceStructure, kind: OverrideFixed, value: line.Amount})
	}

	// Resolution walks the configured component order so that FORMULA entries
	// may only reference components resolved before them. That keeps the
	// evaluation order deterministic and the dependency direction explicit.
	symbols := map[string]decimal.Decimal{"basic": basic}
	resolved := make([]ResolvedComponent, 0, len(winners)+len(policy.AdHocPayments[emp.ID]))

	for _, comp := range policy.Components {
		if comp.Code == policy.BasicComponentCode {
			continue
		}
		if comp.CalculationKind == CalcTaxLookup {
			// Tax placeholders are emitted by the orchestrator once the tax
			// engine has run; an override cannot make one resolvable here.
			delete(winners, comp.Code)
			continue
		}
		win, ok := winners[comp.Code]
		if !ok {
			continue
		}
		amount, err := resolveAmount(comp, win.source, win.kind, win.value, basic, symbols)
		if err != nil {
			return nil, decimal.Zero, err
		}
		symbols[strings.ToLower(comp.Code)] = amount
		resolved = append(resolved, ResolvedComponent{Component: comp, Amount: amount, Source: win.source})
		delete(winners, comp.Code)
	}

	for code := range winners {
		if code != policy.BasicComponentCode {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownComponent, code)
		}
	}

	for _, adhoc := range policy.AdHocPayments[emp.ID] {
		comp, ok := policy.Component(adhoc.ComponentCode)
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownComponent, adhoc.ComponentCode)
		}
		resolved = append(resolved, ResolvedComponent{Component: comp, Amount: adhoc.Amount, Source: SourceAdHoc})
	}

	return resolved, basic, nil
}

func resolveAmount(
	comp PayComponent,
	source OverrideSource,
	kind OverrideKind,
	value decimal.Decimal,
	basic decimal.Decimal,
	symbols map[string]decimal.Decimal,
) (decimal.Decimal, error) {
	// Salary-structure lines always carry a literal amount.
	if source == SourceStructure {
		return value, nil
	}

	switch kind {
	case OverrideFixed:
		return value, nil
	case OverridePercent:
		return basic.Mul(value).Div(decimal.NewFromInt(100)), nil
	}

	// OverrideKind NONE: the entry only marks the component as applicable;
	// fall back to the configured calculation.
	switch comp.CalculationKind {
	case CalcFixed:
		return comp.DefaultAmount, nil
	case CalcPercentOfBasic:
		return basic.Mul(comp.DefaultPercent).Div(decimal.NewFromInt(100)), nil
	case CalcFormula:
		return EvalFormula(comp.Formula, symbols)
	default:
		return decimal.Zero, fmt.Errorf("component %s: unsupported calculation kind %q", comp.Code, comp.CalculationKind)
	}
}

func sourceRank(s OverrideSource) int {
	switch s {
	case SourceIndividual:
		return 3
	case SourceStructure:
		return 2
	case SourceGrade:
		return 1
	default:
		return 0
	}
}
