package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ComponentType string

const (
	ComponentEarning              ComponentType = "EARNING"
	ComponentDeduction            ComponentType = "DEDUCTION"
	ComponentEmployerContribution ComponentType = "EMPLOYER_CONTRIBUTION"
)

type CalculationKind string

const (
	CalcFixed          CalculationKind = "FIXED"
	CalcPercentOfBasic CalculationKind = "PERCENT_OF_BASIC"
	CalcFormula        CalculationKind = "FORMULA"
	CalcTaxLookup      CalculationKind = "TAX_LOOKUP"
)

type OverrideTarget string

const (
	TargetGrade      OverrideTarget = "GRADE"
	TargetIndividual OverrideTarget = "INDIVIDUAL"
)

type OverrideKind string

const (
	OverrideFixed   OverrideKind = "FIXED"
	OverridePercent OverrideKind = "PERCENT"
	OverrideNone    OverrideKind = "NONE"
)

// OverrideSource tags where a resolved component entry came from.
// Precedence is a documented total order, highest first:
// SourceIndividual > SourceStructure > SourceGrade. SourceAdHoc entries are
// always additional and never replace a recurring entry.
type OverrideSource string

const (
	SourceIndividual OverrideSource = "INDIVIDUAL"
	SourceStructure  OverrideSource = "STRUCTURE"
	SourceGrade      OverrideSource = "GRADE"
	SourceAdHoc      OverrideSource = "ADHOC"
)

// ReliefMode controls how configured tax reliefs interact with the bracket
// lookup. The upstream rule tables are ambiguous on this point, so it is a
// policy switch instead of a hardcoded behavior.
type ReliefMode string

const (
	ReliefNone            ReliefMode = "NONE"
	ReliefPreTaxDeduction ReliefMode = "PRE_TAX_DEDUCTION"
	ReliefPostTaxCredit   ReliefMode = "POST_TAX_CREDIT"
)

// PayPeriod is an inclusive calendar range. Immutable once computation begins.
type PayPeriod struct {
	Start time.Time
	End   time.Time
}

// TotalDays returns the inclusive day count of the period.
func (p PayPeriod) TotalDays() int {
	return daysBetween(p.Start, p.End) + 1
}

// EmployeeSnapshot is a read-only view of an employee, never mutated by the
// engine.
type EmployeeSnapshot struct {
	ID            uuid.UUID
	DateOfJoining time.Time
	DateOfExit    *time.Time
	GradeID       *uuid.UUID
	NonResident   bool
}

type PayComponent struct {
	Code                 string
	Name                 string
	Type                 ComponentType
	CalculationKind      CalculationKind
	Taxable              bool
	Prorated             bool
	AffectsStatutoryBase bool
	Overtime             bool
	Bonus                bool

	// Configured defaults, used when no override supplies a value.
	DefaultAmount  decimal.Decimal
	DefaultPercent decimal.Decimal
	Formula        string
}

// SalaryRecord is the employee's current basic salary. Exactly one record is
// current per employee at any time.
type SalaryRecord struct {
	EmployeeID  uuid.UUID
	BasicSalary decimal.Decimal
}

type SalaryStructureLine struct {
	ComponentCode string
	Amount        decimal.Decimal
}

type ComponentOverride struct {
	ComponentCode string
	Target        OverrideTarget
	GradeID       *uuid.UUID
	EmployeeID    *uuid.UUID
	Kind          OverrideKind
	Value         decimal.Decimal
}

// AdHocPayment is a one-time amount tied to a specific period. It is never
// prorated regardless of its component's Prorated flag.
type AdHocPayment struct {
	ComponentCode string
	Amount        decimal.Decimal
}

type TaxBracket struct {
	Order           int
	Min             decimal.Decimal
	Max             *decimal.Decimal // nil for the unbounded top bracket
	RatePercent     decimal.Decimal
	CumulativeAtMin decimal.Decimal
}

type TaxPolicy struct {
	Brackets   []TaxBracket
	ReliefMode ReliefMode
	Relief     decimal.Decimal
}

type StatutoryRate struct {
	Tier                int
	EmployeeRatePercent decimal.Decimal
	EmployerRatePercent decimal.Decimal
}

type OvertimeBonusTaxConfig struct {
	AnnualSalaryThreshold         decimal.Decimal
	BasicPercentageThreshold      decimal.Decimal
	RateAboveThreshold            decimal.Decimal
	RateBelowThreshold            decimal.Decimal
	NonResidentOvertimeRate       decimal.Decimal
	BonusBasicPercentageThreshold decimal.Decimal
	BonusFlatRate                 decimal.Decimal
	BonusExcessToPAYE             bool
	NonResidentBonusRate          decimal.Decimal
}

// PayrollPolicyConfig bundles all configuration and per-employee entries
// already filtered to what is effective as of the period start date. It is
// assembled once per run and treated as read-only, which keeps per-employee
// computation free of shared mutable state.
type PayrollPolicyConfig struct {
	BasicComponentCode string
	Components         []PayComponent

	SalaryRecords  map[uuid.UUID]SalaryRecord
	StructureLines map[uuid.UUID][]SalaryStructureLine
	Overrides      []ComponentOverride
	AdHocPayments  map[uuid.UUID][]AdHocPayment

	Tax            TaxPolicy
	StatutoryRates []StatutoryRate
	OvertimeBonus  *OvertimeBonusTaxConfig
}

// Component looks up a configured component by code.
func (c PayrollPolicyConfig) Component(code string) (PayComponent, bool) {
	for _, pc := range c.Components {
		if pc.Code == code {
			return pc, true
		}
	}
	return PayComponent{}, false
}

type ComponentDetail struct {
	ComponentCode string          `json:"component_code"`
	Type          ComponentType   `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Taxable       bool            `json:"is_taxable"`
	Source        OverrideSource  `json:"source"`
	Prorated      bool            `json:"is_prorated"`
}

type PayrollComputationResult struct {
	Success           bool              `json:"success"`
	EmployeeID        uuid.UUID         `json:"employee_id"`
	BasicSalary       decimal.Decimal   `json:"basic_salary"`
	ProrationFactor   decimal.Decimal   `json:"proration_factor"`
	DaysPayable       int               `json:"days_payable"`
	TotalDays         int               `json:"total_days"`
	Gross             decimal.Decimal   `json:"gross"`
	PAYE              decimal.Decimal   `json:"paye"`
	StatutoryEmployee decimal.Decimal   `json:"statutory_employee"`
	StatutoryEmployer decimal.Decimal   `json:"statutory_employer"`
	NetPay            decimal.Decimal   `json:"net_pay"`
	Error             string            `json:"error,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
	Details           []ComponentDetail `json:"details"`
}
