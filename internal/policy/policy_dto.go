package policy

import "github.com/shopspring/decimal"

type CreateComponentRequest struct {
	Code                 string          `json:"code" binding:"required,max=40"`
	Name                 string          `json:"name" binding:"required,max=120"`
	Type                 string          `json:"type" binding:"required,oneof=EARNING DEDUCTION EMPLOYER_CONTRIBUTION"`
	CalculationKind      string          `json:"calculation_kind" binding:"required,oneof=FIXED PERCENT_OF_BASIC FORMULA TAX_LOOKUP"`
	IsBasic              bool            `json:"is_basic"`
	IsTaxable            bool            `json:"is_taxable"`
	IsProrated           bool            `json:"is_prorated"`
	AffectsStatutoryBase bool            `json:"affects_statutory_base"`
	IsOvertime           bool            `json:"is_overtime"`
	IsBonus              bool            `json:"is_bonus"`
	DefaultAmount        decimal.Decimal `json:"default_amount"`
	DefaultPercent       decimal.Decimal `json:"default_percent"`
	Formula              string          `json:"formula"`
	SortOrder            int             `json:"sort_order"`
	EffectiveFrom        string          `json:"effective_from" binding:"required,datetime=2006-01-02"`
}

type ComponentResponse struct {
	ID                   string          `json:"id"`
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Type                 string          `json:"type"`
	CalculationKind      string          `json:"calculation_kind"`
	IsBasic              bool            `json:"is_basic"`
	IsTaxable            bool            `json:"is_taxable"`
	IsProrated           bool            `json:"is_prorated"`
	AffectsStatutoryBase bool            `json:"affects_statutory_base"`
	IsOvertime           bool            `json:"is_overtime"`
	IsBonus              bool            `json:"is_bonus"`
	DefaultAmount        decimal.Decimal `json:"default_amount"`
	DefaultPercent       decimal.Decimal `json:"default_percent"`
	Formula              string          `json:"formula,omitempty"`
	SortOrder            int             `json:"sort_order"`
	EffectiveFrom        string          `json:"effective_from"`
}

type StructureLineInput struct {
	ComponentCode string          `json:"component_code" binding:"required,max=40"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

type CreateSalaryRecordRequest struct {
	EmployeeID    string               `json:"employee_id" binding:"required,uuid"`
	BasicSalary   decimal.Decimal      `json:"basic_salary" binding:"required"`
	EffectiveDate string               `json:"effective_date" binding:"required,datetime=2006-01-02"`
	Lines         []StructureLineInput `json:"lines" binding:"dive"`
}

type SalaryRecordResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	BasicSalary   decimal.Decimal `json:"basic_salary"`
	EffectiveDate string          `json:"effective_date"`
}

type CreateOverrideRequest struct {
	ComponentCode string          `json:"component_code" binding:"required,max=40"`
	Target        string          `json:"target" binding:"required,oneof=GRADE INDIVIDUAL"`
	GradeID       *string         `json:"grade_id" binding:"omitempty,uuid"`
	EmployeeID    *string         `json:"employee_id" binding:"omitempty,uuid"`
	OverrideKind  string          `json:"override_kind" binding:"required,oneof=FIXED PERCENT NONE"`
	Value         decimal.Decimal `json:"value"`
	EffectiveFrom string          `json:"effective_from" binding:"required,datetime=2006-01-02"`
}

type OverrideResponse struct {
	ID            string          `json:"id"`
	ComponentCode string          `json:"component_code"`
	Target        string          `json:"target"`
	GradeID       *string         `json:"grade_id,omitempty"`
	EmployeeID    *string         `json:"employee_id,omitempty"`
	OverrideKind  string          `json:"override_kind"`
	Value         decimal.Decimal `json:"value"`
	EffectiveFrom string          `json:"effective_from"`
}

type CreateAdHocPaymentRequest struct {
	EmployeeID    string          `json:"employee_id" binding:"required,uuid"`
	ComponentCode string          `json:"component_code" binding:"required,max=40"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PeriodStart   string          `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd     string          `json:"period_end" binding:"required,datetime=2006-01-02"`
	Reason        *string         `json:"reason"`
}

type AdHocPaymentResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	ComponentCode string          `json:"component_code"`
	Amount        decimal.Decimal `json:"amount"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	Reason        *string         `json:"reason,omitempty"`
}

type TaxBracketInput struct {
	MinAmount       decimal.Decimal  `json:"min_amount"`
	MaxAmount       *decimal.Decimal `json:"max_amount"`
	RatePercent     decimal.Decimal  `json:"rate_percent"`
	CumulativeAtMin decimal.Decimal  `json:"cumulative_at_min"`
}

// SetTaxBracketsRequest replaces the effective bracket table wholesale; the
// engine validates contiguity before anything is persisted.
type SetTaxBracketsRequest struct {
	EffectiveFrom string            `json:"effective_from" binding:"required,datetime=2006-01-02"`
	Brackets      []TaxBracketInput `json:"brackets" binding:"required,min=1,dive"`
}

type TaxBracketResponse struct {
	Order           int              `json:"order"`
	MinAmount       decimal.Decimal  `json:"min_amount"`
	MaxAmount       *decimal.Decimal `json:"max_amount,omitempty"`
	RatePercent     decimal.Decimal  `json:"rate_percent"`
	CumulativeAtMin decimal.Decimal  `json:"cumulative_at_min"`
}

type CreateStatutoryRateRequest struct {
	Tier                int             `json:"tier" binding:"required,min=1"`
	EmployeeRatePercent decimal.Decimal `json:"employee_rate_percent"`
	EmployerRatePercent decimal.Decimal `json:"employer_rate_percent"`
	EffectiveFrom       string          `json:"effective_from" binding:"required,datetime=2006-01-02"`
}

type StatutoryRateResponse struct {
	ID                  string          `json:"id"`
	Tier                int             `json:"tier"`
	EmployeeRatePercent decimal.Decimal `json:"employee_rate_percent"`
	EmployerRatePercent decimal.Decimal `json:"employer_rate_percent"`
	EffectiveFrom       string          `json:"effective_from"`
}
