package payrollrun

import "github.com/shopspring/decimal"

type TriggerPayrollRunRequest struct {
	PeriodStart string `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" binding:"required,datetime=2006-01-02"`
}

type PayrollRunResponse struct {
	ID          string `json:"id"`
	RunNumber   string `json:"run_number"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Status      string `json:"status"`

	EmployeeCount int `json:"employee_count"`
	SuccessCount  int `json:"success_count"`
	FailureCount  int `json:"failure_count"`

	TotalGross             decimal.Decimal `json:"total_gross"`
	TotalNet               decimal.Decimal `json:"total_net"`
	TotalPAYE              decimal.Decimal `json:"total_paye"`
	TotalStatutoryEmployee decimal.Decimal `json:"total_statutory_employee"`
	TotalStatutoryEmployer decimal.Decimal `json:"total_statutory_employer"`

	TriggeredBy *string `json:"triggered_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type PayrollResultLineResponse struct {
	ComponentCode string          `json:"component_code"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	IsTaxable     bool            `json:"is_taxable"`
	Source        string          `json:"source"`
	IsProrated    bool            `json:"is_prorated"`
}

type PayrollResultResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Success    bool   `json:"success"`

	BasicSalary       decimal.Decimal `json:"basic_salary"`
	ProrationFactor   decimal.Decimal `json:"proration_factor"`
	DaysPayable       int             `json:"days_payable"`
	TotalDays         int             `json:"total_days"`
	Gross             decimal.Decimal `json:"gross"`
	PAYE              decimal.Decimal `json:"paye"`
	StatutoryEmployee decimal.Decimal `json:"statutory_employee"`
	StatutoryEmployer decimal.Decimal `json:"statutory_employer"`
	NetPay            decimal.Decimal `json:"net_pay"`

	Error    *string                     `json:"error,omitempty"`
	Warnings []string                    `json:"warnings,omitempty"`
	Lines    []PayrollResultLineResponse `json:"lines"`
}
