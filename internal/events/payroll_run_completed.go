package events

import "time"

const PayrollRunCompletedTopic = "payroll.run.completed.v1"

type PayrollRunCompletedEvent struct {
	EventType     string    `json:"event_type"`
	RunID         string    `json:"run_id"`
	RunNumber     string    `json:"run_number"`
	CompanyID     string    `json:"company_id"`
	PeriodStart   string    `json:"period_start"`
	PeriodEnd     string    `json:"period_end"`
	EmployeeCount int       `json:"employee_count"`
	SuccessCount  int       `json:"success_count"`
	FailureCount  int       `json:"failure_count"`
	TotalNet      string    `json:"total_net"`
	OccurredAt    time.Time `json:"occurred_at"`
}
