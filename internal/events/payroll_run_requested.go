package events

import "time"

const PayrollRunRequestedTopic = "payroll.run.requested.v1"

// PayrollRunRequestedEvent asks the consumer binary to trigger a run. It
// carries the same fields an API trigger would.
type PayrollRunRequestedEvent struct {
	EventType   string    `json:"event_type"`
	CompanyID   string    `json:"company_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
