package payrollrun

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

type PayrollRun struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RunNumber   string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	Status      string    `gorm:"type:varchar(20);not null"`

	EmployeeCount int `gorm:"not null;default:0"`
	SuccessCount  int `gorm:"not null;default:0"`
	FailureCount  int `gorm:"not null;default:0"`

	TotalGross             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalNet               decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalPAYE              decimal.Decimal `gorm:"column:total_paye;type:decimal(18,2);not null;default:0"`
	TotalStatutoryEmployee decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalStatutoryEmployer decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	TriggeredBy *string `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PayrollResult struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID      uuid.UUID `gorm:"type:uuid;not null;index:idx_result_run_employee,unique"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_result_run_employee,unique"`
	Success    bool      `gorm:"not null"`

	BasicSalary       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ProrationFactor   decimal.Decimal `gorm:"type:decimal(12,9);not null;default:0"`
	DaysPayable       int             `gorm:"not null;default:0"`
	TotalDays         int             `gorm:"not null;default:0"`
	Gross             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PAYE              decimal.Decimal `gorm:"column:paye;type:decimal(18,2);not null;default:0"`
	StatutoryEmployee decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	StatutoryEmployer decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NetPay            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	Error    *string `gorm:"type:text"`
	Warnings *string `gorm:"type:text"`

	Lines []PayrollResultLine `gorm:"foreignKey:ResultID"`

	CreatedAt time.Time
}

type PayrollResultLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResultID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponentCode string          `gorm:"type:varchar(40);not null"`
	Type          string          `gorm:"type:varchar(30);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IsTaxable     bool            `gorm:"not null"`
	Source        string          `gorm:"type:varchar(20);not null"`
	IsProrated    bool            `gorm:"not null"`
}
