package policy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// All policy tables are company-scoped and effective-dated. Loading filters
// them down to what is active on a period's start date; the engine never sees
// effective dating.

type PayComponent struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID            uuid.UUID `gorm:"type:uuid;not null;index:idx_component_code,unique"`
	Code                 string    `gorm:"type:varchar(40);not null;index:idx_component_code,unique"`
	Name                 string    `gorm:"type:varchar(120);not null"`
	Type                 string    `gorm:"type:varchar(30);not null"`
	CalculationKind      string    `gorm:"type:varchar(20);not null"`
	IsBasic              bool      `gorm:"not null;default:false"`
	IsTaxable            bool      `gorm:"not null;default:false"`
	IsProrated           bool      `gorm:"not null;default:false"`
	AffectsStatutoryBase bool      `gorm:"not null;default:false"`
	IsOvertime           bool      `gorm:"not null;default:false"`
	IsBonus              bool      `gorm:"not null;default:false"`

	DefaultAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DefaultPercent decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	Formula        string          `gorm:"type:text"`

	SortOrder     int        `gorm:"not null;default:0"`
	EffectiveFrom time.Time  `gorm:"type:date;not null"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SalaryRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BasicSalary   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	EffectiveDate time.Time       `gorm:"type:date;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SalaryStructureLine struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	SalaryRecordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponentCode  string          `gorm:"type:varchar(40);not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ComponentOverride struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponentCode string          `gorm:"type:varchar(40);not null"`
	Target        string          `gorm:"type:varchar(20);not null"`
	GradeID       *uuid.UUID      `gorm:"type:uuid;index"`
	EmployeeID    *uuid.UUID      `gorm:"type:uuid;index"`
	OverrideKind  string          `gorm:"type:varchar(20);not null"`
	Value         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EffectiveFrom time.Time       `gorm:"type:date;not null"`
	EffectiveTo   *time.Time      `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type AdHocPayment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponentCode string          `gorm:"type:varchar(40);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PeriodStart   time.Time       `gorm:"type:date;not null"`
	PeriodEnd     time.Time       `gorm:"type:date;not null"`
	Reason        *string         `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TaxBracket struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	BracketOrder    int              `gorm:"not null"`
	MinAmount       decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	MaxAmount       *decimal.Decimal `gorm:"type:decimal(18,2)"`
	RatePercent     decimal.Decimal  `gorm:"type:decimal(9,4);not null"`
	CumulativeAtMin decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	EffectiveFrom   time.Time        `gorm:"type:date;not null"`
	EffectiveTo     *time.Time       `gorm:"type:date"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type TaxRelief struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Mode          string          `gorm:"type:varchar(30);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	EffectiveFrom time.Time       `gorm:"type:date;not null"`
	EffectiveTo   *time.Time      `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type StatutoryRate struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tier                int             `gorm:"not null"`
	EmployeeRatePercent decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	EmployerRatePercent decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	EffectiveFrom       time.Time       `gorm:"type:date;not null"`
	EffectiveTo         *time.Time      `gorm:"type:date"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type OvertimeBonusConfig struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	AnnualSalaryThreshold         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	BasicPercentageThreshold      decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	RateAboveThreshold            decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	RateBelowThreshold            decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	NonResidentOvertimeRate       decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	BonusBasicPercentageThreshold decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	BonusFlatRate                 decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	BonusExcessToPAYE             bool            `gorm:"not null;default:false"`
	NonResidentBonusRate          decimal.Decimal `gorm:"type:decimal(9,4);not null"`

	EffectiveFrom time.Time  `gorm:"type:date;not null"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
