package policy

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateComponent(ctx context.Context, component *PayComponent) error
	FindComponents(ctx context.Context, companyID string, asOf time.Time) ([]PayComponent, error)

	CreateSalaryRecord(ctx context.Context, record *SalaryRecord) error
	CreateStructureLines(ctx context.Context, lines []SalaryStructureLine) error
	FindCurrentSalaryRecords(ctx context.Context, companyID string, asOf time.Time) ([]SalaryRecord, error)
	FindStructureLines(ctx context.Context, companyID string, recordIDs []uuid.UUID) ([]SalaryStructureLine, error)

	CreateOverride(ctx context.Context, override *ComponentOverride) error
	FindOverrides(ctx context.Context, companyID string, asOf time.Time) ([]ComponentOverride, error)

	CreateAdHocPayment(ctx context.Context, payment *AdHocPayment) error
	FindAdHocPayments(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]AdHocPayment, error)

	ReplaceTaxBrackets(ctx context.Context, companyID string, asOf time.Time, brackets []TaxBracket) error
	FindTaxBrackets(ctx context.Context, companyID string, asOf time.Time) ([]TaxBracket, error)
	FindTaxRelief(ctx context.Context, companyID string, asOf time.Time) (*TaxRelief, error)

	CreateStatutoryRate(ctx context.Context, rate *StatutoryRate) error
	FindStatutoryRates(ctx context.Context, companyID string, asOf time.Time) ([]StatutoryRate, error)

	FindOvertimeBonusConfig(ctx context.Context, companyID string, asOf time.Time) (*OvertimeBonusConfig, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// effective scopes a query to rows active on asOf.
func effective(asOf time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("effective_from <= ?", asOf).
			Where("effective_to IS NULL OR effective_to >= ?", asOf)
	}
}

func (r *repository) CreateComponent(ctx context.Context, component *PayComponent) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *repository) FindComponents(ctx context.Context, companyID string, asOf time.Time) ([]PayComponent, error) {
	var components []PayComponent
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Scopes(effective(asOf)).
		Order("sort_order ASC, code ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) CreateSalaryRecord(ctx context.Context, record *SalaryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) CreateStructureLines(ctx context.Context, lines []SalaryStructureLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// FindCurrentSalaryRecords returns the single latest record per employee with
// effective_date on or before asOf.
func (r *repository) FindCurrentSalaryRecords(ctx context.Context, companyID string, asOf time.Time) ([]SalaryRecord, error) {
	var records []SalaryRecord
	query := `
SELECT DISTINCT ON (employee_id) *
FROM salary_records
WHERE company_id = ? AND effective_date <= ?
ORDER BY employee_id, effective_date DESC, created_at DESC
`
	err := r.db.WithContext(ctx).Raw(query, companyID, asOf).Scan(&records).Error
	return records, err
}

func (r *repository) FindStructureLines(ctx context.Context, companyID string, recordIDs []uuid.UUID) ([]SalaryStructureLine, error) {
	if len(recordIDs) == 0 {
		return nil, nil
	}
	var lines []SalaryStructureLine
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("salary_record_id IN ?", recordIDs).
		Find(&lines).Error
	return lines, err
}

func (r *repository) CreateOverride(ctx context.Context, override *ComponentOverride) error {
	return r.db.WithContext(ctx).Create(override).Error
}

func (r *repository) FindOverrides(ctx context.Context, companyID string, asOf time.Time) ([]ComponentOverride, error) {
	var overrides []ComponentOverride
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Scopes(effective(asOf)).
		Find(&overrides).Error
	return overrides, err
}

func (r *repository) CreateAdHocPayment(ctx context.Context, payment *AdHocPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindAdHocPayments(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]AdHocPayment, error) {
	var payments []AdHocPayment
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("period_start = ?", periodStart).
		Where("period_end = ?", periodEnd).
		Find(&payments).Error
	return payments, err
}

// ReplaceTaxBrackets closes the currently effective bracket set the day
// before asOf and inserts the new set effective from asOf.
func (r *repository) ReplaceTaxBrackets(ctx context.Context, companyID string, asOf time.Time, brackets []TaxBracket) error {
	closeDate := asOf.AddDate(0, 0, -1)
	err := r.db.WithContext(ctx).
		Model(&TaxBracket{}).
		Where("company_id = ?", companyID).
		Where("effective_to IS NULL").
		Where("effective_from < ?", asOf).
		Update("effective_to", closeDate).Error
	if err != nil {
		return err
	}
	if len(brackets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&brackets).Error
}

func (r *repository) FindTaxBrackets(ctx context.Context, companyID string, asOf time.Time) ([]TaxBracket, error) {
	var brackets []TaxBracket
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Scopes(effective(asOf)).
		Order("bracket_order ASC").
		Find(&brackets).Error
	return brackets, err
}

func (r *repository) FindTaxRelief(ctx context.Context, companyID string, asOf time.Time) (*TaxRelief, error) {
	var relief TaxRelief
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Scopes(effective(asOf)).
		Order("effective_from DESC").
		First(&relief).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &relief, nil
}

func (r *repository) CreateStatutoryRate(ctx context.Context, rate *StatutoryRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *repository) FindStatutoryRates(ctx context.Context, companyID string, asOf time.Time) ([]StatutoryRate, error) {
	var rates []StatutoryRate
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Scopes(effective(asOf)).
		Order("tier ASC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) FindOvertimeBonusConfig(ctx context.Context, companyID string, asOf time.Time) (*OvertimeBonusConfig, error) {
	var cfg OvertimeBonusConfig
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Scopes(effective(asOf)).
		Order("effective_from DESC").
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}
