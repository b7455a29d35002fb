package payrollrun

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_run_repo.go -destination=mock/payroll_run_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRun(ctx context.Context, run *PayrollRun) error
	CreateResults(ctx context.Context, results []PayrollResult) error
	FindAllByCompany(ctx context.Context, companyID string) ([]PayrollRun, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRun, error)
	FindOverlapping(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*PayrollRun, error)
	FindResultsByRun(ctx context.Context, runID string) ([]PayrollResult, error)
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

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// CreateResults persists results in batches; lines ride along through the
// association.
func (r *repository) CreateResults(ctx context.Context, results []PayrollResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&results, 100).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("company_id = ?", companyID).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// FindOverlapping returns a completed or in-flight run whose period intersects
// the requested one, or nil when the period is free.
func (r *repository) FindOverlapping(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("status <> ?", StatusFailed).
		Where("period_start <= ?", periodEnd).
		Where("period_end >= ?", periodStart).
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *repository) FindResultsByRun(ctx context.Context, runID string) ([]PayrollResult, error) {
	var results []PayrollResult
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("run_id = ?", runID).
		Order("created_at ASC").
		Find(&results).Error
	return results, err
}
