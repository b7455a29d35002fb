package payrollrun

import (
	"errors"
	"strings"

	payrollrunerrors "github.com/ekowhinson/HRMS-sub004/internal/payrollrun/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollrunerrors.ErrRunNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_payroll_runs_run_number" {
			return payrollrunerrors.ErrDuplicateRunNumber
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_payroll_runs_run_number") {
		return payrollrunerrors.ErrDuplicateRunNumber
	}

	return err
}
