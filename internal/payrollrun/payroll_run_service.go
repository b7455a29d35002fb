package payrollrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ekowhinson/HRMS-sub004/internal/employee"
	"github.com/ekowhinson/HRMS-sub004/internal/engine"
	"github.com/ekowhinson/HRMS-sub004/internal/events"
	"github.com/ekowhinson/HRMS-sub004/internal/messaging/kafka"
	payrollrunerrors "github.com/ekowhinson/HRMS-sub004/internal/payrollrun/errors"
	"github.com/ekowhinson/HRMS-sub004/internal/policy"
	"github.com/ekowhinson/HRMS-sub004/internal/shared/contextutil"
	"github.com/ekowhinson/HRMS-sub004/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payroll_run_service.go -destination=mock/payroll_run_service_mock.go -package=mock
type Service interface {
	Trigger(ctx context.Context, companyID, actorID string, req TriggerPayrollRunRequest) (PayrollRunResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollRunResponse, error)
	GetResults(ctx context.Context, companyID, id string) ([]PayrollResultResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	policies  policy.Service
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	workers   int
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	policies policy.Service,
	counterRepo counter.Repository,
	workers int,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, policies, counterRepo, nil, workers, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	policies policy.Service,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	workers int,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrollrun.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollrun.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		policies:  policies,
		counter:   counterRepo,
		outbox:    outboxRepo,
		workers:   workers,
		logger:    l,
	}
}

func (s *service) Trigger(
	ctx context.Context,
	companyID, actorID string,
	req TriggerPayrollRunRequest,
) (PayrollRunResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	if periodEnd.Before(periodStart) {
		return PayrollRunResponse{}, payrollrunerrors.ErrInvalidPeriod
	}
	period := engine.PayPeriod{Start: periodStart, End: periodEnd}

	existing, err := s.repo.FindOverlapping(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if existing != nil {
		return PayrollRunResponse{}, payrollrunerrors.ErrPeriodOverlap
	}

	// A broken policy fails the whole run before any employee is touched.
	cfg, err := s.policies.Load(ctx, companyID, period)
	if err != nil {
		return PayrollRunResponse{}, err
	}

	emps, err := s.employees.FindAllByCompany(ctx, companyID)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if len(emps) == 0 {
		return PayrollRunResponse{}, payrollrunerrors.ErrNoEmployees
	}

	snapshots := make([]engine.EmployeeSnapshot, len(emps))
	for i, emp := range emps {
		snapshots[i] = emp.Snapshot()
	}

	s.logger.Info("payroll run started",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("period_start", req.PeriodStart),
		zap.String("period_end", req.PeriodEnd),
		zap.Int("employee_count", len(snapshots)),
	)

	results := computeAll(ctx, snapshots, period, cfg, s.workers)
	if err := ctx.Err(); err != nil {
		return PayrollRunResponse{}, err
	}

	run := &PayrollRun{
		ID:            uuid.New(),
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Status:        StatusCompleted,
		EmployeeCount: len(results),
	}
	company, err := uuid.Parse(companyID)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	run.CompanyID = company
	if actorID != "" {
		run.TriggeredBy = &actorID
	}

	zero := decimal.Zero
	run.TotalGross, run.TotalNet, run.TotalPAYE = zero, zero, zero
	run.TotalStatutoryEmployee, run.TotalStatutoryEmployer = zero, zero

	rows := make([]PayrollResult, len(results))
	for i, res := range results {
		if res.Success {
			run.SuccessCount++
			run.TotalGross = run.TotalGross.Add(res.Gross)
			run.TotalNet = run.TotalNet.Add(res.NetPay)
			run.TotalPAYE = run.TotalPAYE.Add(res.PAYE)
			run.TotalStatutoryEmployee = run.TotalStatutoryEmployee.Add(res.StatutoryEmployee)
			run.TotalStatutoryEmployer = run.TotalStatutoryEmployer.Add(res.StatutoryEmployer)
		} else {
			run.FailureCount++
		}
		rows[i] = mapResultToRow(run.ID, res)
	}

	seq, err := s.counter.GetNextValue(ctx, companyID, counter.TypePayrollRun)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	run.RunNumber = fmt.Sprintf("PR-%05d", seq)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if err := qtx.CreateResults(ctx, rows); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		payload, err := json.Marshal(events.PayrollRunCompletedEvent{
			EventType:     "payroll_run_completed",
			RunID:         run.ID.String(),
			RunNumber:     run.RunNumber,
			CompanyID:     companyID,
			PeriodStart:   req.PeriodStart,
			PeriodEnd:     req.PeriodEnd,
			EmployeeCount: run.EmployeeCount,
			SuccessCount:  run.SuccessCount,
			FailureCount:  run.FailureCount,
			TotalNet:      run.TotalNet.StringFixed(2),
			OccurredAt:    time.Now().UTC(),
		})
		if err != nil {
			return PayrollRunResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "payroll_run",
			AggregateID:   run.ID.String(),
			EventType:     "payroll_run_completed",
			Topic:         events.PayrollRunCompletedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("payroll run outbox persist failed",
				zap.String("request_id", rid),
				zap.String("run_id", run.ID.String()),
				zap.Error(err),
			)
			return PayrollRunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	s.logger.Info("payroll run completed",
		zap.String("request_id", rid),
		zap.String("run_id", run.ID.String()),
		zap.String("run_number", run.RunNumber),
		zap.Int("success_count", run.SuccessCount),
		zap.Int("failure_count", run.FailureCount),
	)

	return mapRunToResponse(*run), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PayrollRunResponse, error) {
	runs, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PayrollRunResponse, len(runs))
	for i, run := range runs {
		res[i] = mapRunToResponse(run)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollRunResponse, error) {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	return mapRunToResponse(*run), nil
}

func (s *service) GetResults(ctx context.Context, companyID, id string) ([]PayrollResultResponse, error) {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	results, err := s.repo.FindResultsByRun(ctx, run.ID.String())
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PayrollResultResponse, len(results))
	for i, result := range results {
		res[i] = mapResultToResponse(result)
	}
	return res, nil
}

func mapResultToRow(runID uuid.UUID, res engine.PayrollComputationResult) PayrollResult {
	row := PayrollResult{
		ID:                uuid.New(),
		RunID:             runID,
		EmployeeID:        res.EmployeeID,
		Success:           res.Success,
		BasicSalary:       res.BasicSalary,
		ProrationFactor:   res.ProrationFactor,
		DaysPayable:       res.DaysPayable,
		TotalDays:         res.TotalDays,
		Gross:             res.Gross,
		PAYE:              res.PAYE,
		StatutoryEmployee: res.StatutoryEmployee,
		StatutoryEmployer: res.StatutoryEmployer,
		NetPay:            res.NetPay,
	}
	if res.Error != "" {
		errMsg := res.Error
		row.Error = &errMsg
	}
	if len(res.Warnings) > 0 {
		joined := strings.Join(res.Warnings, "\n")
		row.Warnings = &joined
	}

	row.Lines = make([]PayrollResultLine, len(res.Details))
	for i, d := range res.Details {
		row.Lines[i] = PayrollResultLine{
			ID:            uuid.New(),
			ResultID:      row.ID,
			ComponentCode: d.ComponentCode,
			Type:          string(d.Type),
			Amount:        d.Amount,
			IsTaxable:     d.Taxable,
			Source:        string(d.Source),
			IsProrated:    d.Prorated,
		}
	}
	return row
}

func mapRunToResponse(run PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		ID:                     run.ID.String(),
		RunNumber:              run.RunNumber,
		PeriodStart:            run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:              run.PeriodEnd.Format("2006-01-02"),
		Status:                 run.Status,
		EmployeeCount:          run.EmployeeCount,
		SuccessCount:           run.SuccessCount,
		FailureCount:           run.FailureCount,
		TotalGross:             run.TotalGross,
		TotalNet:               run.TotalNet,
		TotalPAYE:              run.TotalPAYE,
		TotalStatutoryEmployee: run.TotalStatutoryEmployee,
		TotalStatutoryEmployer: run.TotalStatutoryEmployer,
		TriggeredBy:            run.TriggeredBy,
		CreatedAt:              run.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapResultToResponse(result PayrollResult) PayrollResultResponse {
	res := PayrollResultResponse{
		ID:                result.ID.String(),
		EmployeeID:        result.EmployeeID.String(),
		Success:           result.Success,
		BasicSalary:       result.BasicSalary,
		ProrationFactor:   result.ProrationFactor,
		DaysPayable:       result.DaysPayable,
		TotalDays:         result.TotalDays,
		Gross:             result.Gross,
		PAYE:              result.PAYE,
		StatutoryEmployee: result.StatutoryEmployee,
		StatutoryEmployer: result.StatutoryEmployer,
		NetPay:            result.NetPay,
		Error:             result.Error,
	}
	if result.Warnings != nil && *result.Warnings != "" {
		res.Warnings = strings.Split(*result.Warnings, "\n")
	}

	res.Lines = make([]PayrollResultLineResponse, len(result.Lines))
	for i, line := range result.Lines {
		res.Lines[i] = PayrollResultLineResponse{
			ComponentCode: line.ComponentCode,
			Type:          line.Type,
			Amount:        line.Amount,
			IsTaxable:     line.IsTaxable,
			Source:        line.Source,
			IsProrated:    line.IsProrated,
		}
	}
	return res
}
