package payrollrun_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/ekowhinson/HRMS-sub004/internal/employee"
	"github.com/ekowhinson/HRMS-sub004/internal/engine"
	"github.com/ekowhinson/HRMS-sub004/internal/events"
	"github.com/ekowhinson/HRMS-sub004/internal/messaging/kafka"
	"github.com/ekowhinson/HRMS-sub004/internal/payrollrun"
	payrollrunerrors "github.com/ekowhinson/HRMS-sub004/internal/payrollrun/errors"
	"github.com/ekowhinson/HRMS-sub004/internal/policy"
	"github.com/ekowhinson/HRMS-sub004/internal/shared/counter"
	mock_counter "github.com/ekowhinson/HRMS-sub004/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeRunRepository struct {
	withTxFn             func(tx *sql.Tx) payrollrun.Repository
	createRunFn          func(ctx context.Context, run *payrollrun.PayrollRun) error
	createResultsFn      func(ctx context.Context, results []payrollrun.PayrollResult) error
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]payrollrun.PayrollRun, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID string, id string) (*payrollrun.PayrollRun, error)
	findOverlappingFn    func(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*payrollrun.PayrollRun, error)
	findResultsByRunFn   func(ctx context.Context, runID string) ([]payrollrun.PayrollResult, error)
}

func (f *fakeRunRepository) WithTx(tx *sql.Tx) payrollrun.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRunRepository) CreateRun(ctx context.Context, run *payrollrun.PayrollRun) error {
	if f.createRunFn != nil {
		return f.createRunFn(ctx, run)
	}
	return nil
}

func (f *fakeRunRepository) CreateResults(ctx context.Context, results []payrollrun.PayrollResult) error {
	if f.createResultsFn != nil {
		return f.createResultsFn(ctx, results)
	}
	return nil
}

func (f *fakeRunRepository) FindAllByCompany(ctx context.Context, companyID string) ([]payrollrun.PayrollRun, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeRunRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*payrollrun.PayrollRun, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeRunRepository) FindOverlapping(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*payrollrun.PayrollRun, error) {
	if f.findOverlappingFn != nil {
		return f.findOverlappingFn(ctx, companyID, periodStart, periodEnd)
	}
	return nil, nil
}

func (f *fakeRunRepository) FindResultsByRun(ctx context.Context, runID string) ([]payrollrun.PayrollResult, error) {
	if f.findResultsByRunFn != nil {
		return f.findResultsByRunFn(ctx, runID)
	}
	return nil, nil
}

type fakeEmployeeRepository struct {
	findAllByCompanyFn func(ctx context.Context, companyID string) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return nil, nil
}

type fakePolicyService struct {
	loadFn func(ctx context.Context, companyID string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error)
}

func (f *fakePolicyService) Load(ctx context.Context, companyID string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error) {
	if f.loadFn != nil {
		return f.loadFn(ctx, companyID, period)
	}
	return engine.PayrollPolicyConfig{}, nil
}

func (f *fakePolicyService) CreateComponent(ctx context.Context, companyID string, req policy.CreateComponentRequest) (policy.ComponentResponse, error) {
	return policy.ComponentResponse{}, nil
}

func (f *fakePolicyService) GetComponents(ctx context.Context, companyID string, asOf time.Time) ([]policy.ComponentResponse, error) {
	return nil, nil
}

func (f *fakePolicyService) CreateSalaryRecord(ctx context.Context, companyID string, req policy.CreateSalaryRecordRequest) (policy.SalaryRecordResponse, error) {
	return policy.SalaryRecordResponse{}, nil
}

func (f *fakePolicyService) CreateOverride(ctx context.Context, companyID string, req policy.CreateOverrideRequest) (policy.OverrideResponse, error) {
	return policy.OverrideResponse{}, nil
}

func (f *fakePolicyService) CreateAdHocPayment(ctx context.Context, companyID string, req policy.CreateAdHocPaymentRequest) (policy.AdHocPaymentResponse, error) {
	return policy.AdHocPaymentResponse{}, nil
}

func (f *fakePolicyService) SetTaxBrackets(ctx context.Context, companyID string, req policy.SetTaxBracketsRequest) ([]policy.TaxBracketResponse, error) {
	return nil, nil
}

func (f *fakePolicyService) CreateStatutoryRate(ctx context.Context, companyID string, req policy.CreateStatutoryRateRequest) (policy.StatutoryRateResponse, error) {
	return policy.StatutoryRateResponse{}, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payrollrun.Service
	repo    *fakeRunRepository
	emps    *fakeEmployeeRepository
	pols    *fakePolicyService
	outbox  *fakeOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	ctrl := gomock.NewController(t)
	counterRepo := mock_counter.NewMockRepository(ctrl)
	var seq int64
	counterRepo.EXPECT().
		GetNextValue(gomock.Any(), gomock.Any(), counter.TypePayrollRun).
		DoAndReturn(func(ctx context.Context, companyID, counterType string) (int64, error) {
			seq++
			return seq, nil
		}).
		AnyTimes()

	repo := &fakeRunRepository{}
	emps := &fakeEmployeeRepository{}
	pols := &fakePolicyService{}
	outbox := &fakeOutboxRepository{}
	svc := payrollrun.NewServiceWithOutbox(db, repo, emps, pols, counterRepo, outbox, 4)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		emps:    emps,
		pols:    pols,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// testPolicy is a minimal valid config: one fixed basic component, a two-row
// bracket table and a single statutory tier.
func testPolicy(employeeIDs ...uuid.UUID) engine.PayrollPolicyConfig {
	cfg := engine.PayrollPolicyConfig{
		BasicComponentCode: "BASIC",
		Components: []engine.PayComponent{
			{
				Code:                 "BASIC",
				Name:                 "Basic Salary",
				Type:                 engine.ComponentEarning,
				CalculationKind:      engine.CalcFixed,
				Taxable:              true,
				Prorated:             true,
				AffectsStatutoryBase: true,
			},
		},
		SalaryRecords:  map[uuid.UUID]engine.SalaryRecord{},
		StructureLines: map[uuid.UUID][]engine.SalaryStructureLine{},
		AdHocPayments:  map[uuid.UUID][]engine.AdHocPayment{},
		Tax: engine.TaxPolicy{
			Brackets: []engine.TaxBracket{
				{Order: 1, Min: dec("0"), Max: decPtr("490"), RatePercent: dec("0"), CumulativeAtMin: dec("0")},
				{Order: 2, Min: dec("490"), Max: nil, RatePercent: dec("10"), CumulativeAtMin: dec("0")},
			},
			ReliefMode: engine.ReliefNone,
		},
		StatutoryRates: []engine.StatutoryRate{
			{Tier: 1, EmployeeRatePercent: dec("5.5"), EmployerRatePercent: dec("13")},
		},
	}
	for _, id := range employeeIDs {
		cfg.SalaryRecords[id] = engine.SalaryRecord{EmployeeID: id, BasicSalary: dec("5000")}
	}
	return cfg
}

func testEmployees(ids ...uuid.UUID) []employee.Employee {
	emps := make([]employee.Employee, len(ids))
	for i, id := range ids {
		emps[i] = employee.Employee{
			ID:            id,
			DateOfJoining: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return emps
}

func TestPayrollRunService_Trigger(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	req := payrollrun.TriggerPayrollRunRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		empA := uuid.New()
		empB := uuid.New()

		deps.emps.findAllByCompanyFn = func(ctx context.Context, cid string) ([]employee.Employee, error) {
			assert.Equal(t, companyID, cid)
			return testEmployees(empA, empB), nil
		}
		deps.pols.loadFn = func(ctx context.Context, cid string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error) {
			assert.Equal(t, "2026-03-01", period.Start.Format("2006-01-02"))
			return testPolicy(empA, empB), nil
		}

		var persistedRun *payrollrun.PayrollRun
		var persistedResults []payrollrun.PayrollResult
		deps.repo.createRunFn = func(ctx context.Context, run *payrollrun.PayrollRun) error {
			persistedRun = run
			return nil
		}
		deps.repo.createResultsFn = func(ctx context.Context, results []payrollrun.PayrollResult) error {
			persistedResults = results
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Trigger(ctx, companyID, "scheduler", req)

		assert.NoError(t, err)
		assert.Equal(t, "PR-00001", resp.RunNumber)
		assert.Equal(t, payrollrun.StatusCompleted, resp.Status)
		assert.Equal(t, 2, resp.EmployeeCount)
		assert.Equal(t, 2, resp.SuccessCount)
		assert.Equal(t, 0, resp.FailureCount)

		// 5000 basic, 451 PAYE and 275 employee statutory each.
		assert.True(t, resp.TotalGross.Equal(dec("10000")), "gross %s", resp.TotalGross)
		assert.True(t, resp.TotalPAYE.Equal(dec("902")), "paye %s", resp.TotalPAYE)
		assert.True(t, resp.TotalStatutoryEmployee.Equal(dec("550")))
		assert.True(t, resp.TotalStatutoryEmployer.Equal(dec("1300")))
		assert.True(t, resp.TotalNet.Equal(dec("8548")), "net %s", resp.TotalNet)

		assert.NotNil(t, persistedRun)
		assert.Len(t, persistedResults, 2)
		assert.Equal(t, empA, persistedResults[0].EmployeeID)
		assert.Equal(t, empB, persistedResults[1].EmployeeID)
		assert.NotEmpty(t, persistedResults[0].Lines)

		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.PayrollRunCompletedTopic, deps.outbox.created[0].Topic)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("per-employee failure does not fail the run", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		empA := uuid.New()
		empB := uuid.New()

		deps.emps.findAllByCompanyFn = func(ctx context.Context, cid string) ([]employee.Employee, error) {
			return testEmployees(empA, empB), nil
		}
		deps.pols.loadFn = func(ctx context.Context, cid string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error) {
			// empB has no salary record, so its computation fails.
			return testPolicy(empA), nil
		}

		var persistedResults []payrollrun.PayrollResult
		deps.repo.createResultsFn = func(ctx context.Context, results []payrollrun.PayrollResult) error {
			persistedResults = results
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Trigger(ctx, companyID, "", req)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.SuccessCount)
		assert.Equal(t, 1, resp.FailureCount)
		assert.True(t, resp.TotalGross.Equal(dec("5000")))

		assert.Len(t, persistedResults, 2)
		assert.True(t, persistedResults[0].Success)
		assert.False(t, persistedResults[1].Success)
		assert.NotNil(t, persistedResults[1].Error)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid period", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Trigger(ctx, companyID, "", payrollrun.TriggerPayrollRunRequest{
			PeriodStart: "2026-03-31",
			PeriodEnd:   "2026-03-01",
		})

		assert.ErrorIs(t, err, payrollrunerrors.ErrInvalidPeriod)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlapping run", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findOverlappingFn = func(ctx context.Context, cid string, start, end time.Time) (*payrollrun.PayrollRun, error) {
			return &payrollrun.PayrollRun{ID: uuid.New()}, nil
		}

		_, err := deps.service.Trigger(ctx, companyID, "", req)

		assert.ErrorIs(t, err, payrollrunerrors.ErrPeriodOverlap)
	})

	t.Run("policy load failure aborts run", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.pols.loadFn = func(ctx context.Context, cid string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error) {
			return engine.PayrollPolicyConfig{}, errors.New("malformed brackets")
		}

		_, err := deps.service.Trigger(ctx, companyID, "", req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no employees", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.pols.loadFn = func(ctx context.Context, cid string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error) {
			return testPolicy(), nil
		}
		deps.emps.findAllByCompanyFn = func(ctx context.Context, cid string) ([]employee.Employee, error) {
			return nil, nil
		}

		_, err := deps.service.Trigger(ctx, companyID, "", req)

		assert.ErrorIs(t, err, payrollrunerrors.ErrNoEmployees)
	})

	t.Run("results keep employee order with many workers", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ids := make([]uuid.UUID, 25)
		for i := range ids {
			ids[i] = uuid.New()
		}

		deps.emps.findAllByCompanyFn = func(ctx context.Context, cid string) ([]employee.Employee, error) {
			return testEmployees(ids...), nil
		}
		deps.pols.loadFn = func(ctx context.Context, cid string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error) {
			return testPolicy(ids...), nil
		}

		var persistedResults []payrollrun.PayrollResult
		deps.repo.createResultsFn = func(ctx context.Context, results []payrollrun.PayrollResult) error {
			persistedResults = results
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Trigger(ctx, companyID, "", req)

		assert.NoError(t, err)
		assert.Equal(t, 25, resp.SuccessCount)
		assert.Len(t, persistedResults, 25)
		for i, id := range ids {
			assert.Equal(t, id, persistedResults[i].EmployeeID)
		}
	})
}

func TestPayrollRunService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	companyID := uuid.New().String()
	runID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid string, id string) (*payrollrun.PayrollRun, error) {
			assert.Equal(t, runID.String(), id)
			return &payrollrun.PayrollRun{
				ID:          runID,
				RunNumber:   "PR-00007",
				PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
				Status:      payrollrun.StatusCompleted,
			}, nil
		}

		resp, err := deps.service.GetByID(ctx, companyID, runID.String())

		assert.NoError(t, err)
		assert.Equal(t, "PR-00007", resp.RunNumber)
		assert.Equal(t, "2026-03-01", resp.PeriodStart)
	})

	t.Run("repo error", func(t *testing.T) {
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid string, id string) (*payrollrun.PayrollRun, error) {
			return nil, errors.New("db error")
		}

		_, err := deps.service.GetByID(ctx, companyID, runID.String())

		assert.Error(t, err)
	})
}

func TestPayrollRunService_GetResults(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	companyID := uuid.New().String()
	runID := uuid.New()
	employeeID := uuid.New()

	warnings := "joined before period start"
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid string, id string) (*payrollrun.PayrollRun, error) {
		return &payrollrun.PayrollRun{ID: runID}, nil
	}
	deps.repo.findResultsByRunFn = func(ctx context.Context, id string) ([]payrollrun.PayrollResult, error) {
		assert.Equal(t, runID.String(), id)
		return []payrollrun.PayrollResult{
			{
				ID:         uuid.New(),
				RunID:      runID,
				EmployeeID: employeeID,
				Success:    true,
				NetPay:     dec("4274"),
				Warnings:   &warnings,
				Lines: []payrollrun.PayrollResultLine{
					{ComponentCode: "BASIC", Type: "EARNING", Amount: dec("5000"), IsTaxable: true, Source: "STRUCTURE", IsProrated: true},
				},
			},
		}, nil
	}

	resp, err := deps.service.GetResults(ctx, companyID, runID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, employeeID.String(), resp[0].EmployeeID)
	assert.True(t, resp[0].NetPay.Equal(dec("4274")))
	assert.Equal(t, []string{"joined before period start"}, resp[0].Warnings)
	assert.Len(t, resp[0].Lines, 1)
	assert.Equal(t, "BASIC", resp[0].Lines[0].ComponentCode)
}
