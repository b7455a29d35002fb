package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ekowhinson/HRMS-sub004/internal/engine"
	policyerrors "github.com/ekowhinson/HRMS-sub004/internal/policy/errors"
	"github.com/ekowhinson/HRMS-sub004/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const PolicyCacheKeyPrefix = "payroll:policy:"

func GetPolicyCacheKey(companyID string, periodStart time.Time) string {
	return PolicyCacheKeyPrefix + companyID + ":" + periodStart.Format("2006-01-02")
}

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	// Load assembles the full payroll configuration effective on the period
	// start date and validates it. Batch drivers call this once per run.
	Load(ctx context.Context, companyID string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error)

	CreateComponent(ctx context.Context, companyID string, req CreateComponentRequest) (ComponentResponse, error)
	GetComponents(ctx context.Context, companyID string, asOf time.Time) ([]ComponentResponse, error)
	CreateSalaryRecord(ctx context.Context, companyID string, req CreateSalaryRecordRequest) (SalaryRecordResponse, error)
	CreateOverride(ctx context.Context, companyID string, req CreateOverrideRequest) (OverrideResponse, error)
	CreateAdHocPayment(ctx context.Context, companyID string, req CreateAdHocPaymentRequest) (AdHocPaymentResponse, error)
	SetTaxBrackets(ctx context.Context, companyID string, req SetTaxBracketsRequest) ([]TaxBracketResponse, error)
	CreateStatutoryRate(ctx context.Context, companyID string, req CreateStatutoryRateRequest) (StatutoryRateResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Load(ctx context.Context, companyID string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error) {
	cacheKey := GetPolicyCacheKey(companyID, period.Start)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cfg engine.PayrollPolicyConfig
			if json.Unmarshal([]byte(cached), &cfg) == nil {
				return cfg, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		cfg, err := s.assemble(ctx, companyID, period)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(cfg); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 10*time.Minute)
			}
		}

		return cfg, nil
	})

	if err != nil {
		return engine.PayrollPolicyConfig{}, err
	}

	return v.(engine.PayrollPolicyConfig), nil
}

func (s *service) assemble(ctx context.Context, companyID string, period engine.PayPeriod) (engine.PayrollPolicyConfig, error) {
	rid := contextutil.GetRequestID(ctx)
	asOf := period.Start

	components, err := s.repo.FindComponents(ctx, companyID, asOf)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}

	cfg := engine.PayrollPolicyConfig{
		Components:     make([]engine.PayComponent, 0, len(components)),
		SalaryRecords:  map[uuid.UUID]engine.SalaryRecord{},
		StructureLines: map[uuid.UUID][]engine.SalaryStructureLine{},
		AdHocPayments:  map[uuid.UUID][]engine.AdHocPayment{},
	}
	for _, comp := range components {
		if comp.IsBasic {
			cfg.BasicComponentCode = comp.Code
		}
		cfg.Components = append(cfg.Components, engine.PayComponent{
			Code:                 comp.Code,
			Name:                 comp.Name,
			Type:                 engine.ComponentType(comp.Type),
			CalculationKind:      engine.CalculationKind(comp.CalculationKind),
			Taxable:              comp.IsTaxable,
			Prorated:             comp.IsProrated,
			AffectsStatutoryBase: comp.AffectsStatutoryBase,
			Overtime:             comp.IsOvertime,
			Bonus:                comp.IsBonus,
			DefaultAmount:        comp.DefaultAmount,
			DefaultPercent:       comp.DefaultPercent,
			Formula:              comp.Formula,
		})
	}
	if cfg.BasicComponentCode == "" {
		return engine.PayrollPolicyConfig{}, policyerrors.ErrNoBasicComponent
	}

	records, err := s.repo.FindCurrentSalaryRecords(ctx, companyID, asOf)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}
	recordIDs := make([]uuid.UUID, 0, len(records))
	recordEmployee := make(map[uuid.UUID]uuid.UUID, len(records))
	for _, rec := range records {
		cfg.SalaryRecords[rec.EmployeeID] = engine.SalaryRecord{
			EmployeeID:  rec.EmployeeID,
			BasicSalary: rec.BasicSalary,
		}
		recordIDs = append(recordIDs, rec.ID)
		recordEmployee[rec.ID] = rec.EmployeeID
	}

	lines, err := s.repo.FindStructureLines(ctx, companyID, recordIDs)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}
	for _, line := range lines {
		employeeID, ok := recordEmployee[line.SalaryRecordID]
		if !ok {
			continue
		}
		cfg.StructureLines[employeeID] = append(cfg.StructureLines[employeeID], engine.SalaryStructureLine{
			ComponentCode: line.ComponentCode,
			Amount:        line.Amount,
		})
	}

	overrides, err := s.repo.FindOverrides(ctx, companyID, asOf)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}
	for _, ov := range overrides {
		cfg.Overrides = append(cfg.Overrides, engine.ComponentOverride{
			ComponentCode: ov.ComponentCode,
			Target:        engine.OverrideTarget(ov.Target),
			GradeID:       ov.GradeID,
			EmployeeID:    ov.EmployeeID,
			Kind:          engine.OverrideKind(ov.OverrideKind),
			Value:         ov.Value,
		})
	}

	payments, err := s.repo.FindAdHocPayments(ctx, companyID, period.Start, period.End)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}
	for _, p := range payments {
		cfg.AdHocPayments[p.EmployeeID] = append(cfg.AdHocPayments[p.EmployeeID], engine.AdHocPayment{
			ComponentCode: p.ComponentCode,
			Amount:        p.Amount,
		})
	}

	brackets, err := s.repo.FindTaxBrackets(ctx, companyID, asOf)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}
	if len(brackets) == 0 {
		return engine.PayrollPolicyConfig{}, policyerrors.ErrNoEffectiveTaxBrackets
	}
	for _, b := range brackets {
		cfg.Tax.Brackets = append(cfg.Tax.Brackets, engine.TaxBracket{
			Order:           b.BracketOrder,
			Min:             b.MinAmount,
			Max:             b.MaxAmount,
			RatePercent:     b.RatePercent,
			CumulativeAtMin: b.CumulativeAtMin,
		})
	}

	relief, err := s.repo.FindTaxRelief(ctx, companyID, asOf)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}
	if relief != nil {
		cfg.Tax.ReliefMode = engine.ReliefMode(relief.Mode)
		cfg.Tax.Relief = relief.Amount
	} else {
		cfg.Tax.ReliefMode = engine.ReliefNone
	}

	rates, err := s.repo.FindStatutoryRates(ctx, companyID, asOf)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}
	for _, r := range rates {
		cfg.StatutoryRates = append(cfg.StatutoryRates, engine.StatutoryRate{
			Tier:                r.Tier,
			EmployeeRatePercent: r.EmployeeRatePercent,
			EmployerRatePercent: r.EmployerRatePercent,
		})
	}

	otCfg, err := s.repo.FindOvertimeBonusConfig(ctx, companyID, asOf)
	if err != nil {
		return engine.PayrollPolicyConfig{}, mapRepositoryError(err)
	}
	if otCfg != nil {
		cfg.OvertimeBonus = &engine.OvertimeBonusTaxConfig{
			AnnualSalaryThreshold:         otCfg.AnnualSalaryThreshold,
			BasicPercentageThreshold:      otCfg.BasicPercentageThreshold,
			RateAboveThreshold:            otCfg.RateAboveThreshold,
			RateBelowThreshold:            otCfg.RateBelowThreshold,
			NonResidentOvertimeRate:       otCfg.NonResidentOvertimeRate,
			BonusBasicPercentageThreshold: otCfg.BonusBasicPercentageThreshold,
			BonusFlatRate:                 otCfg.BonusFlatRate,
			BonusExcessToPAYE:             otCfg.BonusExcessToPAYE,
			NonResidentBonusRate:          otCfg.NonResidentBonusRate,
		}
	}

	if err := cfg.Validate(); err != nil {
		s.logger.Warn("policy validation failed",
			zap.String("request_id", rid),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return engine.PayrollPolicyConfig{}, mapValidationError(err)
	}

	return cfg, nil
}

func mapValidationError(err error) error {
	switch {
	case errors.Is(err, engine.ErrMissingBasicComponent):
		return policyerrors.ErrNoBasicComponent
	case errors.Is(err, engine.ErrNoTaxBrackets):
		return policyerrors.ErrNoEffectiveTaxBrackets
	case errors.Is(err, engine.ErrBracketGap),
		errors.Is(err, engine.ErrBracketNotAnchored),
		errors.Is(err, engine.ErrBracketUnbounded):
		return policyerrors.ErrInvalidTaxBrackets
	case errors.Is(err, engine.ErrNoStatutoryRates):
		return policyerrors.ErrNoEffectiveStatutoryRates
	}
	return err
}

// invalidate drops every cached policy snapshot for a company. Policy writes
// are rare, so a SCAN is acceptable here.
func (s *service) invalidate(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	pattern := PolicyCacheKeyPrefix + companyID + ":*"
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		s.rdb.Del(ctx, iter.Val())
	}
}

func (s *service) CreateComponent(
	ctx context.Context,
	companyID string,
	req CreateComponentRequest,
) (ComponentResponse, error) {
	company, err := uuid.Parse(companyID)
	if err != nil {
		return ComponentResponse{}, err
	}
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return ComponentResponse{}, err
	}

	component := &PayComponent{
		ID:                   uuid.New(),
		CompanyID:            company,
		Code:                 req.Code,
		Name:                 req.Name,
		Type:                 req.Type,
		CalculationKind:      req.CalculationKind,
		IsBasic:              req.IsBasic,
		IsTaxable:            req.IsTaxable,
		IsProrated:           req.IsProrated,
		AffectsStatutoryBase: req.AffectsStatutoryBase,
		IsOvertime:           req.IsOvertime,
		IsBonus:              req.IsBonus,
		DefaultAmount:        req.DefaultAmount,
		DefaultPercent:       req.DefaultPercent,
		Formula:              req.Formula,
		SortOrder:            req.SortOrder,
		EffectiveFrom:        effectiveFrom,
	}

	if err := s.repo.CreateComponent(ctx, component); err != nil {
		return ComponentResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, companyID)
	return mapComponentToResponse(*component), nil
}

func (s *service) GetComponents(ctx context.Context, companyID string, asOf time.Time) ([]ComponentResponse, error) {
	components, err := s.repo.FindComponents(ctx, companyID, asOf)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]ComponentResponse, len(components))
	for i, comp := range components {
		res[i] = mapComponentToResponse(comp)
	}
	return res, nil
}

func (s *service) CreateSalaryRecord(
	ctx context.Context,
	companyID string,
	req CreateSalaryRecordRequest,
) (SalaryRecordResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	company, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryRecordResponse{}, err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryRecordResponse{}, err
	}
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return SalaryRecordResponse{}, err
	}

	record := &SalaryRecord{
		ID:            uuid.New(),
		CompanyID:     company,
		EmployeeID:    employeeID,
		BasicSalary:   req.BasicSalary,
		EffectiveDate: effectiveDate,
	}
	if err := qtx.CreateSalaryRecord(ctx, record); err != nil {
		return SalaryRecordResponse{}, mapRepositoryError(err)
	}

	lines := make([]SalaryStructureLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = SalaryStructureLine{
			ID:             uuid.New(),
			CompanyID:      company,
			SalaryRecordID: record.ID,
			ComponentCode:  l.ComponentCode,
			Amount:         l.Amount,
		}
	}
	if err := qtx.CreateStructureLines(ctx, lines); err != nil {
		return SalaryRecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryRecordResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return SalaryRecordResponse{
		ID:            record.ID.String(),
		EmployeeID:    record.EmployeeID.String(),
		BasicSalary:   record.BasicSalary,
		EffectiveDate: record.EffectiveDate.Format("2006-01-02"),
	}, nil
}

func (s *service) CreateOverride(
	ctx context.Context,
	companyID string,
	req CreateOverrideRequest,
) (OverrideResponse, error) {
	company, err := uuid.Parse(companyID)
	if err != nil {
		return OverrideResponse{}, err
	}
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return OverrideResponse{}, err
	}

	override := &ComponentOverride{
		ID:            uuid.New(),
		CompanyID:     company,
		ComponentCode: req.ComponentCode,
		Target:        req.Target,
		OverrideKind:  req.OverrideKind,
		Value:         req.Value,
		EffectiveFrom: effectiveFrom,
	}
	if req.GradeID != nil {
		gradeID, err := uuid.Parse(*req.GradeID)
		if err != nil {
			return OverrideResponse{}, err
		}
		override.GradeID = &gradeID
	}
	if req.EmployeeID != nil {
		employeeID, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return OverrideResponse{}, err
		}
		override.EmployeeID = &employeeID
	}

	if err := s.repo.CreateOverride(ctx, override); err != nil {
		return OverrideResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, companyID)
	return mapOverrideToResponse(*override), nil
}

func (s *service) CreateAdHocPayment(
	ctx context.Context,
	companyID string,
	req CreateAdHocPaymentRequest,
) (AdHocPaymentResponse, error) {
	company, err := uuid.Parse(companyID)
	if err != nil {
		return AdHocPaymentResponse{}, err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AdHocPaymentResponse{}, err
	}
	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return AdHocPaymentResponse{}, err
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return AdHocPaymentResponse{}, err
	}

	payment := &AdHocPayment{
		ID:            uuid.New(),
		CompanyID:     company,
		EmployeeID:    employeeID,
		ComponentCode: req.ComponentCode,
		Amount:        req.Amount,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Reason:        req.Reason,
	}
	if err := s.repo.CreateAdHocPayment(ctx, payment); err != nil {
		return AdHocPaymentResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, companyID)
	return AdHocPaymentResponse{
		ID:            payment.ID.String(),
		EmployeeID:    payment.EmployeeID.String(),
		ComponentCode: payment.ComponentCode,
		Amount:        payment.Amount,
		PeriodStart:   payment.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     payment.PeriodEnd.Format("2006-01-02"),
		Reason:        payment.Reason,
	}, nil
}

func (s *service) SetTaxBrackets(
	ctx context.Context,
	companyID string,
	req SetTaxBracketsRequest,
) ([]TaxBracketResponse, error) {
	company, err := uuid.Parse(companyID)
	if err != nil {
		return nil, err
	}
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return nil, err
	}

	engineBrackets := make([]engine.TaxBracket, len(req.Brackets))
	entities := make([]TaxBracket, len(req.Brackets))
	for i, b := range req.Brackets {
		engineBrackets[i] = engine.TaxBracket{
			Order:           i + 1,
			Min:             b.MinAmount,
			Max:             b.MaxAmount,
			RatePercent:     b.RatePercent,
			CumulativeAtMin: b.CumulativeAtMin,
		}
		entities[i] = TaxBracket{
			ID:              uuid.New(),
			CompanyID:       company,
			BracketOrder:    i + 1,
			MinAmount:       b.MinAmount,
			MaxAmount:       b.MaxAmount,
			RatePercent:     b.RatePercent,
			CumulativeAtMin: b.CumulativeAtMin,
			EffectiveFrom:   effectiveFrom,
		}
	}

	// Reject malformed tables before touching storage.
	if err := engine.ValidateBrackets(engineBrackets); err != nil {
		return nil, mapValidationError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.ReplaceTaxBrackets(ctx, companyID, effectiveFrom, entities); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, companyID)

	res := make([]TaxBracketResponse, len(entities))
	for i, e := range entities {
		res[i] = TaxBracketResponse{
			Order:           e.BracketOrder,
			MinAmount:       e.MinAmount,
			MaxAmount:       e.MaxAmount,
			RatePercent:     e.RatePercent,
			CumulativeAtMin: e.CumulativeAtMin,
		}
	}
	return res, nil
}

func (s *service) CreateStatutoryRate(
	ctx context.Context,
	companyID string,
	req CreateStatutoryRateRequest,
) (StatutoryRateResponse, error) {
	company, err := uuid.Parse(companyID)
	if err != nil {
		return StatutoryRateResponse{}, err
	}
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return StatutoryRateResponse{}, err
	}

	rate := &StatutoryRate{
		ID:                  uuid.New(),
		CompanyID:           company,
		Tier:                req.Tier,
		EmployeeRatePercent: req.EmployeeRatePercent,
		EmployerRatePercent: req.EmployerRatePercent,
		EffectiveFrom:       effectiveFrom,
	}
	if err := s.repo.CreateStatutoryRate(ctx, rate); err != nil {
		return StatutoryRateResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, companyID)
	return StatutoryRateResponse{
		ID:                  rate.ID.String(),
		Tier:                rate.Tier,
		EmployeeRatePercent: rate.EmployeeRatePercent,
		EmployerRatePercent: rate.EmployerRatePercent,
		EffectiveFrom:       rate.EffectiveFrom.Format("2006-01-02"),
	}, nil
}

func mapComponentToResponse(comp PayComponent) ComponentResponse {
	return ComponentResponse{
		ID:                   comp.ID.String(),
		Code:                 comp.Code,
		Name:                 comp.Name,
		Type:                 comp.Type,
		CalculationKind:      comp.CalculationKind,
		IsBasic:              comp.IsBasic,
		IsTaxable:            comp.IsTaxable,
		IsProrated:           comp.IsProrated,
		AffectsStatutoryBase: comp.AffectsStatutoryBase,
		IsOvertime:           comp.IsOvertime,
		IsBonus:              comp.IsBonus,
		DefaultAmount:        comp.DefaultAmount,
		DefaultPercent:       comp.DefaultPercent,
		Formula:              comp.Formula,
		SortOrder:            comp.SortOrder,
		EffectiveFrom:        comp.EffectiveFrom.Format("2006-01-02"),
	}
}

func mapOverrideToResponse(ov ComponentOverride) OverrideResponse {
	res := OverrideResponse{
		ID:            ov.ID.String(),
		ComponentCode: ov.ComponentCode,
		Target:        ov.Target,
		OverrideKind:  ov.OverrideKind,
		Value:         ov.Value,
		EffectiveFrom: ov.EffectiveFrom.Format("2006-01-02"),
	}
	if ov.GradeID != nil {
		id := ov.GradeID.String()
		res.GradeID = &id
	}
	if ov.EmployeeID != nil {
		id := ov.EmployeeID.String()
		res.EmployeeID = &id
	}
	return res
}
