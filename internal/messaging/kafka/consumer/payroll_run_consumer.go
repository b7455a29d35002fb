package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ekowhinson/HRMS-sub004/internal/events"
	"github.com/ekowhinson/HRMS-sub004/internal/payrollrun"
	payrollrunerrors "github.com/ekowhinson/HRMS-sub004/internal/payrollrun/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollRunRequested triggers payroll runs requested via Kafka, e.g.
// by a scheduler service. A period that is already covered commits the message
// and moves on, so redelivery never runs payroll twice.
func ConsumePayrollRunRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	runService payrollrun.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_run")
	log.Info("payroll run consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll run consumer stopped")
				return
			}
			log.Error("fetch payroll run message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_run_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		resp, err := runService.Trigger(ctx, event.CompanyID, event.RequestedBy, payrollrun.TriggerPayrollRunRequest{
			PeriodStart: event.PeriodStart,
			PeriodEnd:   event.PeriodEnd,
		})
		if err != nil {
			if errors.Is(err, payrollrunerrors.ErrPeriodOverlap) {
				log.Warn("payroll run already exists for period, skipping",
					zap.String("company_id", event.CompanyID),
					zap.String("period_start", event.PeriodStart),
					zap.String("period_end", event.PeriodEnd),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("trigger payroll run failed",
				zap.String("company_id", event.CompanyID),
				zap.String("period_start", event.PeriodStart),
				zap.String("period_end", event.PeriodEnd),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll run message failed", zap.Error(err))
			continue
		}

		log.Info("payroll run triggered from event",
			zap.String("run_id", resp.ID),
			zap.String("run_number", resp.RunNumber),
			zap.String("company_id", event.CompanyID),
		)
	}
}
