package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ekowhinson/HRMS-sub004/internal/employee"
	"github.com/ekowhinson/HRMS-sub004/internal/events"
	"github.com/ekowhinson/HRMS-sub004/internal/messaging/kafka"
	"github.com/ekowhinson/HRMS-sub004/internal/messaging/kafka/consumer"
	"github.com/ekowhinson/HRMS-sub004/internal/payrollrun"
	"github.com/ekowhinson/HRMS-sub004/internal/policy"
	"github.com/ekowhinson/HRMS-sub004/internal/shared/connection"
	"github.com/ekowhinson/HRMS-sub004/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer listens for payroll run requests on Kafka and triggers them.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	policyRepo := policy.NewRepository(gormDB)
	runRepo := payrollrun.NewRepository(gormDB)

	policyService := policy.NewService(sqlDB, policyRepo, nil)
	runService := payrollrun.NewServiceWithOutbox(
		sqlDB, runRepo, employeeRepo, policyService, counterRepo, outboxRepo, payrollWorkers(),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayrollRunRequestedTopic,
		GroupID:        "payroll-engine-run-trigger",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollRunRequested(ctx, reader, runService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
