package app

import (
	"context"
	"os"
	"time"

	"payslip-portal/internal/payslip"
	"payslip-portal/internal/shared/connection"

	"go.uber.org/zap"
)

// RunRecalc repairs payslips whose net salary is zero or inconsistent with
// their components, then exits. Meant to run as a one-shot job after bulk
// imports from older spreadsheets.
func RunRecalc() error {
	logger := zap.L().Named("app.recalc")

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

	repo := payslip.NewRepository(gormDB)
	service := payslip.NewService(sqlDB, repo)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := service.FixZeroNetSalaries(ctx)
	if err != nil {
		return err
	}

	logger.Info("recalculation finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("fixed", result.Fixed),
		zap.Int("failed", result.Failed),
	)
	return nil
}
