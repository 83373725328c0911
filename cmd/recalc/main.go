package main

import (
	"payslip-portal/internal/app"
	"payslip-portal/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunRecalc(); err != nil {
		logger.Fatal("run recalc failed", zap.Error(err))
	}
}
