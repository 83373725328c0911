package app

import (
	"database/sql"
	"os"

	"payslip-portal/internal/auth"
	"payslip-portal/internal/company"
	"payslip-portal/internal/designation"
	"payslip-portal/internal/document"
	"payslip-portal/internal/payslip"
	"payslip-portal/internal/shared/counter"
	"payslip-portal/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	designationRepo := designation.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	uploadRepo := upload.NewRepository(gormDB)

	documentStorage := document.NewLocalStorage(os.Getenv("DOCUMENT_STORAGE_DIR"))

	// --- Services ---
	authService := auth.NewService(authRepo)
	companyService := company.NewService(companyRepo)
	documentService := document.NewService(documentRepo, documentStorage)
	payslipService := payslip.NewService(db, payslipRepo)
	uploadService := upload.NewService(db, uploadRepo, payslipRepo, counterRepo)

	var designationService designation.Service
	if rdb != nil {
		designationService = designation.NewService(db, designationRepo, rdb)
	} else {
		designationService = designation.NewService(db, designationRepo)
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	designationHandler := designation.NewHandler(designationService)
	documentHandler := document.NewHandler(documentService)

	var payslipHandler *payslip.Handler
	var uploadHandler *upload.Handler
	if rdb != nil {
		payslipHandler = payslip.NewHandlerWithRedis(payslipService, rdb, logger)
		uploadHandler = upload.NewHandlerWithRedis(uploadService, rdb, logger)
	} else {
		payslipHandler = payslip.NewHandler(payslipService, logger)
		uploadHandler = upload.NewHandler(uploadService, logger)
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		designation.RegisterRoutes(api, designationHandler)
		document.RegisterRoutes(api, documentHandler)
		if rdb != nil {
			payslip.RegisterRoutes(api, payslipHandler, rdb)
			upload.RegisterRoutes(api, uploadHandler, rdb)
		} else {
			payslip.RegisterRoutes(api, payslipHandler)
			upload.RegisterRoutes(api, uploadHandler)
		}
	}

	return nil
}
