package main

import (
	"os"

	"leasebackend/internal/database"
	"leasebackend/internal/handler"
	"leasebackend/internal/middleware"
	"leasebackend/internal/notify"
	"leasebackend/internal/repository"
	"leasebackend/internal/scheduler"
	"leasebackend/internal/service"
	"leasebackend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func main() {
	// Environment variables alone are fine when the file is absent
	_ = godotenv.Load("configs/.env")

	log := newLogger()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "lease")
	dbSslMode := getEnv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn, log)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Info("Connected to PostgreSQL successfully")

	// WebSocket hub pushes ledger events to the desktop UI
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repository -> Service -> Handler
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	contractRepo := repository.NewContractRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	vatRepo := repository.NewVATRepository(db)
	taxDiffRepo := repository.NewTaxDiffRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	contractService := service.NewContractService(contractRepo, auditRepo, txManager, log)
	accountingService := service.NewAccountingService(
		contractRepo, paymentRepo, incomeRepo, vatRepo, taxDiffRepo,
		invoiceRepo, auditRepo, txManager, wsHub, log)
	paymentService := service.NewPaymentService(
		paymentRepo, contractRepo, auditRepo, accountingService, txManager, wsHub, log)
	vatService := service.NewVATService(vatRepo, auditRepo, log)
	depositService := service.NewDepositService(depositRepo, contractRepo, auditRepo, log)

	userHandler := handler.NewUserHandler(userService)
	contractHandler := handler.NewContractHandler(contractService)
	accountingHandler := handler.NewAccountingHandler(accountingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	vatHandler := handler.NewVATHandler(vatService)
	depositHandler := handler.NewDepositHandler(depositService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// Quarterly stamp duty declaration reminder
	emailSender := notify.NewSender(log)
	cronRunner := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	reminder := scheduler.NewStampDutyReminder(contractRepo, accountingService, emailSender, log)
	if err := reminder.Start(cronRunner); err != nil {
		log.Fatalf("Scheduler setup failed: %v", err)
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	userHandler.RegisterRoutes(router.Group(""))
	contractHandler.RegisterRoutes(router.Group(""))
	accountingHandler.RegisterRoutes(router.Group(""))
	paymentHandler.RegisterRoutes(router.Group(""))
	vatHandler.RegisterRoutes(router.Group(""))
	depositHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := getEnv("PORT", "8080")
	log.Infof("Starting server on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
