package main

import (
	"fmt"
	"net/http"
	"os"

	"tharwa/internal/config"
	"tharwa/internal/database"
	"tharwa/internal/handlers"
	"tharwa/internal/logger"
	"tharwa/internal/middleware"
	"tharwa/internal/services"
	"tharwa/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tharwa/internal/docs" // Import swagger docs
)

// @title           Tharwa API
// @version         1.0
// @description     Tharwa is a property-management backend for tracking off-plan investment payment schedules, short-term rentals, and portfolio performance.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	propertyService := services.NewPropertyService(db)
	investmentService := services.NewInvestmentService(db, propertyService)
	installmentService := services.NewInstallmentService(db, investmentService)
	bookingService := services.NewBookingService(db, propertyService)
	expenseService := services.NewExpenseService(db, propertyService)
	contractService := services.NewContractService(db, propertyService)
	remittanceService := services.NewRemittanceService(db)
	kpiService := services.NewKPIService(db, propertyService)
	exportService := services.NewExportService(db)

	// Initialize handlers
	propertyHandler := handlers.NewPropertyHandler(propertyService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	installmentHandler := handlers.NewInstallmentHandler(installmentService, auditService)
	bookingHandler := handlers.NewBookingHandler(bookingService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	contractHandler := handlers.NewContractHandler(contractService, auditService)
	remittanceHandler := handlers.NewRemittanceHandler(remittanceService, auditService)
	kpiHandler := handlers.NewKPIHandler(kpiService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Property routes
	properties := v1.Group("/properties")
	properties.POST("", propertyHandler.CreateProperty)
	properties.GET("", propertyHandler.GetProperties)
	properties.GET("/:id", propertyHandler.GetProperty)
	properties.PUT("/:id", propertyHandler.UpdateProperty)
	properties.DELETE("/:id", propertyHandler.DeleteProperty)
	properties.POST("/:id/bookings", bookingHandler.CreateBooking)
	properties.GET("/:id/bookings", bookingHandler.GetPropertyBookings)
	properties.POST("/:id/expenses", expenseHandler.CreateExpense)
	properties.GET("/:id/expenses", expenseHandler.GetPropertyExpenses)
	properties.GET("/:id/kpis", kpiHandler.GetPropertyKPIs)

	// Investment and installment routes
	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)
	investments.POST("/:id/schedule", investmentHandler.GenerateSchedule)
	investments.POST("/:id/installments", installmentHandler.AddInstallment)
	investments.DELETE("/:id/installments/:seq", installmentHandler.RemoveInstallment)
	investments.PUT("/:id/installments/:seq", installmentHandler.UpdatePercentage)
	investments.POST("/:id/installments/:seq/pay", installmentHandler.MarkPaid)
	investments.GET("/:id/next-payment", installmentHandler.NextPayment)

	// Portfolio routes
	portfolio := v1.Group("/portfolio")
	portfolio.GET("/summary", investmentHandler.GetPortfolioSummary)
	portfolio.GET("/kpis", kpiHandler.GetPortfolioKPIs)

	// Booking routes
	bookings := v1.Group("/bookings")
	bookings.PUT("/:id/status", bookingHandler.UpdateBookingStatus)
	bookings.DELETE("/:id", bookingHandler.DeleteBooking)

	// Expense routes
	expenses := v1.Group("/expenses")
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Tenancy contract routes
	contracts := v1.Group("/contracts")
	contracts.POST("", contractHandler.CreateContract)
	contracts.GET("", contractHandler.GetContracts)
	contracts.GET("/:id", contractHandler.GetContract)
	contracts.PUT("/:id/cheques/:chequeId", contractHandler.UpdateChequeStatus)
	contracts.DELETE("/:id", contractHandler.DeleteContract)

	// Tax remittance routes
	remittances := v1.Group("/remittances")
	remittances.POST("", remittanceHandler.CreateRemittance)
	remittances.GET("", remittanceHandler.GetRemittances)
	remittances.POST("/:id/remit", remittanceHandler.MarkRemitted)

	// Export routes
	exports := v1.Group("/exports")
	exports.GET("/investments.xlsx", exportHandler.ExportInvestmentsXLSX)
	exports.GET("/portfolio.pdf", exportHandler.ExportPortfolioPDF)

	log.Infof("Starting Tharwa backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
