package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tharwa/internal/handlers"
	"tharwa/internal/logger"
	"tharwa/internal/middleware"
	"tharwa/internal/models"
	"tharwa/internal/services"
	"tharwa/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Property{},
		&models.Investment{},
		&models.Installment{},
		&models.Booking{},
		&models.Expense{},
		&models.TenancyContract{},
		&models.Cheque{},
		&models.TaxRemittance{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
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

	// Handlers
	propertyHandler := handlers.NewPropertyHandler(propertyService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	installmentHandler := handlers.NewInstallmentHandler(installmentService, auditService)
	bookingHandler := handlers.NewBookingHandler(bookingService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	contractHandler := handlers.NewContractHandler(contractService, auditService)
	remittanceHandler := handlers.NewRemittanceHandler(remittanceService, auditService)
	kpiHandler := handlers.NewKPIHandler(kpiService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

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

	portfolio := v1.Group("/portfolio")
	portfolio.GET("/summary", investmentHandler.GetPortfolioSummary)
	portfolio.GET("/kpis", kpiHandler.GetPortfolioKPIs)

	bookings := v1.Group("/bookings")
	bookings.PUT("/:id/status", bookingHandler.UpdateBookingStatus)
	bookings.DELETE("/:id", bookingHandler.DeleteBooking)

	expenses := v1.Group("/expenses")
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	contracts := v1.Group("/contracts")
	contracts.POST("", contractHandler.CreateContract)
	contracts.GET("", contractHandler.GetContracts)
	contracts.GET("/:id", contractHandler.GetContract)
	contracts.PUT("/:id/cheques/:chequeId", contractHandler.UpdateChequeStatus)
	contracts.DELETE("/:id", contractHandler.DeleteContract)

	remittances := v1.Group("/remittances")
	remittances.POST("", remittanceHandler.CreateRemittance)
	remittances.GET("", remittanceHandler.GetRemittances)
	remittances.POST("/:id/remit", remittanceHandler.MarkRemitted)

	exports := v1.Group("/exports")
	exports.GET("/investments.xlsx", exportHandler.ExportInvestmentsXLSX)
	exports.GET("/portfolio.pdf", exportHandler.ExportPortfolioPDF)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createProperty registers a property and returns its ID.
func (app *testApp) createProperty(t *testing.T, name string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"emirate":"Dubai","developer":"Emaar","purpose":"off_plan","purchase_price":1000000}`, name)
	rec := app.request("POST", "/api/v1/properties", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create property failed: %d %s", rec.Code, rec.Body.String())
	}
	property := parseJSON(t, rec)["property"].(map[string]interface{})
	return property["id"].(float64)
}

// createInvestment records an investment on a property and returns its ID.
func (app *testApp) createInvestment(t *testing.T, propertyID float64, basePrice int64) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"property_id":%.0f,"base_price":%d,"land_dept_fee_percent":4,"admin_fees":2000}`, propertyID, basePrice)
	rec := app.request("POST", "/api/v1/investments", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create investment failed: %d %s", rec.Code, rec.Body.String())
	}
	investment := parseJSON(t, rec)["investment"].(map[string]interface{})
	return investment["id"].(float64)
}
