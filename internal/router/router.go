package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"faktura/internal/config"
	"faktura/internal/handler"
	"faktura/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	invoiceH *handler.InvoiceHandler,
	clientH *handler.ClientHandler,
	settingsH *handler.SettingsHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Invoice routes
	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/export", invoiceH.Export)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PUT("/:id", invoiceH.Update)
	invoices.DELETE("/:id", invoiceH.Delete)
	invoices.POST("/:id/status", invoiceH.ChangeStatus)
	invoices.POST("/:id/duplicate", invoiceH.Duplicate)
	invoices.GET("/:id/pdf", invoiceH.DownloadPDF)
	invoices.POST("/:id/send", invoiceH.Send)

	// Client register
	clients := v1.Group("/clients")
	clients.POST("", clientH.Create)
	clients.GET("", clientH.List)
	clients.GET("/:id", clientH.GetByID)
	clients.PUT("/:id", clientH.Update)
	clients.DELETE("/:id", clientH.Delete)
	clients.GET("/:id/stats", clientH.Stats)

	// Numbering series
	series := v1.Group("/series")
	series.GET("", settingsH.ListSeries)
	series.POST("", settingsH.CreateSeries)
	series.PUT("/:id", settingsH.UpdateSeries)
	series.GET("/:id/next-number", invoiceH.PreviewNextNumber)

	// Company details and bank accounts
	company := v1.Group("/company")
	company.GET("", settingsH.GetCompany)
	company.PUT("", settingsH.UpdateCompany)
	company.GET("/bank-accounts", settingsH.ListBankAccounts)
	company.POST("/bank-accounts", settingsH.CreateBankAccount)
	company.PUT("/bank-accounts/:id", settingsH.UpdateBankAccount)
	company.POST("/bank-accounts/:id/default", settingsH.SetDefaultBankAccount)
	company.DELETE("/bank-accounts/:id", settingsH.DeleteBankAccount)

	// Settings store
	settings := v1.Group("/settings")
	settings.GET("", settingsH.ListSettings)
	settings.PUT("/:key", settingsH.SetSetting)

	// Dashboard
	stats := v1.Group("/stats")
	stats.GET("", statsH.Dashboard)
	stats.GET("/monthly", statsH.MonthlyRevenue)
	stats.GET("/recent", statsH.RecentInvoices)

	// Tools
	v1.POST("/tools/amount-in-words", invoiceH.AmountInWords)

	return r
}
