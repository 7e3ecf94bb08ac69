// Package router wires services and handlers into the Gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fintrack/internal/docs" // Import swagger docs
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// entryRoutes mounts the CRUD routes of one entry handler.
type entryRoutes interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// New builds the API engine on top of db.
func New(db *gorm.DB) *gin.Engine {
	validator.Register()

	// Initialize services
	userService := services.NewUserService(db)
	statusService := services.NewFinancialStatusService(db)
	tipService := services.NewTipService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	adminHandler := handlers.NewAdminHandler(userService, auditService)
	statusHandler := handlers.NewFinancialStatusHandler(statusService, auditService)
	tipHandler := handlers.NewTipHandler(tipService, auditService)

	entries := map[string]entryRoutes{
		"/income-sources": handlers.NewEntryHandler[models.IncomeSource, handlers.IncomeSourceRequest](
			services.NewEntryService[models.IncomeSource](db), auditService, "income_source"),
		"/debts": handlers.NewEntryHandler[models.Debt, handlers.DebtRequest](
			services.NewEntryService[models.Debt](db), auditService, "debt"),
		"/monthly-expenses": handlers.NewEntryHandler[models.MonthlyExpense, handlers.MonthlyExpenseRequest](
			services.NewEntryService[models.MonthlyExpense](db), auditService, "monthly_expense"),
		"/savings": handlers.NewEntryHandler[models.SavingsPlan, handlers.SavingsPlanRequest](
			services.NewEntryService[models.SavingsPlan](db), auditService, "savings_plan"),
		"/financial-goals": handlers.NewEntryHandler[models.FinancialGoal, handlers.FinancialGoalRequest](
			services.NewEntryService[models.FinancialGoal](db), auditService, "financial_goal"),
		"/investments": handlers.NewEntryHandler[models.Investment, handlers.InvestmentRequest](
			services.NewEntryService[models.Investment](db), auditService, "investment"),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/two-factor", authHandler.UpdateTwoFactor)

	status := protected.Group("/financial-status")
	status.POST("", statusHandler.Create)
	status.GET("", statusHandler.Get)
	status.PUT("", statusHandler.Update)
	status.DELETE("", statusHandler.Delete)
	status.GET("/summary", statusHandler.Summary)
	status.POST("/recalculate", statusHandler.Recalculate)

	for path, h := range entries {
		g := protected.Group(path)
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	tips := protected.Group("/tips")
	tips.GET("", tipHandler.ListTips)
	tips.GET("/:id", tipHandler.GetTip)
	tips.POST("", middleware.AdminOnly(), tipHandler.CreateTip)
	tips.PUT("/:id", middleware.AdminOnly(), tipHandler.UpdateTip)
	tips.DELETE("/:id", middleware.AdminOnly(), tipHandler.DeleteTip)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/active", adminHandler.SetActive)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	return router
}

// cors allows browser clients on any origin.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
