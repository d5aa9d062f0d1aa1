package router

import (
	"net/http"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/config"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/fraud"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/handler"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/middleware"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, templates, static resources and the
// API surface. The classifier is passed in so tests can substitute a fake.
func SetupRouter(cfg *config.Config, db *gorm.DB, classifier fraud.Classifier, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	// Home -> login page
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title": "FraudGuard - Login",
		})
	})

	r.GET("/dashboard", func(c *gin.Context) {
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"title": "FraudGuard - Dashboard",
		})
	})

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.GET("/me", handler.GetMe)

	statsSvc := stats.New(db)

	expenseHandler := handler.NewExpenseHandler(db, statsSvc, cfg.App.PageSize)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(db, classifier, cfg.App.PageSize)
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/transactions/fraud", transactionHandler.ListFraud)

	dashboardHandler := handler.NewDashboardHandler(statsSvc, cfg.App.RecentLimit)
	protected.GET("/dashboard/stats", dashboardHandler.GetStats)
	protected.GET("/dashboard/recent", dashboardHandler.GetRecent)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
