package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/irfndi/stockpulse-go/internal/api/handlers"
	"github.com/irfndi/stockpulse-go/internal/logging"
	"github.com/irfndi/stockpulse-go/internal/metrics"
	"github.com/irfndi/stockpulse-go/internal/middleware"
)

// DatasetService is what the routes need from the dataset provider
type DatasetService interface {
	handlers.DatasetSource
	handlers.DatasetSnapshot
	handlers.DatasetRefresher
}

// Dependencies wires the router. DB and Redis may be nil.
type Dependencies struct {
	Dataset        DatasetService
	DB             handlers.HealthChecker
	Redis          handlers.HealthChecker
	Settings       handlers.Settings
	Logger         *logging.StandardLogger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AdminAPIKey    string
	AllowedOrigins []string
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TelemetryMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.SpanEnricher())
	router.Use(logging.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(deps.AllowedOrigins))

	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.Dataset, deps.DB, deps.Redis)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Dataset, deps.Settings, deps.Logger, deps.Metrics)
	datasetHandler := handlers.NewDatasetHandler(deps.Dataset, deps.Logger)
	admin := middleware.NewAdminMiddleware(deps.AdminAPIKey)

	// Health check endpoint
	router.GET("/health", middleware.HealthCheckTelemetryMiddleware(), healthHandler.HealthCheck)

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		api.GET("/symbols", analyticsHandler.GetSymbols)

		// Single-symbol series
		api.GET("/stock-data", analyticsHandler.GetStockData)
		api.GET("/price-history", analyticsHandler.GetPriceHistory)
		api.GET("/daily-returns", analyticsHandler.GetDailyReturns)
		api.GET("/volume-traded", analyticsHandler.GetVolumeTraded)
		api.GET("/returns-by-day", analyticsHandler.GetReturnsByDay)
		api.GET("/technical-indicators", analyticsHandler.GetTechnicalIndicators)
		api.GET("/backtested-signals", analyticsHandler.GetBacktestedSignals)
		api.GET("/summary", analyticsHandler.GetSummary)

		// Simulations
		api.GET("/simulate", analyticsHandler.Simulate)
		api.GET("/ifbought", analyticsHandler.IfBought)

		// Cross-sectional
		api.GET("/year-wise-growth", analyticsHandler.GetYearWiseGrowth)
		api.GET("/macd-heatmap", analyticsHandler.GetMACDHeatmap)
		api.GET("/volatility", analyticsHandler.GetVolatility)
		api.GET("/strength-score", analyticsHandler.GetStrengthScore)

		// Maintenance
		api.POST("/dataset/refresh", admin.RequireAdminAuth(), datasetHandler.Refresh)
	}
}
