package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/furnikart/FurniBargain/controllers"
	"github.com/furnikart/FurniBargain/middleware"
)

// RouterDeps carries the external pieces the router wires into middleware.
type RouterDeps struct {
	Redis            *redis.Client
	ContributeLimit  int
	ContributeWindow time.Duration
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(deps RouterDeps) *gin.Engine {
	router := gin.Default()

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/v1")
	{
		initBargainRoutes(api, deps)
		initAdminRoutes(api)
	}

	return router
}

func initBargainRoutes(api *gin.RouterGroup, deps RouterDeps) {
	bargains := api.Group("/bargains")
	bargains.Use(middleware.ParticipantMiddleware())
	{
		bargains.POST("", controllers.CreateBargain)
		bargains.GET("", controllers.ListMyBargains)
		bargains.GET("/:id", controllers.GetBargain)
		bargains.GET("/:id/contributions", controllers.ListBargainContributions)
		bargains.POST("/:id/contributions",
			middleware.ContributeRateLimiter(deps.Redis, deps.ContributeLimit, deps.ContributeWindow),
			controllers.ContributeToBargain)
		bargains.POST("/:id/deal", controllers.DealBargain)
		bargains.POST("/:id/cancel", controllers.CancelBargain)
	}
}

func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/bargains", controllers.AdminListBargains)
		admin.GET("/bargains/summary", controllers.AdminBargainSummary)
		admin.GET("/bargains/report/excel", controllers.DownloadBargainReportExcel)
		admin.GET("/bargains/report/pdf", controllers.DownloadBargainReportPDF)
	}
}
