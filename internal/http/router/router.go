package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/moderation-backend/internal/config"
	"github.com/ignatzorin/moderation-backend/internal/domain/event"
	"github.com/ignatzorin/moderation-backend/internal/http/middleware"
	"github.com/ignatzorin/moderation-backend/internal/interface/http/handler"
)

// Handlers - все обработчики, которые монтирует роутер.
type Handlers struct {
	Health  *handler.HealthHandler
	Reports *handler.ReportHandler
	Admin   *handler.AdminModerationHandler
	WS      *handler.WSHandler
}

func SetupRouter(cfg *config.Config, tokens middleware.AccessTokenParser, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.GET("/ws", h.WS.Handle)

	auth := middleware.AuthMiddleware(tokens)

	reports := api.Group("/reports")
	reports.Use(auth)
	{
		reports.POST("", h.Reports.CreateReport)
	}

	admin := api.Group("/admin")
	admin.Use(auth, middleware.RequireRole(event.RoleAdmin), middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		admin.GET("/reports", h.Admin.ListReports)
		admin.GET("/reports/pending", h.Admin.ListPendingReports)
		admin.GET("/reports/count", h.Admin.CountReports)
		admin.GET("/reports/:id", middleware.UUIDValidator("id"), h.Admin.GetReport)

		admin.GET("/flagged/:type", h.Admin.ListFlagged)
		admin.GET("/flagged/:type/details", h.Admin.ListFlaggedDetails)

		entities := admin.Group("/entities/:type/:id", middleware.UUIDValidator("id"))
		{
			entities.GET("", h.Admin.GetEntity)
			entities.DELETE("", h.Admin.DeleteEntity)
			entities.POST("/dismiss", h.Admin.Dismiss)
			entities.POST("/review", h.Admin.MarkReviewed)
			entities.POST("/resolve", h.Admin.Resolve)
		}

		users := admin.Group("/users/:id", middleware.UUIDValidator("id"))
		{
			users.POST("/ban", h.Admin.BanUser)
			users.POST("/suspend", h.Admin.SuspendUser)
		}
	}

	return r
}
