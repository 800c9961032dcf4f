package api

import (
	"net/http"

	"warranto-backend/internal/alert/scheduler"
	"warranto-backend/internal/alert/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, alertUsecase usecase.AlertUsecase, sched *scheduler.AlertScheduler) {
	alertHandler := NewAlertHandler(alertUsecase, sched)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Operator surface: manual notification check
		notifications := api.Group("/notifications")
		{
			notifications.POST("/trigger", alertHandler.TriggerNotificationCheck)
		}

		// Tenant-scoped routes (authentication is handled upstream by the gateway)
		tenants := api.Group("/tenants/:tenantId")
		{
			tenants.GET("/notification-settings", alertHandler.GetNotificationSettings)
			tenants.PUT("/notification-settings", alertHandler.UpdateNotificationSettings)
			tenants.POST("/device-tokens", alertHandler.RegisterDeviceToken)
			tenants.GET("/device-tokens", alertHandler.ListDeviceTokens)
			tenants.GET("/warranties/expiring", alertHandler.ListExpiringWarranties)
		}
	}
}
