package api

import (
	"errors"
	"net/http"

	"warranto-backend/internal/alert/scheduler"
	"warranto-backend/internal/alert/usecase"

	"github.com/gin-gonic/gin"
)

// AlertHandler exposes the notification settings, device registration and
// manual trigger surfaces
type AlertHandler struct {
	alertUsecase usecase.AlertUsecase
	scheduler    *scheduler.AlertScheduler
}

func NewAlertHandler(alertUsecase usecase.AlertUsecase, sched *scheduler.AlertScheduler) *AlertHandler {
	return &AlertHandler{
		alertUsecase: alertUsecase,
		scheduler:    sched,
	}
}

// TriggerNotificationCheck manually starts one scheduler run
// POST /api/notifications/trigger
func (h *AlertHandler) TriggerNotificationCheck(c *gin.Context) {
	summary, err := h.scheduler.TriggerNow(c.Request.Context())
	if errors.Is(err, scheduler.ErrRunInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Notification check triggered successfully",
		"tenants_processed": summary.TenantsProcessed,
		"channel_failures":  summary.ChannelFailures,
	})
}

// GetNotificationSettings returns a tenant's alert preferences
// GET /api/tenants/:tenantId/notification-settings
func (h *AlertHandler) GetNotificationSettings(c *gin.Context) {
	settings, err := h.alertUsecase.GetSettings(c.Param("tenantId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateNotificationSettings updates a tenant's alert preferences
// PUT /api/tenants/:tenantId/notification-settings
func (h *AlertHandler) UpdateNotificationSettings(c *gin.Context) {
	var req usecase.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.alertUsecase.UpdateSettings(c.Param("tenantId"), req)
	if errors.Is(err, usecase.ErrInvalidThreshold) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Notification settings updated successfully",
		"settings": settings,
	})
}

// RegisterDeviceTokenRequest represents the device registration body
type RegisterDeviceTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}

// RegisterDeviceToken upserts a device token for push notifications
// POST /api/tenants/:tenantId/device-tokens
func (h *AlertHandler) RegisterDeviceToken(c *gin.Context) {
	var req RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.alertUsecase.RegisterDeviceToken(c.Param("tenantId"), req.Token, req.Platform); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token registered successfully"})
}

// ListDeviceTokens returns a tenant's registered devices
// GET /api/tenants/:tenantId/device-tokens
func (h *AlertHandler) ListDeviceTokens(c *gin.Context) {
	tokens, err := h.alertUsecase.ListDeviceTokens(c.Param("tenantId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"device_tokens": tokens})
}

// ListExpiringWarranties returns the tenant's warranties classified as
// expiring soon, using the same classification the scheduler alerts on
// GET /api/tenants/:tenantId/warranties/expiring
func (h *AlertHandler) ListExpiringWarranties(c *gin.Context) {
	expiring, err := h.alertUsecase.ListExpiring(c.Param("tenantId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(expiring),
		"warranties": expiring,
	})
}
