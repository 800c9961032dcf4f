package api

import (
	"warranto-backend/internal/alert/scheduler"
	"warranto-backend/internal/alert/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	router *gin.Engine
}

func NewHandler(alertUsecase usecase.AlertUsecase, sched *scheduler.AlertScheduler) *Handler {
	router := gin.Default()
	SetupRoutes(router, alertUsecase, sched)
	return &Handler{router: router}
}

// Start runs the HTTP server (blocking)
func (h *Handler) Start(addr string) error {
	return h.router.Run(addr)
}
