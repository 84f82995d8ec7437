package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/service"
	"github.com/fadiapc/2026-Dashboard-BKD/pkg/response"
)

// HomeHandler 健康检查与演示数据处理器
type HomeHandler struct {
	seedSvc service.SeedService
}

// NewHomeHandler 创建 HomeHandler
func NewHomeHandler(seedSvc service.SeedService) *HomeHandler {
	return &HomeHandler{seedSvc: seedSvc}
}

// Ping 健康检查
// GET /ping
func (h *HomeHandler) Ping(c *gin.Context) {
	response.OK(c, gin.H{"message": "pong"})
}

// Seed 生成演示数据
// POST /seed
func (h *HomeHandler) Seed(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.seedSvc.Seed(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}
