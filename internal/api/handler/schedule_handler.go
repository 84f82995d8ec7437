package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/service"
	"github.com/fadiapc/2026-Dashboard-BKD/pkg/response"
)

// ScheduleHandler 排课位模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// FillSchedule 认领排课位
// PUT /schedules/:id/fill
func (h *ScheduleHandler) FillSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排课位ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Fill(c.Request.Context(), id, callerID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ClearSchedule 释放排课位
// PUT /schedules/:id/clear
func (h *ScheduleHandler) ClearSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排课位ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Clear(c.Request.Context(), id, callerID, callerRole); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleScheduleError 统一处理排课位模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 15001, "排课位不存在")
	case errors.Is(err, service.ErrScheduleTaken):
		response.Conflict(c, 15002, "排课位已被认领")
	case errors.Is(err, service.ErrScheduleNotOwner):
		response.Unauthorized(c, 15003, "只能释放自己认领的排课位")
	default:
		response.InternalError(c)
	}
}
