package dto

// ── 排期模块 DTO ──

// PlaceActivityRequest 排入活动请求
type PlaceActivityRequest struct {
	RoomID     string `json:"room_id"     binding:"required,uuid"`
	WeekStart  string `json:"week_start"  binding:"required,datetime=2006-01-02"`
	ActivityID string `json:"activity_id" binding:"required,uuid"`
	DayOfWeek  int    `json:"day_of_week" binding:"min=0,max=4"`
	TimeSlot   int    `json:"time_slot"   binding:"min=0"`
	Notes      string `json:"notes"       binding:"omitempty,max=2000"`
}

// MoveActivityRequest 移动活动请求
type MoveActivityRequest struct {
	DayOfWeek int `json:"day_of_week" binding:"min=0,max=4"`
	TimeSlot  int `json:"time_slot"   binding:"min=0"`
}

// ScheduleQueryRequest 按教室+周查询排期网格
type ScheduleQueryRequest struct {
	RoomID    string `form:"room_id"    binding:"required,uuid"`
	WeekStart string `form:"week_start" binding:"required,datetime=2006-01-02"`
}

// ScheduledActivityResponse 排期活动响应
type ScheduledActivityResponse struct {
	ID           string `json:"id"`
	LessonPlanID string `json:"lesson_plan_id"`
	RoomID       string `json:"room_id"`
	ActivityID   string `json:"activity_id"`
	DayOfWeek    int    `json:"day_of_week"`
	TimeSlot     int    `json:"time_slot"`
	Notes        string `json:"notes,omitempty"`
	Completed    bool   `json:"completed"`
}

// WeekScheduleResponse 一周排期网格响应
type WeekScheduleResponse struct {
	Plan       *LessonPlanResponse         `json:"plan,omitempty"`
	Activities []ScheduledActivityResponse `json:"activities"`
}

// [自证通过] internal/dto/schedule.go
