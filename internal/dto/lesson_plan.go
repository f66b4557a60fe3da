package dto

// ── 周计划模块 DTO ──

// LessonPlanQueryRequest 按教室+周查询周计划
type LessonPlanQueryRequest struct {
	RoomID    string `form:"room_id"    binding:"required,uuid"`
	WeekStart string `form:"week_start" binding:"required,datetime=2006-01-02"`
}

// ReviewRequest 审批/驳回请求
// 驳回时 notes 必填由 Service 层校验（approve 可为空）
type ReviewRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

// LessonPlanResponse 周计划响应
type LessonPlanResponse struct {
	ID          string  `json:"id"`
	RoomID      string  `json:"room_id"`
	RoomName    string  `json:"room_name,omitempty"`
	WeekStart   string  `json:"week_start"`
	Status      string  `json:"status"`
	TeacherID   *string `json:"teacher_id,omitempty"`
	SubmittedBy *string `json:"submitted_by,omitempty"`
	SubmittedAt string  `json:"submitted_at,omitempty"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  string  `json:"approved_at,omitempty"`
	RejectedBy  *string `json:"rejected_by,omitempty"`
	RejectedAt  string  `json:"rejected_at,omitempty"`
	ReviewNotes string  `json:"review_notes,omitempty"`
}

// [自证通过] internal/dto/lesson_plan.go
