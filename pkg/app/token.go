package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "fast-note-pad"

// UserTokenKey is the gin.Context key holding the verified *UserEntity
// UserTokenKey gin.Context 中保存已验证用户的键
const UserTokenKey = "user_token"

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	SecretKey    string        `yaml:"secret-key"`    // JWT 签名密钥
	Expiry       time.Duration `yaml:"expiry"`        // Token 过期时间，默认 7 天
	Issuer       string        `yaml:"issuer"`        // Token 签发者
	MachineBound bool          `yaml:"machine-bound"` // 密钥是否绑定本机 ID
}

// TokenManager 定义 Token 管理接口
type TokenManager interface {
	Generate(uid, ip string) (string, error)
	Parse(token string) (*UserEntity, error)
	Validate(token string) error
}

// tokenManager 实现 TokenManager 接口
type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.Expiry == 0 {
		cfg.Expiry = 7 * 24 * time.Hour // 默认 7 天
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// UserEntity represents the owner identity carried by the JWT.
// UID is the opaque owner id notes are scoped by.
type UserEntity struct {
	UID string `json:"uid"`
	IP  string `json:"ip,omitempty"`
	jwt.RegisteredClaims
}

func (t *tokenManager) signingKey() []byte {
	if t.config.MachineBound {
		return []byte(t.config.SecretKey + "_" + util.GetMachineID())
	}
	return []byte(t.config.SecretKey)
}

// Generate 生成一个新的 JWT Token
func (t *tokenManager) Generate(uid, ip string) (string, error) {
	if strings.TrimSpace(uid) == "" {
		return "", fmt.Errorf("uid is required")
	}
	now := time.Now()
	claims := &UserEntity{
		UID: uid,
		IP:  ip,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   "user-token",
			ID:        uid,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.signingKey())
}

// Parse 解析 JWT Token 并返回用户信息
func (t *tokenManager) Parse(token string) (*UserEntity, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	claims := &UserEntity{}

	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.signingKey(), nil
	})
	if err != nil {
		return nil, err
	}

	if !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UID == "" {
		return nil, fmt.Errorf("token carries no uid")
	}

	return claims, nil
}

// Validate 验证 Token 是否有效
func (t *tokenManager) Validate(token string) error {
	_, err := t.Parse(token)
	return err
}

// GetUID extracts the owner id from the request context; empty when unauthenticated.
func GetUID(ctx *gin.Context) (out string) {
	user, exist := ctx.Get(UserTokenKey)
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}

// GetIP extracts the user IP from the request context.
func GetIP(ctx *gin.Context) (out string) {
	user, exist := ctx.Get(UserTokenKey)
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.IP
		}
	}
	return
}
