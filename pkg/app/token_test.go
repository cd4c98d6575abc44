package app

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "user-secret", Expiry: time.Hour, Issuer: "test-issuer"})

	token, err := tm.Generate("u1", "127.0.0.1")
	require.NoError(t, err)

	user, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UID)
	assert.Equal(t, "127.0.0.1", user.IP)
	assert.Equal(t, "test-issuer", user.Issuer)

	// Bearer 前缀同样可以解析
	user, err = tm.Parse("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UID)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "user-secret", Expiry: time.Hour})

	_, err := tm.Generate("", "")
	assert.Error(t, err)

	token, err := tm.Generate("u1", "")
	require.NoError(t, err)

	// 错误的密钥
	other := NewTokenManager(TokenConfig{SecretKey: "wrong-secret", Expiry: time.Hour})
	assert.Error(t, other.Validate(token))

	// 篡改后的 Token
	assert.Error(t, tm.Validate(token+"tampered"))

	// 过期的 Token
	expired := NewTokenManager(TokenConfig{SecretKey: "user-secret", Expiry: -time.Minute})
	old, err := expired.Generate("u1", "")
	require.NoError(t, err)
	assert.Error(t, tm.Validate(old))
}

func TestGetUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetUID(c))

	c.Set(UserTokenKey, &UserEntity{UID: "u9", IP: "10.0.0.1"})
	assert.Equal(t, "u9", GetUID(c))
	assert.Equal(t, "10.0.0.1", GetIP(c))
}
