package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewService(t *testing.T) {
	secretKey := "test-secret-key"
	service := NewService(secretKey)

	assert.NotNil(t, service)
	assert.Equal(t, []byte(secretKey), service.secretKey)
}

func TestGenerateToken(t *testing.T) {
	service := NewService("test-secret-key")

	token, err := service.GenerateToken("user-123", "alice@example.com", "alice", "creator")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateToken(t *testing.T) {
	service := NewService("test-secret-key")

	token, err := service.GenerateToken("user-123", "alice@example.com", "alice", "creator")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "creator", claims.Role)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	service := NewService("test-secret-key")

	_, err := service.ValidateToken("invalid-token")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service1 := NewService("secret-key-1")
	service2 := NewService("secret-key-2")

	token, err := service1.GenerateToken("user-123", "alice@example.com", "alice", "editor")
	assert.NoError(t, err)

	_, err = service2.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expiration(t *testing.T) {
	service := NewService("test-secret-key")

	token, err := service.GenerateToken("user-123", "alice@example.com", "alice", "creator")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims.ExpiresAt)
	assert.True(t, time.Now().Before(claims.ExpiresAt.Time))
}

func TestValidateToken_EmptyToken(t *testing.T) {
	service := NewService("test-secret-key")

	_, err := service.ValidateToken("")
	assert.Error(t, err)
}

func TestGenerateAndValidateToken_RoundTrip(t *testing.T) {
	service := NewService("test-secret-key")

	token, err := service.GenerateToken("user-456", "bob@example.com", "bob", "admin")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}
