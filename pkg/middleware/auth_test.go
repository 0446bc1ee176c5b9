package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/pkg/jwt"
	"inkwell/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("user-123", "alice@example.com", "alice", "creator")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		identity := Identity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": identity.ID, "role": string(identity.Role)})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
	assert.Contains(t, w.Body.String(), "creator")
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidFormat(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "InvalidFormat token")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware_Anonymous(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(OptionalAuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		if Identity(c) == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": false})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestOptionalAuthMiddleware_WithToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("user-123", "alice@example.com", "alice", "editor")

	router := setupTestRouter()
	router.Use(OptionalAuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		identity := Identity(c)
		assert.NotNil(t, identity)
		c.JSON(http.StatusOK, gin.H{"role": string(identity.Role)})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "editor")
}

func TestRequireRoles(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	creatorToken, _ := jwtService.GenerateToken("user-1", "c@example.com", "creator1", "creator")
	editorToken, _ := jwtService.GenerateToken("user-2", "e@example.com", "editor1", "editor")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService))
	router.Use(RequireRoles(models.RoleEditor, models.RoleAdmin))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+creatorToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+editorToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
