package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Notification is the payload stored per user by the notifier worker.
type Notification struct {
	UserID  string                 `json:"userId"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// NotificationKey is the redis list holding a user's recent notifications,
// newest first. The notifier worker writes it, this handler reads it.
func NotificationKey(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

type NotificationHandler struct {
	redis  *redis.Client
	logger *logger.Logger
}

func NewNotificationHandler(redisClient *redis.Client, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{redis: redisClient, logger: logger}
}

// GetNotifications godoc
// @Summary      Recent notifications
// @Description  Returns the caller's most recent notifications, newest first. Empty when the notifier worker is not running.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of notifications to return (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	identity := middleware.Identity(c)

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	notifications := []Notification{}
	if h.redis != nil {
		raw, err := h.redis.LRange(c.Request.Context(), NotificationKey(identity.ID), 0, int64(limit-1)).Result()
		if err != nil && err != redis.Nil {
			h.logger.Error("Failed to fetch notifications for user %s: %v", identity.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		for _, item := range raw {
			var n Notification
			if err := json.Unmarshal([]byte(item), &n); err != nil {
				continue
			}
			notifications = append(notifications, n)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}
