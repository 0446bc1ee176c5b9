package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/handlers"
	"inkwell/pkg/cache"
	"inkwell/pkg/config"
	"inkwell/pkg/logger"
	"inkwell/pkg/queue"

	"github.com/redis/go-redis/v9"
)

const (
	notificationKeep = 100
	notificationTTL  = 30 * 24 * time.Hour
)

// The notifier drains the notification queue and materializes per-user
// notification lists in redis for the API to serve.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}

	err = queueClient.ConsumeNotificationTasks(func(task map[string]interface{}) error {
		return handleTask(redisClient, log, task)
	})
	if err != nil {
		log.Error("Failed to start consumer: %v", err)
		panic(err)
	}

	if backlog, err := queueClient.GetQueueLength(); err != nil {
		log.Warn("Failed to inspect queue backlog: %v", err)
	} else {
		log.Info("Notifier started, %d tasks pending", backlog)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notifier...")

	queueClient.Close()
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing redis: %v", err)
	}
}

func handleTask(redisClient *redis.Client, log *logger.Logger, task map[string]interface{}) error {
	authorID, _ := task["authorId"].(string)
	if authorID == "" {
		log.Warn("Dropping task without authorId: %+v", task)
		return nil
	}

	notification := buildNotification(authorID, task)

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshaling notification: %w", err)
	}

	ctx := context.Background()
	key := handlers.NotificationKey(authorID)
	if err := redisClient.LPush(ctx, key, body).Err(); err != nil {
		return fmt.Errorf("storing notification: %w", err)
	}
	redisClient.LTrim(ctx, key, 0, notificationKeep-1)
	redisClient.Expire(ctx, key, notificationTTL)

	// Pub/sub channel for clients listening in real time
	redisClient.Publish(ctx, key, body)

	log.Info("Stored %s notification for user %s", notification.Type, authorID)
	return nil
}

func buildNotification(authorID string, task map[string]interface{}) handlers.Notification {
	kind, _ := task["type"].(string)
	workID, _ := task["workId"].(string)

	switch kind {
	case "review_decision":
		decision, _ := task["decision"].(string)
		feedback, _ := task["feedback"].(string)
		return handlers.Notification{
			UserID:  authorID,
			Title:   "Your work was reviewed",
			Message: fmt.Sprintf("An editor %s your work.", decision),
			Type:    kind,
			Data: map[string]interface{}{
				"workId":   workID,
				"decision": decision,
				"feedback": feedback,
			},
		}
	case "work_liked":
		username, _ := task["username"].(string)
		return handlers.Notification{
			UserID:  authorID,
			Title:   "New like",
			Message: fmt.Sprintf("%s liked your work.", username),
			Type:    kind,
			Data:    map[string]interface{}{"workId": workID},
		}
	default:
		return handlers.Notification{
			UserID:  authorID,
			Title:   "Notification",
			Message: "You have a new notification.",
			Type:    kind,
			Data:    map[string]interface{}{"workId": workID},
		}
	}
}
