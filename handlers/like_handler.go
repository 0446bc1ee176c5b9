package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"inkwell/pkg/apperr"
	"inkwell/pkg/authz"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/models"
	"inkwell/pkg/queue"
	"inkwell/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const likeCountTTL = 10 * time.Minute

type LikeHandler struct {
	likeRepo repository.LikeRepository
	workRepo repository.WorkRepository
	redis    *redis.Client
	queue    *queue.Client
	logger   *logger.Logger
}

func NewLikeHandler(
	likeRepo repository.LikeRepository,
	workRepo repository.WorkRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) *LikeHandler {
	return &LikeHandler{
		likeRepo: likeRepo,
		workRepo: workRepo,
		redis:    redisClient,
		queue:    queueClient,
		logger:   logger,
	}
}

// GetLikes godoc
// @Summary      Like count of a work
// @Description  Returns the count and, for authenticated callers, whether they have liked the work.
// @Tags         likes
// @Produce      json
// @Param        id path string true "Work ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /works/{id}/likes [get]
func (h *LikeHandler) GetLikes(c *gin.Context) {
	identity := middleware.Identity(c)
	workID := c.Param("id")

	count, err := h.likeCount(c, workID)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Like"))
		return
	}

	liked := false
	if identity != nil {
		if _, err := h.likeRepo.Get(identity.ID, workID); err == nil {
			liked = true
		}
	}

	c.JSON(http.StatusOK, gin.H{"likeCount": count, "liked": liked})
}

// ToggleLike godoc
// @Summary      Toggle the caller's like
// @Description  Likes the work if not liked, removes the like otherwise. Only published works can be liked. A concurrent duplicate insert resolves to liked.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Work ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /works/{id}/likes [post]
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	identity := middleware.Identity(c)
	workID := c.Param("id")

	work, err := h.workRepo.GetByID(workID)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}
	if work.Status != models.WorkPublished {
		respondError(c, h.logger, apperr.NotFound("Work"))
		return
	}

	liked := false
	existing, err := h.likeRepo.Get(identity.ID, work.ID)
	switch {
	case err == nil:
		if err := h.likeRepo.Delete(existing.ID); err != nil {
			respondError(c, h.logger, storeErr(err, "Like"))
			return
		}
		h.adjustCachedCount(c, work.ID, -1)
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &models.Like{UserID: identity.ID, WorkID: work.ID}
		if err := h.likeRepo.Create(like); err != nil {
			// Lost the race against a concurrent like; the row exists, so
			// the caller's intent is satisfied.
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				respondError(c, h.logger, storeErr(err, "Like"))
				return
			}
		} else {
			h.adjustCachedCount(c, work.ID, 1)
			h.notifyLike(identity, work)
		}
		liked = true
	default:
		respondError(c, h.logger, storeErr(err, "Like"))
		return
	}

	count, err := h.likeRepo.CountByWork(work.ID)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Like"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likeCount": count})
}

// likeCount reads the cached count when redis is wired, falling back to the
// store on a miss and repopulating the key.
func (h *LikeHandler) likeCount(c *gin.Context, workID string) (int64, error) {
	key := likeCountKey(workID)
	if h.redis != nil {
		if count, err := h.redis.Get(c.Request.Context(), key).Int64(); err == nil {
			return count, nil
		}
	}

	count, err := h.likeRepo.CountByWork(workID)
	if err != nil {
		return 0, err
	}
	if h.redis != nil {
		if err := h.redis.Set(c.Request.Context(), key, count, likeCountTTL).Err(); err != nil {
			h.logger.Warn("caching like count for work %s: %v", workID, err)
		}
	}
	return count, nil
}

func (h *LikeHandler) adjustCachedCount(c *gin.Context, workID string, delta int64) {
	if h.redis == nil {
		return
	}
	if err := h.redis.IncrBy(c.Request.Context(), likeCountKey(workID), delta).Err(); err != nil {
		h.logger.Warn("adjusting cached like count for work %s: %v", workID, err)
	}
}

func (h *LikeHandler) notifyLike(identity *authz.Identity, work *models.Work) {
	if h.queue == nil {
		return
	}
	err := h.queue.PublishNotificationTask(map[string]interface{}{
		"type":     "work_liked",
		"workId":   work.ID,
		"authorId": work.AuthorID,
		"userId":   identity.ID,
		"username": identity.Username,
	})
	if err != nil {
		h.logger.Error("publishing like notification for work %s: %v", work.ID, err)
	}
}

func likeCountKey(workID string) string {
	return fmt.Sprintf("like_count:%s", workID)
}
