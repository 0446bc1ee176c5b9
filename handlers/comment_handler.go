package handlers

import (
	"net/http"

	"inkwell/pkg/apperr"
	"inkwell/pkg/authz"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/models"
	"inkwell/repository"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentRepo repository.CommentRepository
	workRepo    repository.WorkRepository
	logger      *logger.Logger
}

func NewCommentHandler(
	commentRepo repository.CommentRepository,
	workRepo repository.WorkRepository,
	logger *logger.Logger,
) *CommentHandler {
	return &CommentHandler{
		commentRepo: commentRepo,
		workRepo:    workRepo,
		logger:      logger,
	}
}

type CreateCommentRequest struct {
	WorkID string `json:"workId" binding:"required"`
	Body   string `json:"body" binding:"required"`
}

type UpdateCommentRequest struct {
	Body   *string `json:"body"`
	Status *string `json:"status"`
}

// ListComments godoc
// @Summary      List visible comments of a work
// @Tags         comments
// @Produce      json
// @Param        workId query string true "Work ID"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	workID := c.Query("workId")
	if workID == "" {
		respondError(c, h.logger, apperr.Validation("workId is required"))
		return
	}
	page, limit, offset := paginate(c)

	comments, total, err := h.commentRepo.ListVisibleByWork(workID, limit, offset)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments":   comments,
		"pagination": paginationFor(page, limit, total),
	})
}

// GetComment godoc
// @Summary      Comment detail
// @Tags         comments
// @Produce      json
// @Param        id path string true "Comment ID"
// @Success      200  {object}  models.Comment
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.commentRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}
	c.JSON(http.StatusOK, comment)
}

// CreateComment godoc
// @Summary      Comment on a published work
// @Description  Authenticated users only. The work must be published. The caller's username is snapshotted into the comment.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCommentRequest true "Comment"
// @Success      201  {object}  models.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	identity := middleware.Identity(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	work, err := h.workRepo.GetByID(req.WorkID)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}
	if work.Status != models.WorkPublished {
		respondError(c, h.logger, apperr.InvalidState("Comments are only allowed on published works"))
		return
	}

	comment := &models.Comment{
		WorkID:   work.ID,
		UserID:   identity.ID,
		Username: identity.Username,
		Body:     req.Body,
		Status:   models.CommentVisible,
	}
	if err := h.commentRepo.Create(comment); err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary      Update a comment
// @Description  Body edits require the comment's owner. Status changes (hide/unhide) require an admin.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Param        request body UpdateCommentRequest true "Fields to update"
// @Success      200  {object}  models.Comment
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	identity := middleware.Identity(c)

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}

	if req.Body != nil {
		if identity == nil || identity.ID != comment.UserID {
			respondError(c, h.logger, apperr.Unauthorized("Only the comment owner can edit the body"))
			return
		}
		comment.Body = *req.Body
	}
	if req.Status != nil {
		status := models.CommentStatus(*req.Status)
		if !status.Valid() {
			respondError(c, h.logger, apperr.Validation("Invalid status %q", *req.Status))
			return
		}
		if !authz.Authorize(identity, authz.AnyRole(models.RoleAdmin)) {
			respondError(c, h.logger, apperr.Unauthorized("Only admin can change comment visibility"))
			return
		}
		comment.Status = status
	}

	if err := h.commentRepo.Update(comment); err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Owner or admin.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	identity := middleware.Identity(c)

	comment, err := h.commentRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}

	if !authz.Authorize(identity, authz.OwnerOrRole(comment.UserID, models.RoleAdmin)) {
		respondError(c, h.logger, apperr.Unauthorized("Unauthorized"))
		return
	}

	if err := h.commentRepo.Delete(comment.ID); err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": comment.ID})
}
