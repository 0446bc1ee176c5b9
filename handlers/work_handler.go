package handlers

import (
	"net/http"
	"time"

	"inkwell/pkg/apperr"
	"inkwell/pkg/authz"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/models"
	"inkwell/repository"

	"github.com/gin-gonic/gin"
)

type WorkHandler struct {
	workRepo    repository.WorkRepository
	userRepo    repository.UserRepository
	likeRepo    repository.LikeRepository
	draftRepo   repository.DraftRepository
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	logger      *logger.Logger
}

func NewWorkHandler(
	workRepo repository.WorkRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	draftRepo repository.DraftRepository,
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	logger *logger.Logger,
) *WorkHandler {
	return &WorkHandler{
		workRepo:    workRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		draftRepo:   draftRepo,
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

type CreateWorkRequest struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	CategoryID string   `json:"categoryId"`
	Tags       []string `json:"tags"`
}

type UpdateWorkRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	CategoryID *string   `json:"categoryId"`
	Tags       *[]string `json:"tags"`
	Status     *string   `json:"status"`
}

// AuthorInfo is the display subset joined onto work detail responses.
type AuthorInfo struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
}

// ListWorks godoc
// @Summary      List works
// @Description  Anonymous callers and creators browsing others see published works only; creators filtering on their own authorId see their full status range; editors and admins may filter any status.
// @Tags         works
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        status query string false "Status filter (role-gated)"
// @Param        categoryId query string false "Category filter"
// @Param        authorId query string false "Author filter"
// @Param        search query string false "Title/content search"
// @Success      200  {object}  map[string]interface{}
// @Router       /works [get]
func (h *WorkHandler) ListWorks(c *gin.Context) {
	identity := middleware.Identity(c)
	page, limit, offset := paginate(c)

	requested := c.Query("status")
	if requested != "" && !models.WorkStatus(requested).Valid() {
		respondError(c, h.logger, apperr.Validation("Invalid status %q", requested))
		return
	}
	authorID := c.Query("authorId")

	filter := repository.WorkFilter{
		Status:     authz.WorkListStatus(identity, requested, authorID),
		CategoryID: c.Query("categoryId"),
		AuthorID:   authorID,
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	}

	works, total, err := h.workRepo.List(filter)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"works":      works,
		"pagination": paginationFor(page, limit, total),
	})
}

// GetWork godoc
// @Summary      Work detail
// @Description  Published works are public. Non-published works require the author, an editor, or an admin. The response joins like count and author display data.
// @Tags         works
// @Produce      json
// @Param        id path string true "Work ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /works/{id} [get]
func (h *WorkHandler) GetWork(c *gin.Context) {
	identity := middleware.Identity(c)

	work, err := h.workRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	if !authz.CanViewWork(identity, work) {
		respondError(c, h.logger, apperr.Unauthorized("Unauthorized"))
		return
	}

	likeCount, err := h.likeRepo.CountByWork(work.ID)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Like"))
		return
	}

	// Author lookup is display data only; a missing author is not an error
	var author *AuthorInfo
	if u, err := h.userRepo.GetByID(work.AuthorID); err == nil {
		author = &AuthorInfo{Firstname: u.Firstname, Lastname: u.Lastname, Username: u.Username}
	}

	c.JSON(http.StatusOK, gin.H{
		"work":      work,
		"likeCount": likeCount,
		"author":    author,
	})
}

// CreateWork godoc
// @Summary      Create a work
// @Description  Any authenticated user may create a work. New works start in draft status with the caller as immutable author.
// @Tags         works
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateWorkRequest true "Work data"
// @Success      201  {object}  models.Work
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /works [post]
func (h *WorkHandler) CreateWork(c *gin.Context) {
	identity := middleware.Identity(c)

	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	work := &models.Work{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   identity.ID,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
		Status:     models.WorkDraft,
	}

	if err := h.workRepo.Create(work); err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	c.JSON(http.StatusCreated, work)
}

// UpdateWork godoc
// @Summary      Update a work
// @Description  Owner or editor/admin. A status value stamps its timestamp (submitted/approved/published). The generic path does not validate transition order; only setting hidden is admin-only. AuthorID never changes.
// @Tags         works
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Work ID"
// @Param        request body UpdateWorkRequest true "Fields to update"
// @Success      200  {object}  models.Work
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /works/{id} [patch]
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	identity := middleware.Identity(c)

	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	work, err := h.workRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	if !authz.Authorize(identity, authz.OwnerOrRole(work.AuthorID, models.RoleEditor, models.RoleAdmin)) {
		respondError(c, h.logger, apperr.Unauthorized("Unauthorized"))
		return
	}

	if req.Title != nil {
		work.Title = *req.Title
	}
	if req.Content != nil {
		work.Content = *req.Content
	}
	if req.CategoryID != nil {
		work.CategoryID = *req.CategoryID
	}
	if req.Tags != nil {
		work.Tags = *req.Tags
	}
	if req.Status != nil {
		status := models.WorkStatus(*req.Status)
		if !status.Valid() {
			respondError(c, h.logger, apperr.Validation("Invalid status %q", *req.Status))
			return
		}
		if status == models.WorkHidden && !authz.Authorize(identity, authz.AnyRole(models.RoleAdmin)) {
			respondError(c, h.logger, apperr.Unauthorized("Only admin can hide a work"))
			return
		}
		work.ApplyStatus(status, time.Now())
	}

	if err := h.workRepo.Update(work); err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	c.JSON(http.StatusOK, work)
}

// DeleteWork godoc
// @Summary      Delete a work
// @Description  Owner or admin. Dependent drafts, comments, likes, and reviews are removed best-effort; a failed cascade step is logged and the remaining steps continue.
// @Tags         works
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Work ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /works/{id} [delete]
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	identity := middleware.Identity(c)

	work, err := h.workRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	if !authz.Authorize(identity, authz.OwnerOrRole(work.AuthorID, models.RoleAdmin)) {
		respondError(c, h.logger, apperr.Unauthorized("Unauthorized"))
		return
	}

	if err := h.workRepo.Delete(work.ID); err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	// Best-effort cascade, no rollback
	if err := h.draftRepo.DeleteByWorkID(work.ID); err != nil {
		h.logger.Error("cascade: deleting drafts of work %s: %v", work.ID, err)
	}
	if err := h.commentRepo.DeleteByWorkID(work.ID); err != nil {
		h.logger.Error("cascade: deleting comments of work %s: %v", work.ID, err)
	}
	if err := h.likeRepo.DeleteByWorkID(work.ID); err != nil {
		h.logger.Error("cascade: deleting likes of work %s: %v", work.ID, err)
	}
	if err := h.reviewRepo.DeleteByWorkID(work.ID); err != nil {
		h.logger.Error("cascade: deleting reviews of work %s: %v", work.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": work.ID})
}
