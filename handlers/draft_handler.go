package handlers

import (
	"fmt"
	"net/http"

	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/models"
	"inkwell/repository"

	"github.com/gin-gonic/gin"
)

// DraftHandler serves the caller's own drafts. Every operation is scoped to
// the authenticated author; there is no admin bypass here.
type DraftHandler struct {
	draftRepo repository.DraftRepository
	workRepo  repository.WorkRepository
	maxDrafts int
	logger    *logger.Logger
}

func NewDraftHandler(
	draftRepo repository.DraftRepository,
	workRepo repository.WorkRepository,
	maxDrafts int,
	logger *logger.Logger,
) *DraftHandler {
	return &DraftHandler{
		draftRepo: draftRepo,
		workRepo:  workRepo,
		maxDrafts: maxDrafts,
		logger:    logger,
	}
}

type CreateDraftRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	WorkID  string `json:"workId"`
	Pinned  bool   `json:"pinned"`
}

type UpdateDraftRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Pinned  *bool   `json:"pinned"`
}

// ListDrafts godoc
// @Summary      List own drafts
// @Tags         drafts
// @Produce      json
// @Security     BearerAuth
// @Param        workId query string false "Filter by work"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /drafts [get]
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	identity := middleware.Identity(c)
	page, limit, offset := paginate(c)

	drafts, total, err := h.draftRepo.ListByAuthor(identity.ID, c.Query("workId"), limit, offset)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Draft"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drafts":     drafts,
		"pagination": paginationFor(page, limit, total),
	})
}

// GetDraft godoc
// @Summary      Draft detail
// @Tags         drafts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Draft ID"
// @Success      200  {object}  models.Draft
// @Failure      404  {object}  map[string]string
// @Router       /drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	identity := middleware.Identity(c)

	draft, err := h.draftRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Draft"))
		return
	}
	if draft.AuthorID != identity.ID {
		respondError(c, h.logger, apperr.NotFound("Draft"))
		return
	}

	c.JSON(http.StatusOK, draft)
}

// CreateDraft godoc
// @Summary      Save a draft
// @Description  Drafts attached to a work require the caller to own that work. Each (author, work) bucket holds a bounded number of drafts; free-standing drafts share one bucket.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateDraftRequest true "Draft"
// @Success      201  {object}  models.Draft
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	identity := middleware.Identity(c)

	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.WorkID != "" {
		work, err := h.workRepo.GetByID(req.WorkID)
		if err != nil {
			respondError(c, h.logger, storeErr(err, "Work"))
			return
		}
		if work.AuthorID != identity.ID {
			respondError(c, h.logger, apperr.Unauthorized("Drafts can only be attached to your own works"))
			return
		}
	}

	count, err := h.draftRepo.CountForWork(identity.ID, req.WorkID)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Draft"))
		return
	}
	if count >= int64(h.maxDrafts) {
		respondError(c, h.logger, apperr.CapacityExceeded(
			fmt.Sprintf("Draft limit reached (%d). Delete an existing draft first.", h.maxDrafts)))
		return
	}

	draft := &models.Draft{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: identity.ID,
		WorkID:   req.WorkID,
		Pinned:   req.Pinned,
	}
	if err := h.draftRepo.Create(draft); err != nil {
		respondError(c, h.logger, storeErr(err, "Draft"))
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// UpdateDraft godoc
// @Summary      Update a draft
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Draft ID"
// @Param        request body UpdateDraftRequest true "Fields to update"
// @Success      200  {object}  models.Draft
// @Failure      404  {object}  map[string]string
// @Router       /drafts/{id} [patch]
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	identity := middleware.Identity(c)

	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.draftRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Draft"))
		return
	}
	if draft.AuthorID != identity.ID {
		respondError(c, h.logger, apperr.NotFound("Draft"))
		return
	}

	if req.Title != nil {
		draft.Title = *req.Title
	}
	if req.Content != nil {
		draft.Content = *req.Content
	}
	if req.Pinned != nil {
		draft.Pinned = *req.Pinned
	}

	if err := h.draftRepo.Update(draft); err != nil {
		respondError(c, h.logger, storeErr(err, "Draft"))
		return
	}

	c.JSON(http.StatusOK, draft)
}

// DeleteDraft godoc
// @Summary      Delete a draft
// @Tags         drafts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Draft ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /drafts/{id} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	identity := middleware.Identity(c)

	draft, err := h.draftRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Draft"))
		return
	}
	if draft.AuthorID != identity.ID {
		respondError(c, h.logger, apperr.NotFound("Draft"))
		return
	}

	if err := h.draftRepo.Delete(draft.ID); err != nil {
		respondError(c, h.logger, storeErr(err, "Draft"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": draft.ID})
}
