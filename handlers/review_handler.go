package handlers

import (
	"net/http"
	"time"

	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/models"
	"inkwell/pkg/queue"
	"inkwell/repository"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewRepo repository.ReviewRepository
	workRepo   repository.WorkRepository
	queue      *queue.Client
	logger     *logger.Logger
}

func NewReviewHandler(
	reviewRepo repository.ReviewRepository,
	workRepo repository.WorkRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepo: reviewRepo,
		workRepo:   workRepo,
		queue:      queueClient,
		logger:     logger,
	}
}

type CreateReviewRequest struct {
	WorkID   string `json:"workId" binding:"required"`
	Decision string `json:"decision" binding:"required"`
	Feedback string `json:"feedback"`
}

type UpdateReviewRequest struct {
	Decision *string `json:"decision"`
	Feedback *string `json:"feedback"`
}

// ListReviews godoc
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        workId query string false "Filter by work"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page, limit, offset := paginate(c)

	reviews, total, err := h.reviewRepo.List(c.Query("workId"), limit, offset)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Review"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":    reviews,
		"pagination": paginationFor(page, limit, total),
	})
}

// GetReview godoc
// @Summary      Review detail
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Review ID"
// @Success      200  {object}  models.Review
// @Failure      404  {object}  map[string]string
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Review"))
		return
	}
	c.JSON(http.StatusOK, review)
}

// CreateReview godoc
// @Summary      Review a submitted work
// @Description  Editors and admins only. The work must be in submitted status. The decision drives the work to approved or rejected and stamps or clears ApprovedAt accordingly.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateReviewRequest true "Review"
// @Success      201  {object}  models.Review
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	identity := middleware.Identity(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision := models.ReviewDecision(req.Decision)
	if !decision.Valid() {
		respondError(c, h.logger, apperr.Validation("Invalid decision %q", req.Decision))
		return
	}

	work, err := h.workRepo.GetByID(req.WorkID)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}
	if work.Status != models.WorkSubmitted {
		respondError(c, h.logger, apperr.InvalidState("Work is not awaiting review"))
		return
	}

	review := &models.Review{
		WorkID:   work.ID,
		EditorID: identity.ID,
		Decision: decision,
		Feedback: req.Feedback,
	}
	if err := h.reviewRepo.Create(review); err != nil {
		respondError(c, h.logger, storeErr(err, "Review"))
		return
	}

	h.driveWork(work, decision)
	if err := h.workRepo.Update(work); err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	h.notify(review, work)

	c.JSON(http.StatusCreated, review)
}

// UpdateReview godoc
// @Summary      Amend a review
// @Description  Editors and admins only. Changing the decision re-drives the work regardless of its current status; feedback-only edits leave the work untouched.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Review ID"
// @Param        request body UpdateReviewRequest true "Fields to update"
// @Success      200  {object}  models.Review
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Review"))
		return
	}

	redrive := false
	if req.Decision != nil {
		decision := models.ReviewDecision(*req.Decision)
		if !decision.Valid() {
			respondError(c, h.logger, apperr.Validation("Invalid decision %q", *req.Decision))
			return
		}
		redrive = decision != review.Decision
		review.Decision = decision
	}
	if req.Feedback != nil {
		review.Feedback = *req.Feedback
	}

	if err := h.reviewRepo.Update(review); err != nil {
		respondError(c, h.logger, storeErr(err, "Review"))
		return
	}

	if redrive {
		work, err := h.workRepo.GetByID(review.WorkID)
		if err != nil {
			respondError(c, h.logger, storeErr(err, "Work"))
			return
		}
		h.driveWork(work, review.Decision)
		if err := h.workRepo.Update(work); err != nil {
			respondError(c, h.logger, storeErr(err, "Work"))
			return
		}
		h.notify(review, work)
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Admin only. Removing the record does not revert the work's status.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Review ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	review, err := h.reviewRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Review"))
		return
	}

	if err := h.reviewRepo.Delete(review.ID); err != nil {
		respondError(c, h.logger, storeErr(err, "Review"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": review.ID})
}

// driveWork applies a decision to the work. Approval stamps ApprovedAt,
// rejection clears it.
func (h *ReviewHandler) driveWork(work *models.Work, decision models.ReviewDecision) {
	work.ApplyStatus(decision.WorkStatus(), time.Now())
	if decision == models.DecisionRejected {
		work.ApprovedAt = nil
	}
}

func (h *ReviewHandler) notify(review *models.Review, work *models.Work) {
	if h.queue == nil {
		return
	}
	err := h.queue.PublishNotificationTask(map[string]interface{}{
		"type":     "review_decision",
		"workId":   work.ID,
		"authorId": work.AuthorID,
		"decision": string(review.Decision),
		"feedback": review.Feedback,
	})
	if err != nil {
		h.logger.Error("publishing review notification for work %s: %v", work.ID, err)
	}
}
