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
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	userRepo    repository.UserRepository
	workRepo    repository.WorkRepository
	draftRepo   repository.DraftRepository
	commentRepo repository.CommentRepository
	logger      *logger.Logger
}

func NewUserHandler(
	userRepo repository.UserRepository,
	workRepo repository.WorkRepository,
	draftRepo repository.DraftRepository,
	commentRepo repository.CommentRepository,
	logger *logger.Logger,
) *UserHandler {
	return &UserHandler{
		userRepo:    userRepo,
		workRepo:    workRepo,
		draftRepo:   draftRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

type UpdateUserRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Bio       *string `json:"bio"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
}

// GetUser godoc
// @Summary      Public profile
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "User"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Profile fields and password require the account owner or an admin. Role and status changes require an admin.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body UpdateUserRequest true "Fields to update"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	identity := middleware.Identity(c)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "User"))
		return
	}

	if !authz.Authorize(identity, authz.OwnerOrRole(user.ID, models.RoleAdmin)) {
		respondError(c, h.logger, apperr.Unauthorized("Unauthorized"))
		return
	}

	if req.Firstname != nil {
		user.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, h.logger, apperr.Internal("failed to hash password", err))
			return
		}
		user.Password = string(hash)
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		if !role.Valid() {
			respondError(c, h.logger, apperr.Validation("Invalid role %q", *req.Role))
			return
		}
		if !authz.Authorize(identity, authz.AnyRole(models.RoleAdmin)) {
			respondError(c, h.logger, apperr.Unauthorized("Only admin can change roles"))
			return
		}
		user.Role = role
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		if !status.Valid() {
			respondError(c, h.logger, apperr.Validation("Invalid status %q", *req.Status))
			return
		}
		if !authz.Authorize(identity, authz.AnyRole(models.RoleAdmin)) {
			respondError(c, h.logger, apperr.Unauthorized("Only admin can change account status"))
			return
		}
		user.Status = status
	}

	if err := h.userRepo.Update(user); err != nil {
		respondError(c, h.logger, storeErr(err, "User"))
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Admin only. The user's works, drafts, and comments are removed best-effort; a failed cascade step is logged and the remaining steps continue.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user, err := h.userRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "User"))
		return
	}

	if err := h.userRepo.Delete(user.ID); err != nil {
		respondError(c, h.logger, storeErr(err, "User"))
		return
	}

	// Best-effort cascade, no rollback
	if err := h.workRepo.DeleteByAuthorID(user.ID); err != nil {
		h.logger.Error("cascade: deleting works of user %s: %v", user.ID, err)
	}
	if err := h.draftRepo.DeleteByAuthorID(user.ID); err != nil {
		h.logger.Error("cascade: deleting drafts of user %s: %v", user.ID, err)
	}
	if err := h.commentRepo.DeleteByUserID(user.ID); err != nil {
		h.logger.Error("cascade: deleting comments of user %s: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": user.ID})
}
