package handlers

import (
	"net/http"

	"inkwell/pkg/apperr"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/models"
	"inkwell/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo   repository.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthHandler(userRepo repository.UserRepository, jwtService *jwt.Service, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Bio       string `json:"bio"`
	Role      string `json:"role" binding:"omitempty,oneof=creator editor"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account. Role defaults to creator; admin accounts are provisioned separately.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if user exists
	if _, err := h.userRepo.GetByEmail(req.Email); err == nil {
		respondError(c, h.logger, apperr.Conflict("User with this email already exists"))
		return
	}
	if _, err := h.userRepo.GetByUsername(req.Username); err == nil {
		respondError(c, h.logger, apperr.Conflict("Username already taken"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, h.logger, apperr.Internal("failed to hash password", err))
		return
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RoleCreator
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Bio:       req.Bio,
		Role:      role,
		Status:    models.UserActive,
	}

	if err := h.userRepo.Create(user); err != nil {
		respondError(c, h.logger, storeErr(err, "User"))
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email, user.Username, string(user.Role))
	if err != nil {
		respondError(c, h.logger, apperr.Internal("failed to generate token", err))
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login godoc
// @Summary      Login
// @Description  Authenticate with email and password, returns a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  AuthResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.Status != models.UserActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended or banned"})
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email, user.Username, string(user.Role))
	if err != nil {
		respondError(c, h.logger, apperr.Internal("failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me godoc
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.Identity(c)

	user, err := h.userRepo.GetByID(identity.ID)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "User"))
		return
	}

	c.JSON(http.StatusOK, user)
}
