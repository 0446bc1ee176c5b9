package handlers

import (
	"net/http"

	"inkwell/pkg/logger"
	"inkwell/pkg/models"
	"inkwell/repository"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryRepo repository.CategoryRepository
	logger       *logger.Logger
}

func NewCategoryHandler(categoryRepo repository.CategoryRepository, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo, logger: logger}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	page, limit, offset := paginate(c)

	categories, total, err := h.categoryRepo.List(limit, offset)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Category"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"pagination": paginationFor(page, limit, total),
	})
}

// GetCategory godoc
// @Summary      Category detail
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200  {object}  models.Category
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Category"))
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary      Create a category
// @Description  Admin only. Names are unique.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCategoryRequest true "Category"
// @Success      201  {object}  models.Category
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := h.categoryRepo.Create(category); err != nil {
		respondError(c, h.logger, storeErr(err, "Category"))
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary      Update a category
// @Description  Admin only.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Category ID"
// @Param        request body UpdateCategoryRequest true "Fields to update"
// @Success      200  {object}  models.Category
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Category"))
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := h.categoryRepo.Update(category); err != nil {
		respondError(c, h.logger, storeErr(err, "Category"))
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Admin only. Works referencing the category are left untouched.
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Category ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, err := h.categoryRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Category"))
		return
	}

	if err := h.categoryRepo.Delete(category.ID); err != nil {
		respondError(c, h.logger, storeErr(err, "Category"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": category.ID})
}
