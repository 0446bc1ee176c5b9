package handlers

import (
	"errors"
	"strconv"

	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Pagination is the listing envelope every collection endpoint returns.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func paginate(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit < 1 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

func paginationFor(page, limit int, total int64) Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// respondError maps a domain error to its HTTP shape. Internal errors are
// logged with their cause and reported without it.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	status := apperr.HTTPStatus(err)
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal {
		c.JSON(status, gin.H{"error": appErr.Message})
		return
	}
	log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, gin.H{"error": "Internal server error"})
}

// storeErr translates raw store errors into the domain vocabulary.
func storeErr(err error, entity string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(entity + " already exists")
	default:
		return apperr.Internal("store operation failed", err)
	}
}
