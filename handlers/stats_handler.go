package handlers

import (
	"net/http"

	"inkwell/pkg/logger"
	"inkwell/pkg/models"
	"inkwell/repository"

	"github.com/gin-gonic/gin"
)

const statsTopN = 5

type StatsHandler struct {
	workRepo     repository.WorkRepository
	userRepo     repository.UserRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	logger       *logger.Logger
}

func NewStatsHandler(
	workRepo repository.WorkRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	logger *logger.Logger,
) *StatsHandler {
	return &StatsHandler{
		workRepo:     workRepo,
		userRepo:     userRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

type TopAuthorEntry struct {
	AuthorID  string `json:"authorId"`
	Username  string `json:"username"`
	WorkCount int64  `json:"workCount"`
}

type TopWorkEntry struct {
	WorkID       string `json:"workId"`
	Title        string `json:"title"`
	CommentCount int64  `json:"commentCount"`
}

type CategoryStatEntry struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
}

// GetStats godoc
// @Summary      Platform statistics
// @Description  Totals per work status, active user counts per role, top authors by published works, top works by visible comments, published works per category, and the most recent publications.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	works := gin.H{}
	for _, status := range []models.WorkStatus{
		models.WorkDraft, models.WorkSubmitted, models.WorkApproved,
		models.WorkRejected, models.WorkPublished, models.WorkHidden,
	} {
		count, err := h.workRepo.CountByStatus(status)
		if err != nil {
			respondError(c, h.logger, storeErr(err, "Work"))
			return
		}
		works[string(status)] = count
	}

	users := gin.H{}
	for _, role := range []models.UserRole{models.RoleCreator, models.RoleEditor, models.RoleAdmin} {
		count, err := h.userRepo.CountActiveByRole(role)
		if err != nil {
			respondError(c, h.logger, storeErr(err, "User"))
			return
		}
		users[string(role)] = count
	}

	commentCount, err := h.commentRepo.CountVisible()
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}

	topAuthors, err := h.topAuthors()
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	topWorks, err := h.topWorks()
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Comment"))
		return
	}

	byCategory, err := h.worksByCategory()
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	recent, err := h.workRepo.RecentPublished(statsTopN)
	if err != nil {
		respondError(c, h.logger, storeErr(err, "Work"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"works":           works,
		"users":           users,
		"visibleComments": commentCount,
		"topAuthors":      topAuthors,
		"topWorks":        topWorks,
		"worksByCategory": byCategory,
		"recentPublished": recent,
	})
}

// topAuthors joins username display data onto the aggregation rows. Deleted
// authors keep their row with an empty username.
func (h *StatsHandler) topAuthors() ([]TopAuthorEntry, error) {
	rows, err := h.workRepo.TopAuthorsByPublished(statsTopN)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.AuthorID)
	}
	authors, err := h.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	usernames := make(map[string]string, len(authors))
	for _, a := range authors {
		usernames[a.ID] = a.Username
	}

	entries := make([]TopAuthorEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, TopAuthorEntry{
			AuthorID:  row.AuthorID,
			Username:  usernames[row.AuthorID],
			WorkCount: row.WorkCount,
		})
	}
	return entries, nil
}

func (h *StatsHandler) topWorks() ([]TopWorkEntry, error) {
	rows, err := h.commentRepo.TopWorksByVisible(statsTopN)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.WorkID)
	}
	works, err := h.workRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(works))
	for _, w := range works {
		titles[w.ID] = w.Title
	}

	entries := make([]TopWorkEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, TopWorkEntry{
			WorkID:       row.WorkID,
			Title:        titles[row.WorkID],
			CommentCount: row.CommentCount,
		})
	}
	return entries, nil
}

func (h *StatsHandler) worksByCategory() ([]CategoryStatEntry, error) {
	rows, err := h.workRepo.PublishedCountByCategory()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.CategoryID != "" {
			ids = append(ids, row.CategoryID)
		}
	}
	categories, err := h.categoryRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	entries := make([]CategoryStatEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, CategoryStatEntry{
			CategoryID: row.CategoryID,
			Name:       names[row.CategoryID],
			Count:      row.Count,
		})
	}
	return entries, nil
}
