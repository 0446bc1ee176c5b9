package repository

import (
	"testing"
	"time"

	"inkwell/pkg/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Work{},
		&models.Review{},
		&models.Comment{},
		&models.Draft{},
		&models.Like{},
		&models.Category{},
	))
	return db
}

func createWork(t *testing.T, repo WorkRepository, authorID string, status models.WorkStatus) *models.Work {
	t.Helper()
	work := &models.Work{
		Title:    "Test Work",
		Content:  "Body",
		AuthorID: authorID,
		Status:   status,
	}
	if status == models.WorkPublished {
		now := time.Now()
		work.PublishedAt = &now
	}
	require.NoError(t, repo.Create(work))
	return work
}

func TestWorkRepository_ListFiltersByStatus(t *testing.T) {
	repo := NewWorkRepository(testDB(t))

	createWork(t, repo, "author-1", models.WorkDraft)
	createWork(t, repo, "author-1", models.WorkPublished)
	createWork(t, repo, "author-2", models.WorkPublished)

	works, total, err := repo.List(WorkFilter{Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, w := range works {
		assert.Equal(t, models.WorkPublished, w.Status)
	}
}

func TestWorkRepository_ListFiltersByAuthor(t *testing.T) {
	repo := NewWorkRepository(testDB(t))

	createWork(t, repo, "author-1", models.WorkDraft)
	createWork(t, repo, "author-1", models.WorkSubmitted)
	createWork(t, repo, "author-2", models.WorkDraft)

	works, total, err := repo.List(WorkFilter{AuthorID: "author-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, w := range works {
		assert.Equal(t, "author-1", w.AuthorID)
	}
}

func TestWorkRepository_ListSearch(t *testing.T) {
	repo := NewWorkRepository(testDB(t))

	w := &models.Work{Title: "The Cartographer", Content: "maps", AuthorID: "a", Status: models.WorkPublished}
	require.NoError(t, repo.Create(w))
	other := &models.Work{Title: "Quiet Mornings", Content: "coffee", AuthorID: "a", Status: models.WorkPublished}
	require.NoError(t, repo.Create(other))

	works, total, err := repo.List(WorkFilter{Search: "Cartographer"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, works, 1)
	assert.Equal(t, w.ID, works[0].ID)
}

func TestWorkRepository_CountByStatus(t *testing.T) {
	repo := NewWorkRepository(testDB(t))

	createWork(t, repo, "a", models.WorkDraft)
	createWork(t, repo, "a", models.WorkDraft)
	createWork(t, repo, "a", models.WorkPublished)

	count, err := repo.CountByStatus(models.WorkDraft)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestWorkRepository_TopAuthorsByPublished(t *testing.T) {
	repo := NewWorkRepository(testDB(t))

	createWork(t, repo, "prolific", models.WorkPublished)
	createWork(t, repo, "prolific", models.WorkPublished)
	createWork(t, repo, "casual", models.WorkPublished)
	createWork(t, repo, "casual", models.WorkDraft)

	rows, err := repo.TopAuthorsByPublished(5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "prolific", rows[0].AuthorID)
	assert.Equal(t, int64(2), rows[0].WorkCount)
}

func TestWorkRepository_DeleteByAuthorID(t *testing.T) {
	repo := NewWorkRepository(testDB(t))

	createWork(t, repo, "gone", models.WorkDraft)
	createWork(t, repo, "gone", models.WorkPublished)
	kept := createWork(t, repo, "stays", models.WorkDraft)

	require.NoError(t, repo.DeleteByAuthorID("gone"))

	_, total, err := repo.List(WorkFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	got, err := repo.GetByID(kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "stays", got.AuthorID)
}

func TestLikeRepository_DuplicateInsert(t *testing.T) {
	repo := NewLikeRepository(testDB(t))

	require.NoError(t, repo.Create(&models.Like{UserID: "u1", WorkID: "w1"}))

	err := repo.Create(&models.Like{UserID: "u1", WorkID: "w1"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := repo.CountByWork("w1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeRepository_ToggleRoundTrip(t *testing.T) {
	repo := NewLikeRepository(testDB(t))

	like := &models.Like{UserID: "u1", WorkID: "w1"}
	require.NoError(t, repo.Create(like))

	got, err := repo.Get("u1", "w1")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(got.ID))

	_, err = repo.Get("u1", "w1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDraftRepository_CountForWorkBuckets(t *testing.T) {
	repo := NewDraftRepository(testDB(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.Draft{
			Title: "d", Content: "c", AuthorID: "author-1", WorkID: "work-1",
		}))
	}
	require.NoError(t, repo.Create(&models.Draft{
		Title: "free", Content: "c", AuthorID: "author-1",
	}))

	attached, err := repo.CountForWork("author-1", "work-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), attached)

	freestanding, err := repo.CountForWork("author-1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), freestanding)
}

func TestDraftRepository_ListByAuthorScoped(t *testing.T) {
	repo := NewDraftRepository(testDB(t))

	require.NoError(t, repo.Create(&models.Draft{Title: "mine", Content: "c", AuthorID: "me"}))
	require.NoError(t, repo.Create(&models.Draft{Title: "theirs", Content: "c", AuthorID: "them"}))

	drafts, total, err := repo.ListByAuthor("me", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, drafts, 1)
	assert.Equal(t, "mine", drafts[0].Title)
}

func TestCommentRepository_ListVisibleByWorkHidesHidden(t *testing.T) {
	repo := NewCommentRepository(testDB(t))

	require.NoError(t, repo.Create(&models.Comment{
		WorkID: "w1", UserID: "u1", Username: "alice", Body: "visible", Status: models.CommentVisible,
	}))
	require.NoError(t, repo.Create(&models.Comment{
		WorkID: "w1", UserID: "u2", Username: "bob", Body: "hidden", Status: models.CommentHidden,
	}))

	comments, total, err := repo.ListVisibleByWork("w1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, comments, 1)
	assert.Equal(t, "visible", comments[0].Body)
}

func TestCommentRepository_TopWorksByVisible(t *testing.T) {
	repo := NewCommentRepository(testDB(t))

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(&models.Comment{
			WorkID: "busy", UserID: "u", Username: "u", Body: "b", Status: models.CommentVisible,
		}))
	}
	require.NoError(t, repo.Create(&models.Comment{
		WorkID: "quiet", UserID: "u", Username: "u", Body: "b", Status: models.CommentVisible,
	}))

	rows, err := repo.TopWorksByVisible(5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "busy", rows[0].WorkID)
	assert.Equal(t, int64(2), rows[0].CommentCount)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	require.NoError(t, repo.Create(&models.User{
		Username: "alice", Email: "alice@test.com", Password: "x", Role: models.RoleCreator, Status: models.UserActive,
	}))

	err := repo.Create(&models.User{
		Username: "alice", Email: "other@test.com", Password: "x", Role: models.RoleCreator, Status: models.UserActive,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_CountActiveByRole(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	require.NoError(t, repo.Create(&models.User{
		Username: "c1", Email: "c1@test.com", Password: "x", Role: models.RoleCreator, Status: models.UserActive,
	}))
	require.NoError(t, repo.Create(&models.User{
		Username: "c2", Email: "c2@test.com", Password: "x", Role: models.RoleCreator, Status: models.UserBanned,
	}))
	require.NoError(t, repo.Create(&models.User{
		Username: "e1", Email: "e1@test.com", Password: "x", Role: models.RoleEditor, Status: models.UserActive,
	}))

	count, err := repo.CountActiveByRole(models.RoleCreator)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCategoryRepository_DuplicateName(t *testing.T) {
	repo := NewCategoryRepository(testDB(t))

	require.NoError(t, repo.Create(&models.Category{Name: "Fiction"}))
	err := repo.Create(&models.Category{Name: "Fiction"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestReviewRepository_ListByWork(t *testing.T) {
	repo := NewReviewRepository(testDB(t))

	require.NoError(t, repo.Create(&models.Review{WorkID: "w1", EditorID: "e1", Decision: models.DecisionApproved}))
	require.NoError(t, repo.Create(&models.Review{WorkID: "w2", EditorID: "e1", Decision: models.DecisionRejected}))

	reviews, total, err := repo.List("w1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reviews, 1)
	assert.Equal(t, "w1", reviews[0].WorkID)
}

func TestCascadeDeletesByWorkID(t *testing.T) {
	db := testDB(t)
	draftRepo := NewDraftRepository(db)
	commentRepo := NewCommentRepository(db)
	likeRepo := NewLikeRepository(db)
	reviewRepo := NewReviewRepository(db)

	require.NoError(t, draftRepo.Create(&models.Draft{Title: "d", Content: "c", AuthorID: "a", WorkID: "w1"}))
	require.NoError(t, commentRepo.Create(&models.Comment{WorkID: "w1", UserID: "u", Username: "u", Body: "b", Status: models.CommentVisible}))
	require.NoError(t, likeRepo.Create(&models.Like{UserID: "u", WorkID: "w1"}))
	require.NoError(t, reviewRepo.Create(&models.Review{WorkID: "w1", EditorID: "e", Decision: models.DecisionApproved}))

	require.NoError(t, draftRepo.DeleteByWorkID("w1"))
	require.NoError(t, commentRepo.DeleteByWorkID("w1"))
	require.NoError(t, likeRepo.DeleteByWorkID("w1"))
	require.NoError(t, reviewRepo.DeleteByWorkID("w1"))

	count, err := draftRepo.CountForWork("a", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	likes, err := likeRepo.CountByWork("w1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)

	_, total, err := commentRepo.ListVisibleByWork("w1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = reviewRepo.List("w1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
