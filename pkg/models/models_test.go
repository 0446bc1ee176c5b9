package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
		Role:     RoleCreator,
		Status:   UserActive,
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:       existingID,
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestWork_BeforeCreate(t *testing.T) {
	work := &Work{
		AuthorID: "author-123",
		Title:    "Test Work",
		Content:  "body",
		Status:   WorkDraft,
	}

	err := work.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, work.ID)
}

func TestWorkStatus_Valid(t *testing.T) {
	for _, s := range []WorkStatus{WorkDraft, WorkSubmitted, WorkApproved, WorkRejected, WorkPublished, WorkHidden} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, WorkStatus("live").Valid())
	assert.False(t, WorkStatus("").Valid())
}

func TestWork_ApplyStatus_Submitted(t *testing.T) {
	work := &Work{Status: WorkDraft}
	now := time.Now()

	work.ApplyStatus(WorkSubmitted, now)

	assert.Equal(t, WorkSubmitted, work.Status)
	assert.NotNil(t, work.SubmittedAt)
	assert.Equal(t, now, *work.SubmittedAt)
	assert.Nil(t, work.ApprovedAt)
	assert.Nil(t, work.PublishedAt)
}

func TestWork_ApplyStatus_Published(t *testing.T) {
	work := &Work{Status: WorkApproved}
	now := time.Now()

	work.ApplyStatus(WorkPublished, now)

	assert.Equal(t, WorkPublished, work.Status)
	assert.NotNil(t, work.PublishedAt)
}

func TestWork_ApplyStatus_HiddenStampsNothing(t *testing.T) {
	work := &Work{Status: WorkPublished}

	work.ApplyStatus(WorkHidden, time.Now())

	assert.Equal(t, WorkHidden, work.Status)
	assert.Nil(t, work.SubmittedAt)
	assert.Nil(t, work.ApprovedAt)
	assert.Nil(t, work.PublishedAt)
}

func TestUserRole_Valid(t *testing.T) {
	assert.True(t, RoleCreator.Valid())
	assert.True(t, RoleEditor.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, UserRole("superuser").Valid())
}

func TestUserStatus_Valid(t *testing.T) {
	assert.True(t, UserActive.Valid())
	assert.True(t, UserSuspended.Valid())
	assert.True(t, UserBanned.Valid())
	assert.False(t, UserStatus("deleted").Valid())
}

func TestReviewDecision_Valid(t *testing.T) {
	assert.True(t, DecisionApproved.Valid())
	assert.True(t, DecisionRejected.Valid())
	assert.False(t, ReviewDecision("maybe").Valid())
}

func TestReviewDecision_WorkStatus(t *testing.T) {
	assert.Equal(t, WorkApproved, DecisionApproved.WorkStatus())
	assert.Equal(t, WorkRejected, DecisionRejected.WorkStatus())
}

func TestCommentStatus_Valid(t *testing.T) {
	assert.True(t, CommentVisible.Valid())
	assert.True(t, CommentHidden.Valid())
	assert.False(t, CommentStatus("deleted").Valid())
}

func TestReview_BeforeCreate(t *testing.T) {
	review := &Review{
		WorkID:   "work-123",
		EditorID: "editor-123",
		Decision: DecisionApproved,
	}

	err := review.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, review.ID)
}

func TestComment_BeforeCreate(t *testing.T) {
	comment := &Comment{
		WorkID:   "work-123",
		UserID:   "user-123",
		Username: "alice",
		Body:     "nice",
	}

	err := comment.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
}

func TestDraft_BeforeCreate(t *testing.T) {
	draft := &Draft{
		AuthorID: "author-123",
		Title:    "scratch",
		Content:  "wip",
	}

	err := draft.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, draft.ID)
}

func TestLike_BeforeCreate(t *testing.T) {
	like := &Like{
		UserID: "user-123",
		WorkID: "work-123",
	}

	err := like.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, like.ID)
}

func TestCategory_BeforeCreate(t *testing.T) {
	category := &Category{Name: "fiction"}

	err := category.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, category.ID)
}
