package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/models"
)

func newTestSummaryService(t *testing.T) (*SummaryService, *fakeSummarizer) {
	t.Helper()

	sum := &fakeSummarizer{}
	svc := &SummaryService{
		Repo:       newTestRepo(t),
		Summarizer: sum,
	}
	return svc, sum
}

func TestForIssue_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestSummaryService(t)
	_, err := svc.ForIssue(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestForIssue_NotEnoughContent(t *testing.T) {
	t.Parallel()

	svc, sum := newTestSummaryService(t)
	ctx := context.Background()

	user := createUser(t, svc.Repo, "user@example.com", "user")
	issue := createIssue(t, svc.Repo, user.ID, "Pothole")

	_, err := svc.ForIssue(ctx, issue.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, sum.got, "the summarizer must not be called for short content")
}

func TestForIssue_Success(t *testing.T) {
	t.Parallel()

	svc, sum := newTestSummaryService(t)
	ctx := context.Background()

	user := createUser(t, svc.Repo, "user@example.com", "user")
	issue := models.Issue{
		Title:       "Pothole on Main St",
		Description: strings.Repeat("The road surface has failed badly. ", 8),
		Status:      "Pending",
		CreatedBy:   user.ID,
	}
	require.NoError(t, svc.Repo.CreateIssue(ctx, &issue))
	require.NoError(t, svc.Repo.CreateComment(ctx, &models.Comment{
		Text: "My car was damaged here last week", UserID: user.ID, IssueID: issue.ID,
	}))
	require.NoError(t, svc.Repo.CreateComment(ctx, &models.Comment{
		Text: "Still no repair crew in sight", UserID: user.ID, IssueID: issue.ID,
	}))

	summary, err := svc.ForIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.NotZero(t, summary.ID)
	assert.Equal(t, issue.ID, summary.IssueID)
	assert.Equal(t, "a short digest of the discussion", summary.Text)

	assert.Contains(t, sum.got, "Pothole on Main St")
	assert.Contains(t, sum.got, "My car was damaged here last week")
	assert.Contains(t, sum.got, "Still no repair crew in sight")

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.Summary{}).Where("issue_id = ?", issue.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestForIssue_NoComments_UsesPlaceholder(t *testing.T) {
	t.Parallel()

	svc, sum := newTestSummaryService(t)
	ctx := context.Background()

	user := createUser(t, svc.Repo, "user@example.com", "user")
	issue := models.Issue{
		Title:       "Pothole on Main St",
		Description: strings.Repeat("The road surface has failed badly. ", 8),
		Status:      "Pending",
		CreatedBy:   user.ID,
	}
	require.NoError(t, svc.Repo.CreateIssue(ctx, &issue))

	_, err := svc.ForIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.Contains(t, sum.got, "No comments have been added yet")
}
