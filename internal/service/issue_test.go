package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/models"
)

func newTestIssueService(t *testing.T) (*IssueService, *fakeStorage) {
	t.Helper()

	rp := newTestRepo(t)
	storage := &fakeStorage{}
	svc := &IssueService{
		Repo:    rp,
		Access:  &AccessService{Repo: rp},
		Storage: storage,
	}
	return svc, storage
}

func TestCreateIssue(t *testing.T) {
	t.Parallel()

	svc, _ := newTestIssueService(t)
	ctx := context.Background()
	user := createUser(t, svc.Repo, "reporter@example.com", "user")

	_, err := svc.Create(ctx, user.ID, CreateIssueInput{})
	assert.ErrorIs(t, err, ErrValidation)

	issue, err := svc.Create(ctx, user.ID, CreateIssueInput{
		Title:       "Pothole on Main St",
		Description: "Deep pothole near the bus stop",
		Location:    "Ward 7",
	})
	require.NoError(t, err)
	assert.NotZero(t, issue.ID)
	assert.Equal(t, "Pending", issue.Status)
	assert.Equal(t, user.ID, issue.CreatedBy)
}

func TestCreateIssue_ImageUploadFailureFatal(t *testing.T) {
	t.Parallel()

	svc, storage := newTestIssueService(t)
	user := createUser(t, svc.Repo, "reporter@example.com", "user")
	storage.err = errors.New("bucket unreachable")

	_, err := svc.Create(context.Background(), user.ID, CreateIssueInput{
		Title:     "Pothole on Main St",
		Image:     strings.NewReader("fake image bytes"),
		ImageName: "pothole.jpg",
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.Issue{}).Count(&count).Error)
	assert.Zero(t, count, "a failed upload must not leave a row behind")
}

func TestUpdateIssue_OwnerAndAdmin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestIssueService(t)
	ctx := context.Background()

	owner := createUser(t, svc.Repo, "owner@example.com", "user")
	admin := createUser(t, svc.Repo, "admin@example.com", "admin")
	issue := createIssue(t, svc.Repo, owner.ID, "Pothole on Main St")

	got, err := svc.Update(ctx, owner.ID, issue.ID, UpdateIssueInput{Title: "Pothole near bus stop"})
	require.NoError(t, err)
	assert.Equal(t, "Pothole near bus stop", got.Title)
	assert.Equal(t, "description", got.Description, "unset fields keep their value")

	got, err = svc.Update(ctx, admin.ID, issue.ID, UpdateIssueInput{Location: "Ward 9"})
	require.NoError(t, err)
	assert.Equal(t, "Ward 9", got.Location)
}

func TestUpdateIssue_StrangerDenied_NoSideEffect(t *testing.T) {
	t.Parallel()

	svc, storage := newTestIssueService(t)
	ctx := context.Background()

	owner := createUser(t, svc.Repo, "owner@example.com", "user")
	stranger := createUser(t, svc.Repo, "stranger@example.com", "user")
	issue := createIssue(t, svc.Repo, owner.ID, "Pothole on Main St")

	_, err := svc.Update(ctx, stranger.ID, issue.ID, UpdateIssueInput{
		Title:     "Hijacked",
		Image:     strings.NewReader("fake image bytes"),
		ImageName: "x.jpg",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, storage.uploads, "denied actors must not reach the uploader")

	got, err := svc.Get(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pothole on Main St", got.Title)
}

func TestUpdateIssue_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestIssueService(t)
	user := createUser(t, svc.Repo, "user@example.com", "user")

	_, err := svc.Update(context.Background(), user.ID, 999, UpdateIssueInput{Title: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteIssue_CascadesDependents(t *testing.T) {
	t.Parallel()

	svc, _ := newTestIssueService(t)
	ctx := context.Background()

	owner := createUser(t, svc.Repo, "owner@example.com", "user")
	voter := createUser(t, svc.Repo, "voter@example.com", "user")
	issue := createIssue(t, svc.Repo, owner.ID, "Pothole on Main St")
	keep := createIssue(t, svc.Repo, owner.ID, "Broken streetlight")

	require.NoError(t, svc.Repo.CreateComment(ctx, &models.Comment{
		Text: "Still there", UserID: voter.ID, IssueID: issue.ID,
	}))
	require.NoError(t, svc.Repo.CreateUpvote(ctx, &models.Upvote{UserID: voter.ID, IssueID: issue.ID}))
	require.NoError(t, svc.Repo.CreateUpvote(ctx, &models.Upvote{UserID: voter.ID, IssueID: keep.ID}))
	require.NoError(t, svc.Repo.CreateSummary(ctx, &models.Summary{Text: "digest", IssueID: issue.ID}))

	require.NoError(t, svc.Delete(ctx, owner.ID, issue.ID))

	_, err := svc.Get(ctx, issue.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var comments, upvotes, summaries int64
	require.NoError(t, svc.Repo.DB.Model(&models.Comment{}).Where("issue_id = ?", issue.ID).Count(&comments).Error)
	require.NoError(t, svc.Repo.DB.Model(&models.Upvote{}).Where("issue_id = ?", issue.ID).Count(&upvotes).Error)
	require.NoError(t, svc.Repo.DB.Model(&models.Summary{}).Where("issue_id = ?", issue.ID).Count(&summaries).Error)
	assert.Zero(t, comments)
	assert.Zero(t, upvotes)
	assert.Zero(t, summaries)

	// The unrelated issue and its upvote survive.
	_, err = svc.Get(ctx, keep.ID)
	require.NoError(t, err)
	var keepUpvotes int64
	require.NoError(t, svc.Repo.DB.Model(&models.Upvote{}).Where("issue_id = ?", keep.ID).Count(&keepUpvotes).Error)
	assert.EqualValues(t, 1, keepUpvotes)
}

func TestDeleteIssue_StrangerDenied(t *testing.T) {
	t.Parallel()

	svc, _ := newTestIssueService(t)
	ctx := context.Background()

	owner := createUser(t, svc.Repo, "owner@example.com", "user")
	stranger := createUser(t, svc.Repo, "stranger@example.com", "user")
	issue := createIssue(t, svc.Repo, owner.ID, "Pothole on Main St")

	err := svc.Delete(ctx, stranger.ID, issue.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, issue.ID)
	require.NoError(t, err)
}

func TestListIssues_NewestFirst(t *testing.T) {
	t.Parallel()

	svc, _ := newTestIssueService(t)
	ctx := context.Background()
	user := createUser(t, svc.Repo, "user@example.com", "user")

	first := createIssue(t, svc.Repo, user.ID, "first")
	second := createIssue(t, svc.Repo, user.ID, "second")

	issues, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, second.ID, issues[0].ID)
	assert.Equal(t, first.ID, issues[1].ID)
}

func TestValidIssueStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidIssueStatus("Pending"))
	assert.True(t, ValidIssueStatus("In Progress"))
	assert.True(t, ValidIssueStatus("Resolved"))
	assert.False(t, ValidIssueStatus("pending"))
	assert.False(t, ValidIssueStatus("Closed"))
	assert.False(t, ValidIssueStatus(""))
}
