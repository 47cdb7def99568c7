package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samaj-issue/api/internal/models"
)

func TestToggle_RoundTrip(t *testing.T) {
	t.Parallel()

	rp := newTestRepo(t)
	svc := &UpvoteService{Repo: rp}
	ctx := context.Background()

	user := createUser(t, rp, "voter@example.com", "user")
	issue := createIssue(t, rp, user.ID, "Pothole on Main St")

	added, err := svc.Toggle(ctx, user.ID, issue.ID)
	require.NoError(t, err)
	assert.True(t, added)

	var count int64
	require.NoError(t, rp.DB.Model(&models.Upvote{}).
		Where("user_id = ? AND issue_id = ?", user.ID, issue.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	added, err = svc.Toggle(ctx, user.ID, issue.ID)
	require.NoError(t, err)
	assert.False(t, added)

	require.NoError(t, rp.DB.Model(&models.Upvote{}).
		Where("user_id = ? AND issue_id = ?", user.ID, issue.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Toggling back on works again after a removal.
	added, err = svc.Toggle(ctx, user.ID, issue.ID)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestToggle_IndependentPerUser(t *testing.T) {
	t.Parallel()

	rp := newTestRepo(t)
	svc := &UpvoteService{Repo: rp}
	ctx := context.Background()

	a := createUser(t, rp, "a@example.com", "user")
	b := createUser(t, rp, "b@example.com", "user")
	issue := createIssue(t, rp, a.ID, "Broken streetlight")

	_, err := svc.Toggle(ctx, a.ID, issue.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, b.ID, issue.ID)
	require.NoError(t, err)

	total, _, err := svc.Status(ctx, issue.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// a removes theirs, b's vote survives.
	_, err = svc.Toggle(ctx, a.ID, issue.ID)
	require.NoError(t, err)

	total, _, err = svc.Status(ctx, issue.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestStatus_AnonymousAndAuthed(t *testing.T) {
	t.Parallel()

	rp := newTestRepo(t)
	svc := &UpvoteService{Repo: rp}
	ctx := context.Background()

	voter := createUser(t, rp, "voter@example.com", "user")
	other := createUser(t, rp, "other@example.com", "user")
	issue := createIssue(t, rp, voter.ID, "Overflowing garbage bin")

	_, err := svc.Toggle(ctx, voter.ID, issue.ID)
	require.NoError(t, err)

	total, has, err := svc.Status(ctx, issue.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.False(t, has, "anonymous callers never see a personal flag")

	total, has, err = svc.Status(ctx, issue.ID, &voter.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.True(t, has)

	total, has, err = svc.Status(ctx, issue.ID, &other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.False(t, has)
}

func TestToggle_InsertRaceCountsAsAdded(t *testing.T) {
	t.Parallel()

	rp := newTestRepo(t)
	ctx := context.Background()

	user := createUser(t, rp, "voter@example.com", "user")
	issue := createIssue(t, rp, user.ID, "Blocked drain")

	// A concurrent request slipped in between the read and the insert.
	require.NoError(t, rp.CreateUpvote(ctx, &models.Upvote{UserID: user.ID, IssueID: issue.ID}))

	err := rp.CreateUpvote(ctx, &models.Upvote{UserID: user.ID, IssueID: issue.ID})
	require.Error(t, err, "the pair index must reject a second insert")

	total, err := rp.CountUpvotes(ctx, issue.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
