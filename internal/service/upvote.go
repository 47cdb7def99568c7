package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/models"
	"github.com/samaj-issue/api/internal/repo"
)

type UpvoteService struct {
	Repo *repo.GormRepo
}

// Toggle flips the (user, issue) upvote: present deletes, absent inserts.
// The read and the write are not atomic; the unique index on the pair is the
// backstop, and losing the insert race counts as "added".
func (s *UpvoteService) Toggle(ctx context.Context, userID, issueID uint) (added bool, err error) {
	exists, err := s.Repo.HasUpvote(ctx, userID, issueID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.Repo.DeleteUpvote(ctx, userID, issueID); err != nil {
			return false, err
		}
		return false, nil
	}

	upvote := models.Upvote{UserID: userID, IssueID: issueID}
	if err := s.Repo.CreateUpvote(ctx, &upvote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logging.FromContext(ctx).Warn("upvote_insert_race", "user_id", userID, "issue_id", issueID)
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// Status reports the aggregate count; the per-caller flag is computed only
// when an identity is present. Identity never gates the call.
func (s *UpvoteService) Status(ctx context.Context, issueID uint, actorID *uint) (total int64, hasUpvoted bool, err error) {
	total, err = s.Repo.CountUpvotes(ctx, issueID)
	if err != nil {
		return 0, false, err
	}

	if actorID != nil {
		hasUpvoted, err = s.Repo.HasUpvote(ctx, *actorID, issueID)
		if err != nil {
			return 0, false, err
		}
	}

	return total, hasUpvoted, nil
}
