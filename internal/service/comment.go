package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/models"
	"github.com/samaj-issue/api/internal/repo"
	"github.com/samaj-issue/api/internal/transport"
)

type CommentService struct {
	Repo   *repo.GormRepo
	Access *AccessService
	Events EventPublisher
}

func (s *CommentService) List(ctx context.Context, issueID uint) ([]transport.CommentView, error) {
	return s.Repo.ListComments(ctx, issueID)
}

func (s *CommentService) Add(ctx context.Context, actorID, issueID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation
	}

	if _, err := s.Repo.GetIssue(ctx, issueID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		Text:    text,
		UserID:  actorID,
		IssueID: issueID,
	}
	if err := s.Repo.CreateComment(ctx, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Update(ctx context.Context, actorID, commentID uint, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrValidation
	}

	comment, err := s.Repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}

	if err := s.Access.Authorize(ctx, actorID, comment.UserID, RuleOwnerOrAdmin); err != nil {
		return err
	}

	return s.Repo.UpdateCommentText(ctx, commentID, text)
}

func (s *CommentService) Delete(ctx context.Context, actorID, commentID uint) error {
	comment, err := s.Repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}

	if err := s.Access.Authorize(ctx, actorID, comment.UserID, RuleOwnerOrAdmin); err != nil {
		return err
	}

	return s.Repo.DeleteComment(ctx, commentID)
}

// Flag marks a comment for moderation. Admin only.
func (s *CommentService) Flag(ctx context.Context, actorID, commentID uint) error {
	if err := s.Access.Authorize(ctx, actorID, 0, RuleAdminOnly); err != nil {
		return err
	}

	if err := s.Repo.FlagComment(ctx, commentID); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("comment_flagged", "comment_id", commentID, "admin_id", actorID)
	publishEvent(ctx, s.Events, "moderation_events", fmt.Sprint(commentID), map[string]any{
		"type":       "comment_flagged",
		"comment_id": commentID,
		"admin_id":   actorID,
	})
	return nil
}

func (s *CommentService) Flagged(ctx context.Context, actorID uint) ([]models.Comment, error) {
	if err := s.Access.Authorize(ctx, actorID, 0, RuleAdminOnly); err != nil {
		return nil, err
	}
	return s.Repo.ListFlaggedComments(ctx)
}
