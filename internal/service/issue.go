package service

import (
	"context"
	"fmt"
	"io"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/models"
	"github.com/samaj-issue/api/internal/repo"
	"github.com/samaj-issue/api/internal/search"
)

var issueStatuses = []string{"Pending", "In Progress", "Resolved"}

func ValidIssueStatus(status string) bool {
	for _, s := range issueStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type IssueService struct {
	Repo    *repo.GormRepo
	Access  *AccessService
	Storage ObjectStorage
	Events  EventPublisher
	Index   *search.IssueIndex
}

func (s *IssueService) List(ctx context.Context) ([]models.Issue, error) {
	return s.Repo.ListIssues(ctx)
}

func (s *IssueService) Get(ctx context.Context, id uint) (*models.Issue, error) {
	return s.Repo.GetIssue(ctx, id)
}

type CreateIssueInput struct {
	Title       string
	Description string
	Location    string

	// Optional image. Upload failure here is fatal to the request.
	Image     io.Reader
	ImageName string
}

func (s *IssueService) Create(ctx context.Context, actorID uint, in CreateIssueInput) (*models.Issue, error) {
	l := logging.FromContext(ctx).With("svc", "issue.create")

	if in.Title == "" {
		return nil, ErrValidation
	}

	imageURL := ""
	if in.Image != nil {
		url, err := s.Storage.Upload(ctx, in.ImageName, in.Image)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL = url
	}

	issue := models.Issue{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		ImageURL:    imageURL,
		Status:      "Pending",
		CreatedBy:   actorID,
	}
	if err := s.Repo.CreateIssue(ctx, &issue); err != nil {
		return nil, err
	}

	l.Info("issue_created", "issue_id", issue.ID)
	publishEvent(ctx, s.Events, "issue_events", fmt.Sprint(issue.ID), map[string]any{
		"type":     "issue_created",
		"issue_id": issue.ID,
		"user_id":  actorID,
	})
	s.index(ctx, &issue)

	return &issue, nil
}

type UpdateIssueInput struct {
	Title       string
	Description string
	Location    string
	Image       io.Reader
	ImageName   string
}

// Update applies the owner-or-admin rule before anything else; an actor who
// fails the check causes no side effect, not even the image upload.
func (s *IssueService) Update(ctx context.Context, actorID, issueID uint, in UpdateIssueInput) (*models.Issue, error) {
	issue, err := s.Repo.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if err := s.Access.Authorize(ctx, actorID, issue.CreatedBy, RuleOwnerOrAdmin); err != nil {
		return nil, err
	}

	if in.Title != "" {
		issue.Title = in.Title
	}
	if in.Description != "" {
		issue.Description = in.Description
	}
	if in.Location != "" {
		issue.Location = in.Location
	}
	if in.Image != nil {
		url, err := s.Storage.Upload(ctx, in.ImageName, in.Image)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		issue.ImageURL = url
	}

	if err := s.Repo.SaveIssue(ctx, issue); err != nil {
		return nil, err
	}

	s.index(ctx, issue)
	return issue, nil
}

func (s *IssueService) Delete(ctx context.Context, actorID, issueID uint) error {
	issue, err := s.Repo.GetIssue(ctx, issueID)
	if err != nil {
		return err
	}

	if err := s.Access.Authorize(ctx, actorID, issue.CreatedBy, RuleOwnerOrAdmin); err != nil {
		return err
	}

	if err := s.Repo.DeleteIssueCascade(ctx, issueID); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, issueID); err != nil {
			logging.FromContext(ctx).Warn("issue_index_remove_failed", "issue_id", issueID, "error", err)
		}
	}
	return nil
}

func (s *IssueService) Search(ctx context.Context, query string, from, size int) (int64, []models.Issue, error) {
	return s.Index.Search(ctx, query, from, size)
}

func (s *IssueService) index(ctx context.Context, issue *models.Issue) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, issue); err != nil {
		logging.FromContext(ctx).Warn("issue_index_failed", "issue_id", issue.ID, "error", err)
	}
}
