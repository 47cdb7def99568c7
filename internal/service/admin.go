package service

import (
	"context"
	"fmt"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/repo"
)

type AdminService struct {
	Repo   *repo.GormRepo
	Access *AccessService
	Events EventPublisher
	Issues *IssueService
}

// Stats returns exact issue counts per status. Admin only.
func (s *AdminService) Stats(ctx context.Context, actorID uint) (map[string]int64, error) {
	if err := s.Access.Authorize(ctx, actorID, 0, RuleAdminOnly); err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(issueStatuses))
	for _, status := range issueStatuses {
		total, err := s.Repo.CountIssuesByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats[status] = total
	}
	return stats, nil
}

func (s *AdminService) UpdateIssueStatus(ctx context.Context, actorID, issueID uint, status string) error {
	if err := s.Access.Authorize(ctx, actorID, 0, RuleAdminOnly); err != nil {
		return err
	}

	if !ValidIssueStatus(status) {
		return ErrValidation
	}

	if err := s.Repo.UpdateIssueStatus(ctx, issueID, status); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("issue_status_updated", "issue_id", issueID, "status", status)
	publishEvent(ctx, s.Events, "issue_events", fmt.Sprint(issueID), map[string]any{
		"type":     "issue_status_updated",
		"issue_id": issueID,
		"status":   status,
	})

	if s.Issues != nil {
		if issue, err := s.Repo.GetIssue(ctx, issueID); err == nil {
			s.Issues.index(ctx, issue)
		}
	}
	return nil
}
