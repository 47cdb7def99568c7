package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/models"
	"github.com/samaj-issue/api/internal/repo"
)

// minSummaryInput is the smallest text the summarization service accepts.
const minSummaryInput = 250

type SummaryService struct {
	Repo       *repo.GormRepo
	Summarizer Summarizer
}

// ForIssue gathers the issue and its comments, asks the summarization
// collaborator for a digest and stores the result.
func (s *SummaryService) ForIssue(ctx context.Context, issueID uint) (*models.Summary, error) {
	l := logging.FromContext(ctx).With("svc", "summary.for_issue")

	issue, err := s.Repo.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	texts, err := s.Repo.CommentTexts(ctx, issueID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Issue: %s\nDescription: %s\n\nCommunity comments:\n", issue.Title, issue.Description)
	if len(texts) == 0 {
		b.WriteString("- No comments have been added yet.\n")
	}
	for _, t := range texts {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	combined := b.String()

	if len(combined) < minSummaryInput {
		l.Warn("summary_rejected", "reason", "not enough content", "length", len(combined))
		return nil, ErrValidation
	}

	text, err := s.Summarizer.Summarize(ctx, combined)
	if err != nil {
		return nil, fmt.Errorf("summarize issue %d: %w", issueID, err)
	}

	summary := models.Summary{
		Text:    text,
		IssueID: issueID,
	}
	if err := s.Repo.CreateSummary(ctx, &summary); err != nil {
		return nil, err
	}

	l.Info("summary_created", "issue_id", issueID, "summary_id", summary.ID)
	return &summary, nil
}
