package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/models"
)

func (r *GormRepo) ListIssues(ctx context.Context) ([]models.Issue, error) {
	var issues []models.Issue
	if err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *GormRepo) GetIssue(ctx context.Context, id uint) (*models.Issue, error) {
	var issue models.Issue
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *GormRepo) CreateIssue(ctx context.Context, issue *models.Issue) error {
	return r.DB.WithContext(ctx).Create(issue).Error
}

func (r *GormRepo) SaveIssue(ctx context.Context, issue *models.Issue) error {
	return r.DB.WithContext(ctx).Save(issue).Error
}

func (r *GormRepo) UpdateIssueStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Issue{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteIssueCascade removes the issue together with its upvotes, comments
// and stored summaries.
func (r *GormRepo) DeleteIssueCascade(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("issue_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("issue_id = ?", id).Delete(&models.Summary{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Issue{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) CountIssuesByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Issue{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
