package repo

import (
	"context"

	"github.com/samaj-issue/api/internal/models"
)

func (r *GormRepo) HasUpvote(ctx context.Context, userID, issueID uint) (bool, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Upvote{}).
		Where("user_id = ? AND issue_id = ?", userID, issueID).
		Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *GormRepo) CreateUpvote(ctx context.Context, upvote *models.Upvote) error {
	return r.DB.WithContext(ctx).Create(upvote).Error
}

func (r *GormRepo) DeleteUpvote(ctx context.Context, userID, issueID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND issue_id = ?", userID, issueID).
		Delete(&models.Upvote{}).Error
}

func (r *GormRepo) CountUpvotes(ctx context.Context, issueID uint) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Upvote{}).
		Where("issue_id = ?", issueID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
