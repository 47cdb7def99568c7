package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/models"
	"github.com/samaj-issue/api/internal/transport"
)

func (r *GormRepo) ListComments(ctx context.Context, issueID uint) ([]transport.CommentView, error) {
	views := []transport.CommentView{}
	if err := r.DB.WithContext(ctx).
		Model(&models.Comment{}).
		Select("comments.id, comments.text, comments.created_at, comments.user_id, comments.issue_id, comments.is_flagged, users.name AS author_name, users.picture_url AS author_picture").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.issue_id = ?", issueID).
		Order("comments.created_at DESC, comments.id DESC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *GormRepo) CommentTexts(ctx context.Context, issueID uint) ([]string, error) {
	var texts []string
	if err := r.DB.WithContext(ctx).
		Model(&models.Comment{}).
		Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Pluck("text", &texts).Error; err != nil {
		return nil, err
	}
	return texts, nil
}

func (r *GormRepo) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *GormRepo) UpdateCommentText(ctx context.Context, id uint, text string) error {
	res := r.DB.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("text", text)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteComment(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) FlagComment(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("is_flagged", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListFlaggedComments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.DB.WithContext(ctx).
		Where("is_flagged = ?", true).
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
