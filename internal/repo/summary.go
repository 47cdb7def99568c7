package repo

import (
	"context"

	"github.com/samaj-issue/api/internal/models"
)

func (r *GormRepo) CreateSummary(ctx context.Context, summary *models.Summary) error {
	return r.DB.WithContext(ctx).Create(summary).Error
}
