package repo

import (
	"context"

	"github.com/samaj-issue/api/internal/models"
)

func (r *GormRepo) CreateOTP(ctx context.Context, otp *models.OTPCode) error {
	return r.DB.WithContext(ctx).Create(otp).Error
}

// LatestOTP picks the record that counts: latest expiry, most recently
// inserted on a tie. Older outstanding codes for the email stay in place
// until finalization deletes them all.
func (r *GormRepo) LatestOTP(ctx context.Context, email string) (*models.OTPCode, error) {
	var otp models.OTPCode
	if err := r.DB.WithContext(ctx).
		Where("email = ?", email).
		Order("expires_at DESC, id DESC").
		First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}
