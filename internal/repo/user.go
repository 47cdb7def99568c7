package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/models"
)

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserRole reads the role fresh from the store; authorization never reuses
// a role resolved for an earlier request.
func (r *GormRepo) GetUserRole(ctx context.Context, id uint) (string, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Select("role").Where("id = ?", id).First(&user).Error; err != nil {
		return "", err
	}
	return user.Role, nil
}

// CreateVerifiedUser inserts the user row and clears every outstanding OTP
// for the email in one transaction, so a used code can never validate twice.
func (r *GormRepo) CreateVerifiedUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Where("email = ?", user.Email).Delete(&models.OTPCode{}).Error
	})
}

func (r *GormRepo) UpdateUser(ctx context.Context, id uint, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}
