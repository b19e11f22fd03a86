package services

import (
	"errors"

	"github.com/sokoni/sokoni-api/apperrors"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/models"
	"github.com/sokoni/sokoni-api/utils"
	"gorm.io/gorm"
)

func ProfileDetails(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user account not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

// UpdateProfile changes the user's name and/or email after re-checking
// the current password. Changing the email resets the verification
// flag and re-sends a verification email best-effort.
func UpdateProfile(db *gorm.DB, cfg *config.Config, mailer utils.Mailer, userID uint, name, email, currentPassword string) (*models.User, error) {
	if currentPassword == "" {
		return nil, apperrors.Validationf("current password is required to update your profile")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user account not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := utils.ComparePasswords(user.Password, currentPassword); err != nil {
		return nil, apperrors.Unauthorizedf("incorrect password")
	}

	fields := map[string]any{}
	if name != "" {
		fields["name"] = name
	}

	emailChanged := false
	if email != "" {
		email = utils.NormalizeEmail(email)
		if !utils.IsValidEmail(email) {
			return nil, apperrors.Validationf("a valid email address is required")
		}
		if email != user.Email {
			var existing models.User
			err := db.Where("email = ? AND id != ?", email, userID).First(&existing).Error
			if err == nil {
				return nil, apperrors.Conflictf("a user with this email already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Internal(err)
			}
			fields["email"] = email
			fields["is_email_verified"] = false
			emailChanged = true
		}
	}

	if len(fields) > 0 {
		if err := db.Model(&user).Updates(fields).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	if err := db.First(&user, userID).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	if emailChanged {
		sendVerificationEmail(cfg, mailer, &user)
	}
	return &user, nil
}

func ListUsers(db *gorm.DB) ([]models.Profile, error) {
	var users []models.User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	profiles := make([]models.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}
	return profiles, nil
}
