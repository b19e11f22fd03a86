package services

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/sokoni/sokoni-api/apperrors"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/models"
	"github.com/sokoni/sokoni-api/utils"
	"gorm.io/gorm"
)

// Register creates a user account with the given role. Buyer and admin
// registration share this one path so the validation rules cannot
// drift between them; the admin route is gated at the router.
func Register(db *gorm.DB, cfg *config.Config, mailer utils.Mailer, name, email, password, role string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("name is required")
	}

	email = utils.NormalizeEmail(email)
	if !utils.IsValidEmail(email) {
		return nil, apperrors.Validationf("a valid email address is required")
	}

	if problems := utils.ValidatePassword(password); len(problems) > 0 {
		return nil, apperrors.Validationf("%s", strings.Join(problems, "; "))
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflictf("a user with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := models.User{
		Name:            name,
		Email:           email,
		Password:        hashed,
		Role:            role,
		IsEmailVerified: false,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	// Verification email is fire-and-forget: a delivery failure is
	// logged but never fails the registration.
	sendVerificationEmail(cfg, mailer, &user)

	return &user, nil
}

func sendVerificationEmail(cfg *config.Config, mailer utils.Mailer, user *models.User) {
	token, err := IssueVerificationToken(cfg, user)
	if err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to issue verification token")
		return
	}

	email := user.Email
	name := user.Name
	go func() {
		data := utils.EmailData{
			Name:      name,
			Message:   "Thank you for signing up! Click the button below to verify your account.",
			ActionURL: cfg.FrontendURL + "/auth/verify-email?token=" + url.QueryEscape(token),
		}
		if err := mailer.Send(email, "Verify your Sokoni account", "verify_email.html", data); err != nil {
			log.Error().Err(err).Str("email", email).Msg("failed to send verification email")
			return
		}
		log.Info().Str("email", email).Msg("verification email sent")
	}()
}

// IssueVerificationToken signs a short-lived token proving control of
// the user's email address.
func IssueVerificationToken(cfg *config.Config, user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":    user.ID,
		"userEmail": user.Email,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(cfg.VerificationTokenTTL).Unix(),
	})
	return token.SignedString([]byte(cfg.JWTSecret))
}

func Login(db *gorm.DB, cfg *config.Config, email, password string) (string, error) {
	email = utils.NormalizeEmail(email)

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFoundf("user with this email does not exist")
		}
		return "", apperrors.Internal(err)
	}

	if err := utils.ComparePasswords(user.Password, password); err != nil {
		return "", apperrors.Unauthorizedf("invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(cfg.AuthTokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return signed, nil
}

// VerifyAccount consumes a verification token on behalf of the already
// authenticated user. The token subject must match the requesting user.
// The returned bool reports whether the account was already verified,
// which succeeds idempotently with a distinct message.
func VerifyAccount(db *gorm.DB, cfg *config.Config, tokenString string, requestingUserID uint) (*models.User, bool, error) {
	if tokenString == "" {
		return nil, false, apperrors.Unauthorizedf("verification token is missing")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false, apperrors.Unauthorizedf("invalid or expired verification token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false, apperrors.Unauthorizedf("invalid or expired verification token")
	}
	subject, ok := claims["userId"].(float64)
	if !ok || uint(subject) != requestingUserID {
		return nil, false, apperrors.Unauthorizedf("verification token does not belong to this account")
	}

	var user models.User
	if err := db.First(&user, requestingUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.NotFoundf("user account not found")
		}
		return nil, false, apperrors.Internal(err)
	}

	if user.IsEmailVerified {
		return &user, true, nil
	}

	if err := db.Model(&user).Update("is_email_verified", true).Error; err != nil {
		return nil, false, apperrors.Internal(err)
	}
	user.IsEmailVerified = true
	return &user, false, nil
}
