package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/hash"
	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/models"
	"github.com/samaj-issue/api/internal/repo"
	"github.com/samaj-issue/api/internal/tokens"
)

const (
	otpTTL    = 5 * time.Minute
	otpDigits = 6
)

type AuthService struct {
	Repo      *repo.GormRepo
	Mailer    Mailer
	Storage   ObjectStorage
	Events    EventPublisher
	JWTSecret []byte
}

// generateOTP draws the code from crypto/rand; it is never derived from the
// clock or the email address.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

// RequestSignup starts the signup state machine: reject emails that already
// belong to an account, then issue a time-boxed code. The email is sent
// before the record is persisted, so a stored code always corresponds to a
// delivered message and a failed dispatch leaves nothing behind.
func (s *AuthService) RequestSignup(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.request_signup")

	if email == "" {
		return ErrValidation
	}

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		l.Warn("signup_rejected", "reason", "email already registered")
		return ErrDuplicateAccount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.Mailer.SendOTP(ctx, email, code); err != nil {
		l.Error("otp_delivery_failed", "error", err)
		return ErrDeliveryFailed
	}

	otp := models.OTPCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(otpTTL),
	}
	if err := s.Repo.CreateOTP(ctx, &otp); err != nil {
		return err
	}

	l.Info("otp_sent")
	return nil
}

type FinalizeSignupInput struct {
	Email    string
	Code     string
	Name     string
	Password string

	// Optional profile picture. Upload failure does not abort signup.
	Picture     io.Reader
	PictureName string
}

// FinalizeSignup completes the state machine. Only the latest-issued code for
// the email is acceptable, and only strictly before its expiry. On success
// the user row is inserted verified and every OTP for the email is cleared in
// the same transaction, which makes the code single-use.
func (s *AuthService) FinalizeSignup(ctx context.Context, in FinalizeSignupInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.finalize_signup")

	if in.Email == "" || in.Code == "" || in.Name == "" || in.Password == "" {
		return nil, ErrValidation
	}

	otp, err := s.Repo.LatestOTP(ctx, in.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		l.Warn("finalize_rejected", "reason", "no OTP issued")
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}

	if otp.Code != in.Code || !time.Now().UTC().Before(otp.ExpiresAt) {
		l.Warn("finalize_rejected", "reason", "code mismatch or expired")
		return nil, ErrCodeMismatchOrExpired
	}

	if _, err := s.Repo.GetUserByEmail(ctx, in.Email); err == nil {
		l.Warn("finalize_rejected", "reason", "already verified")
		return nil, ErrAlreadyVerified
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	pictureURL := ""
	if in.Picture != nil {
		url, err := s.Storage.Upload(ctx, in.PictureName, in.Picture)
		if err != nil {
			// Signup succeeds without the picture rather than aborting.
			l.Warn("picture_upload_failed", "error", err)
		} else {
			pictureURL = url
		}
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         "user",
		IsVerified:   true,
		PictureURL:   pictureURL,
	}
	if err := s.Repo.CreateVerifiedUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent finalize for the same email.
			return nil, ErrAlreadyVerified
		}
		return nil, err
	}

	l.Info("signup_complete", "user_id", user.ID)
	publishEvent(ctx, s.Events, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return &user, nil
}

// Login checks credentials and issues the session token. The caller can tell
// "no such user" (gorm.ErrRecordNotFound), "not verified" and "bad password"
// apart without string matching.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return "", nil, ErrValidation
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if !user.IsVerified {
		l.Warn("login_rejected", "reason", "email not verified")
		return "", nil, ErrNotVerified
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_rejected", "reason", "invalid password")
		return "", nil, ErrBadCredential
	}

	token, err := tokens.NewAccessToken(user.ID, user.Role, s.JWTSecret, time.Now())
	if err != nil {
		return "", nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.Repo.GetUserByID(ctx, id)
}

type UpdateProfileInput struct {
	Name     string
	Password string

	// Optional new profile picture. Unlike signup, upload failure here is
	// fatal to the request.
	Picture     io.Reader
	PictureName string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) error {
	fields := map[string]any{}

	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Password != "" {
		pwHash, err := hash.HashPassword(in.Password)
		if err != nil {
			return err
		}
		fields["password_hash"] = pwHash
	}
	if in.Picture != nil {
		url, err := s.Storage.Upload(ctx, in.PictureName, in.Picture)
		if err != nil {
			return fmt.Errorf("upload picture: %w", err)
		}
		fields["picture_url"] = url
	}

	if len(fields) == 0 {
		return ErrValidation
	}

	return s.Repo.UpdateUser(ctx, userID, fields)
}
