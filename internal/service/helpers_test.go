package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/hash"
	"github.com/samaj-issue/api/internal/models"
	"github.com/samaj-issue/api/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.OTPCode{},
		&models.Issue{},
		&models.Comment{},
		&models.Upvote{},
		&models.Summary{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return &repo.GormRepo{DB: db}
}

func createUser(t *testing.T, rp *repo.GormRepo, email, role string) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword("password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		IsVerified:   true,
	}
	if err := rp.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createIssue(t *testing.T, rp *repo.GormRepo, ownerID uint, title string) *models.Issue {
	t.Helper()

	issue := models.Issue{
		Title:       title,
		Description: "description",
		Location:    "Ward 7",
		Status:      "Pending",
		CreatedBy:   ownerID,
	}
	if err := rp.DB.Create(&issue).Error; err != nil {
		t.Fatalf("failed to create issue: %v", err)
	}
	return &issue
}

type fakeMailer struct {
	sent []struct{ To, Code string }
	err  error
}

func (m *fakeMailer) SendOTP(_ context.Context, to, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, struct{ To, Code string }{to, code})
	return nil
}

func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	if len(m.sent) == 0 {
		t.Fatal("no OTP was sent")
	}
	return m.sent[len(m.sent)-1].Code
}

type fakeStorage struct {
	uploads int
	err     error
}

func (s *fakeStorage) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads++
	return fmt.Sprintf("https://cdn.test/%s", name), nil
}

type fakeSummarizer struct {
	got string
	err error
}

func (s *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.got = text
	return "a short digest of the discussion", nil
}

var errMailDown = errors.New("smtp connection refused")
