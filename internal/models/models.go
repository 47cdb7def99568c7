package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
	IsVerified   bool   `gorm:"not null;default:false"   json:"is_verified"`
	PictureURL   string `json:"picture_url"`
}

// OTPCode rows are not unique per email: every signup request inserts a new
// one and only the latest-issued row is accepted at verification. All rows
// for an email are removed when signup finalizes.
type OTPCode struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	Email     string    `gorm:"index;not null" json:"email"`
	Code      string    `gorm:"not null"       json:"-"`
	ExpiresAt time.Time `gorm:"not null"       json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Issue struct {
	ID          uint      `gorm:"primaryKey"               json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url"`
	Status      string    `gorm:"not null;default:Pending" json:"status"`
	CreatedBy   uint      `gorm:"index;not null"           json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey"             json:"id"`
	Text      string    `gorm:"not null"               json:"text"`
	UserID    uint      `gorm:"index;not null"         json:"user_id"`
	IssueID   uint      `gorm:"index;not null"         json:"issue_id"`
	IsFlagged bool      `gorm:"not null;default:false" json:"is_flagged"`
	CreatedAt time.Time `json:"created_at"`
}

// Upvote presence is the upvoted state; the composite unique index is the
// backstop against concurrent double inserts.
type Upvote struct {
	ID      uint `gorm:"primaryKey"                           json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_upvote_pair" json:"user_id"`
	IssueID uint `gorm:"not null;uniqueIndex:idx_upvote_pair" json:"issue_id"`
}

type Summary struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	Text      string    `gorm:"not null"       json:"text"`
	IssueID   uint      `gorm:"index;not null" json:"issue_id"`
	CreatedAt time.Time `json:"created_at"`
}
