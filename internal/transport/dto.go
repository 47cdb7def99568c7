package transport

import (
	"time"

	"github.com/samaj-issue/api/internal/models"
)

type SignupRequest struct {
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProjection is the public-safe view of a user. The password hash never
// leaves the service.
type UserProjection struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	PictureURL string `json:"picture_url,omitempty"`
}

func NewUserProjection(u *models.User) UserProjection {
	return UserProjection{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		PictureURL: u.PictureURL,
	}
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  UserProjection `json:"user"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CommentView struct {
	ID            uint      `json:"id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
	UserID        uint      `json:"user_id"`
	IssueID       uint      `json:"issue_id"`
	IsFlagged     bool      `json:"is_flagged"`
	AuthorName    string    `json:"author_name"`
	AuthorPicture string    `json:"author_picture,omitempty"`
}

type UpvoteStatusResponse struct {
	IssueID      uint  `json:"issue_id"`
	TotalUpvotes int64 `json:"total_upvotes"`
	HasUpvoted   bool  `json:"has_upvoted"`
}
