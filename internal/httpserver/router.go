package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samaj-issue/api/internal/middleware"
)

type Deps struct {
	Auth    *AuthHTTP
	Issue   *IssueHTTP
	Comment *CommentHTTP
	Upvote  *UpvoteHTTP
	Admin   *AdminHTTP
	Summary *SummaryHTTP

	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMw := middleware.NewAuth(d.JWTSecret)

	api := e.Group("/api")

	api.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "pong"})
	})

	// Pre-authentication surface: signup flows through the OTP state
	// machine only, never through the token middleware.
	api.POST("/signup", d.Auth.RequestSignup)
	api.POST("/verify-otp", d.Auth.VerifyOTP)
	api.POST("/login", d.Auth.Login)
	api.GET("/user/:id", d.Auth.GetUserByID)

	api.GET("/issues", d.Issue.List)
	api.GET("/issues/search", d.Issue.Search)
	api.GET("/issues/:id", d.Issue.Get)
	api.GET("/issues/:id/comments", d.Comment.List)
	api.GET("/issues/:id/summary", d.Summary.Get)

	api.GET("/issues/:id/upvotes", d.Upvote.Status, authMw.OptionalAuth)

	private := api.Group("", authMw.RequireAuth)

	private.GET("/me", d.Auth.Me)
	private.PUT("/update-profile", d.Auth.UpdateProfile)

	private.POST("/new-issue", d.Issue.Create)
	private.PUT("/issues/:id", d.Issue.Update)
	private.DELETE("/issues/:id", d.Issue.Delete)

	private.POST("/issues/:id/upvote", d.Upvote.Toggle)

	private.POST("/issues/:id/add-comment", d.Comment.Add)
	private.PUT("/comments/:id", d.Comment.Update)
	private.DELETE("/comments/:id", d.Comment.Delete)
	private.PUT("/comments/:id/flag", d.Comment.Flag)

	private.GET("/admin/flagged-comments", d.Admin.FlaggedComments)
	private.GET("/admin/stats", d.Admin.Stats)
	private.PUT("/admin/issues/:id/status", d.Admin.UpdateIssueStatus)
}
