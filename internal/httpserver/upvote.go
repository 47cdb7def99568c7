package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/middleware"
	"github.com/samaj-issue/api/internal/service"
	"github.com/samaj-issue/api/internal/transport"
)

type UpvoteHTTP struct {
	Svc *service.UpvoteService
}

// Toggle answers 201 when the upvote was added and 200 when it was removed.
func (h *UpvoteHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upvote.toggle")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	id, err := issueID(c)
	if err != nil {
		return err
	}

	added, err := h.Svc.Toggle(ctx, actorID, id)
	if err != nil {
		l.Error("toggle_upvote_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to toggle upvote")
	}

	if added {
		return c.JSON(http.StatusCreated, echo.Map{"message": "upvoted"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "upvote removed"})
}

// Status serves anonymous callers the aggregate count; an authenticated
// caller additionally learns whether they have upvoted.
func (h *UpvoteHTTP) Status(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upvote.status")

	id, err := issueID(c)
	if err != nil {
		return err
	}

	var actorID *uint
	if uid, ok := middleware.UserID(c); ok {
		actorID = &uid
	}

	total, hasUpvoted, err := h.Svc.Status(ctx, id, actorID)
	if err != nil {
		l.Error("upvote_status_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch upvotes")
	}

	return c.JSON(http.StatusOK, transport.UpvoteStatusResponse{
		IssueID:      id,
		TotalUpvotes: total,
		HasUpvoted:   hasUpvoted,
	})
}
