package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/middleware"
	"github.com/samaj-issue/api/internal/service"
	"github.com/samaj-issue/api/internal/transport"
)

type AdminHTTP struct {
	Svc      *service.AdminService
	Comments *service.CommentService
}

func (h *AdminHTTP) FlaggedComments(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.flagged_comments")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	comments, err := h.Comments.Flagged(ctx, actorID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
		}
		l.Error("flagged_comments_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list flagged comments")
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.stats")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	stats, err := h.Svc.Stats(ctx, actorID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
		}
		l.Error("stats_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch stats")
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHTTP) UpdateIssueStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_issue_status")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	id, err := issueID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateIssueStatus(ctx, actorID, id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("update_status_denied", "status", 403, "issue_id", id, "actor_id", actorID)
			return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "issue not found")
		default:
			l.Error("update_status_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update issue status")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "issue status updated to " + req.Status})
}
