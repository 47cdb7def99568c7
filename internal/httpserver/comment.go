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
	"github.com/samaj-issue/api/internal/util"
)

type CommentHTTP struct {
	Svc *service.CommentService
}

func commentID(c echo.Context) (uint, error) {
	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return uint(id), nil
}

func (h *CommentHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comment.list")

	id, err := issueID(c)
	if err != nil {
		return err
	}

	comments, err := h.Svc.List(ctx, id)
	if err != nil {
		l.Error("list_comments_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list comments")
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comment.add")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	id, err := issueID(c)
	if err != nil {
		return err
	}

	var req transport.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	comment, err := h.Svc.Add(ctx, actorID, id, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "comment text is required")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "issue not found")
		default:
			l.Error("add_comment_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot add comment")
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comment.update")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	id, err := commentID(c)
	if err != nil {
		return err
	}

	var req transport.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Update(ctx, actorID, id, req.Text); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "comment text is required")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "comment not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("update_comment_denied", "status", 403, "comment_id", id, "actor_id", actorID)
			return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
		default:
			l.Error("update_comment_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update comment")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "comment updated"})
}

func (h *CommentHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comment.delete")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	id, err := commentID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, actorID, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "comment not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("delete_comment_denied", "status", 403, "comment_id", id, "actor_id", actorID)
			return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
		default:
			l.Error("delete_comment_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete comment")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "comment deleted"})
}

func (h *CommentHTTP) Flag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comment.flag")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	id, err := commentID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Flag(ctx, actorID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("flag_comment_denied", "status", 403, "comment_id", id, "actor_id", actorID)
			return echo.NewHTTPError(http.StatusForbidden, "only admin can flag comments")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "comment not found")
		default:
			l.Error("flag_comment_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot flag comment")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "comment flagged"})
}
