package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/middleware"
	"github.com/samaj-issue/api/internal/service"
	"github.com/samaj-issue/api/internal/util"
)

type IssueHTTP struct {
	Svc *service.IssueService
}

func issueID(c echo.Context) (uint, error) {
	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return uint(id), nil
}

func (h *IssueHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "issue.list")

	issues, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_issues_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list issues")
	}
	return c.JSON(http.StatusOK, issues)
}

func (h *IssueHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "issue.get")

	id, err := issueID(c)
	if err != nil {
		return err
	}

	issue, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "issue not found")
		}
		l.Error("get_issue_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get issue")
	}
	return c.JSON(http.StatusOK, issue)
}

func (h *IssueHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "issue.create")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	in := service.CreateIssueInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
	}

	image, imageName, err := formFile(c, "image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	if image != nil {
		defer image.Close()
		in.Image = image
		in.ImageName = imageName
	}

	issue, err := h.Svc.Create(ctx, actorID, in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "title is required")
		}
		l.Error("create_issue_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create issue")
	}

	return c.JSON(http.StatusCreated, issue)
}

func (h *IssueHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "issue.update")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	id, err := issueID(c)
	if err != nil {
		return err
	}

	in := service.UpdateIssueInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
	}

	image, imageName, err := formFile(c, "image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	if image != nil {
		defer image.Close()
		in.Image = image
		in.ImageName = imageName
	}

	issue, err := h.Svc.Update(ctx, actorID, id, in)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "issue not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("update_issue_denied", "status", 403, "issue_id", id, "actor_id", actorID)
			return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
		default:
			l.Error("update_issue_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update issue")
		}
	}

	return c.JSON(http.StatusOK, issue)
}

func (h *IssueHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "issue.delete")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	id, err := issueID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, actorID, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "issue not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("delete_issue_denied", "status", 403, "issue_id", id, "actor_id", actorID)
			return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
		default:
			l.Error("delete_issue_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete issue")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "issue deleted"})
}

func (h *IssueHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "issue.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, issues, err := h.Svc.Search(ctx, q, from, size)
	if err != nil {
		l.Error("search_issues_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "issues": issues})
}
