package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/service"
)

type SummaryHTTP struct {
	Svc *service.SummaryService
}

func (h *SummaryHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "summary.get")

	id, err := issueID(c)
	if err != nil {
		return err
	}

	summary, err := h.Svc.ForIssue(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "issue not found")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "not enough content to summarize, add more description or comments")
		default:
			l.Error("summary_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "summarization failed")
		}
	}

	return c.JSON(http.StatusOK, summary)
}
