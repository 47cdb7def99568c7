package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/middleware"
	"github.com/samaj-issue/api/internal/service"
	"github.com/samaj-issue/api/internal/transport"
	"github.com/samaj-issue/api/internal/util"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// formFile opens an optional multipart file. A missing part, or a request
// that is not multipart at all, simply means no file was supplied.
func formFile(c echo.Context, name string) (io.ReadCloser, string, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	return f, fh.Filename, nil
}

func (h *AuthHTTP) RequestSignup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.request_signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.RequestSignup(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "email is required")
		case errors.Is(err, service.ErrDuplicateAccount):
			return echo.NewHTTPError(http.StatusBadRequest, "email already registered")
		case errors.Is(err, service.ErrDeliveryFailed):
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to send OTP")
		default:
			l.Error("signup_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent to your email"})
}

func (h *AuthHTTP) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.verify_otp")

	in := service.FinalizeSignupInput{
		Email:    c.FormValue("email"),
		Code:     c.FormValue("code"),
		Name:     c.FormValue("name"),
		Password: c.FormValue("password"),
	}

	picture, pictureName, err := formFile(c, "picture")
	if err != nil {
		l.Warn("verify_otp_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid picture upload")
	}
	if picture != nil {
		defer picture.Close()
		in.Picture = picture
		in.PictureName = pictureName
	}

	user, err := h.Svc.FinalizeSignup(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "email, code, name and password are required")
		case errors.Is(err, service.ErrCodeNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, "OTP not found")
		case errors.Is(err, service.ErrCodeMismatchOrExpired):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid or expired OTP")
		case errors.Is(err, service.ErrAlreadyVerified):
			return echo.NewHTTPError(http.StatusBadRequest, "user already verified")
		default:
			l.Error("verify_otp_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Signup complete. You can now login.",
		"user":    transport.NewUserProjection(user),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrNotVerified):
			return echo.NewHTTPError(http.StatusForbidden, "please complete email verification first")
		case errors.Is(err, service.ErrBadCredential):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid password")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Token: token,
		User:  transport.NewUserProjection(user),
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	user, err := h.Svc.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, transport.NewUserProjection(user))
}

func (h *AuthHTTP) GetUserByID(c echo.Context) error {
	ctx := c.Request().Context()

	id := util.ParseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	user, err := h.Svc.GetUser(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch user")
	}

	return c.JSON(http.StatusOK, transport.NewUserProjection(user))
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	in := service.UpdateProfileInput{
		Name:     c.FormValue("name"),
		Password: c.FormValue("password"),
	}

	picture, pictureName, err := formFile(c, "picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid picture upload")
	}
	if picture != nil {
		defer picture.Close()
		in.Picture = picture
		in.PictureName = pictureName
	}

	if err := h.Svc.UpdateProfile(ctx, actorID, in); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "no data provided to update")
		}
		l.Error("update_profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "profile update failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}
