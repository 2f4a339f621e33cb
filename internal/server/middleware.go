package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/auth"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/model"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/service"
	"github.com/labstack/echo/v4"
)

const currentUserKey = "currentUser"

// requireUser resolves the acting user from the Authorization header's
// bearer access token and stores it on the request context.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
		}

		user, err := s.svc.UserFromToken(parts[1], auth.TokenTypeAccess)
		if err != nil {
			return s.httpError(err)
		}

		c.Set(currentUserKey, user)
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.svc.RequireRole(currentUser(c), model.RoleAdmin); err != nil {
			return s.httpError(err)
		}
		return next(c)
	}
}

// currentUser is only valid behind requireUser.
func currentUser(c echo.Context) *model.User {
	return c.Get(currentUserKey).(*model.User)
}

// httpError maps service failures to transport responses. Token and
// credential failures stay deliberately generic.
func (s *Server) httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrEmptyFields), errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, service.ErrInvalidTokenType):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token type")
	case errors.Is(err, auth.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token error")
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Access forbidden")
	case errors.Is(err, service.ErrAlreadyCompleted):
		return echo.NewHTTPError(http.StatusBadRequest, "Task already completed today")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "Already exists")
	default:
		log.Printf("internal error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
