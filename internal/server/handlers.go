package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := s.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		return s.httpError(err)
	}

	return c.JSON(http.StatusCreated, registerResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := s.svc.Login(req.Username, req.Password)
	if err != nil {
		return s.httpError(err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (s *Server) refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := s.svc.Refresh(req.RefreshToken)
	if err != nil {
		return s.httpError(err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (s *Server) me(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserResponse(currentUser(c)))
}

func (s *Server) listUsers(c echo.Context) error {
	users, err := s.svc.ListUsers()
	if err != nil {
		return s.httpError(err)
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := s.svc.GetUser(uint(id))
	if err != nil {
		return s.httpError(err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) createUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := s.svc.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		return s.httpError(err)
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}
