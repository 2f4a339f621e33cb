package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo *echo.Echo
	svc  *service.Service
	addr string
}

func NewServer(svc *service.Service, addr string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{echo: e, svc: svc, addr: addr}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/refresh", s.refresh)
	authGroup.GET("/users/me", s.me, s.requireUser)

	users := api.Group("/users", s.requireUser, s.requireAdmin)
	users.GET("", s.listUsers)
	users.GET("/:id", s.getUser)
	users.POST("", s.createUser)

	tasks := api.Group("/tasks", s.requireUser)
	tasks.GET("", s.listTasks)
	tasks.POST("", s.createTask)
	tasks.GET("/:id", s.getTask)
	tasks.PATCH("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)
	tasks.GET("/:id/logs", s.taskLogs)
	tasks.POST("/:id/complete", s.completeTask)
	tasks.DELETE("/:id/complete", s.undoCompleteTask)

	api.POST("/sync", s.sync, s.requireUser)
}

// Handler exposes the routed echo instance; tests drive it directly.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Server starting on %s...", s.addr)
		if err := s.echo.Start(s.addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-stop:
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.echo.Shutdown(ctx); err != nil {
			return err
		}
		log.Println("Server gracefully stopped")
	}

	return nil
}
