package server

import (
	"context"
	"net/http"

	"github.com/existflow/credboard/internal/db"
	"github.com/existflow/credboard/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server serves sections, credentials and attachments over the REST contract
// the credboard client reads
type Server struct {
	store *db.DB
	echo  *echo.Echo
	log   *logger.Logger
}

// New opens the store at dsn and creates a server on it
func New(ctx context.Context, dsn string) (*Server, error) {
	store, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewWithStore(store), nil
}

// NewWithStore creates a server on an already opened store
func NewWithStore(store *db.DB) *Server {
	s := &Server{
		store: store,
		log:   logger.WithFields(logger.F("component", "server")),
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	api.GET("/sections", s.handleSections)
	api.GET("/credentials/:sectionId", s.handleCredentials)
	api.GET("/attachments/:projectId", s.handleAttachments)

	s.echo = e
}

// Store returns the backing store, for seeding
func (s *Server) Store() *db.DB {
	return s.store
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	s.log.Info("Server listening", logger.F("addr", addr), logger.F("dialect", string(s.store.Dialect())))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.store.PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
