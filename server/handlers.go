package server

import (
	"net/http"
	"strconv"

	"github.com/existflow/credboard/internal/logger"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleSections(c echo.Context) error {
	sections, err := s.store.ListSections(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, sections)
}

func (s *Server) handleCredentials(c echo.Context) error {
	id, err := idParam(c, "sectionId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid section id"})
	}

	ctx := c.Request().Context()
	ok, err := s.store.SectionExists(ctx, id)
	if err != nil {
		return s.internalError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "section not found"})
	}

	creds, err := s.store.ListCredentialsBySection(ctx, id)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, creds)
}

// handleAttachments answers with an empty list for projects without
// attachments, including unknown ones
func (s *Server) handleAttachments(c echo.Context) error {
	id, err := idParam(c, "projectId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid project id"})
	}

	atts, err := s.store.ListAttachmentsByProject(c.Request().Context(), id)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, atts)
}

func idParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func (s *Server) internalError(c echo.Context, err error) error {
	s.log.Error("Request failed",
		logger.F("uri", c.Request().RequestURI),
		logger.F("error", err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
