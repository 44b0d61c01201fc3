package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/altamedia/contentdesk/backend/internal/middleware"
	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/altamedia/contentdesk/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ContentHandler handles HTTP requests for content items. The heavy lifting
// (assignment snapshots, authorization, notification fan-out) lives in the
// content service; this layer binds, validates and maps errors.
type ContentHandler struct {
	service *services.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(service *services.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// RegisterContentRoutes registers content-related routes. Only writers and
// elevated roles create content; update and delete are authorized per item
// inside the service.
func (h *ContentHandler) RegisterContentRoutes(g *echo.Group) {
	g.POST("/contents", h.CreateContent, middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleWriter))
	g.GET("/contents", h.GetContents)
	g.GET("/contents/:id", h.GetContent)
	g.PUT("/contents/:id", h.UpdateContent)
	g.DELETE("/contents/:id", h.DeleteContent)
}

// CreateContent creates a content item for a business
func (h *ContentHandler) CreateContent(c echo.Context) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.CreateContent(c.Request().Context(), user, &req)
	if err != nil {
		return mapContentError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// GetContents lists content items. Filters arrive as query parameters;
// designer and editor visibility restrictions are applied by the service.
func (h *ContentHandler) GetContents(c echo.Context) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := models.ContentFilter{
		Date:             c.QueryParam("date"),
		TodayOnly:        c.QueryParam("today") == "true",
		Business:         c.QueryParam("business"),
		AssignedWriter:   c.QueryParam("assignedWriter"),
		AssignedDesigner: c.QueryParam("assignedDesigner"),
		AssignedEditor:   c.QueryParam("assignedEditor"),
		AddedBy:          c.QueryParam("addedBy"),
		ContentType:      c.QueryParam("contentType"),
		Page:             page,
		Limit:            limit,
		SortBy:           c.QueryParam("sortBy"),
		SortOrder:        c.QueryParam("sortOrder"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := raw == "true"
		filter.Status = &status
	}

	result, err := h.service.ListContents(c.Request().Context(), user, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// GetContent retrieves one content item
func (h *ContentHandler) GetContent(c echo.Context) error {
	item, err := h.service.GetContent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapContentError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateContent applies a partial update to a content item
func (h *ContentHandler) UpdateContent(c echo.Context) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.UpdateContent(c.Request().Context(), user, c.Param("id"), &req)
	if err != nil {
		return mapContentError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteContent deletes a content item
func (h *ContentHandler) DeleteContent(c echo.Context) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.service.DeleteContent(c.Request().Context(), user, c.Param("id")); err != nil {
		return mapContentError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapContentError(err error) error {
	switch {
	case errors.Is(err, services.ErrContentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	case errors.Is(err, services.ErrBusinessNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Business not found")
	case errors.Is(err, services.ErrNotAuthorized):
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to modify this content")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
