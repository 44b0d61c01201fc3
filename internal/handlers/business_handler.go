package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/altamedia/contentdesk/backend/internal/middleware"
	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/altamedia/contentdesk/backend/internal/repositories"
	"github.com/altamedia/contentdesk/backend/pkg/crypto"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// BusinessHandler handles HTTP requests related to client businesses
type BusinessHandler struct {
	businessRepository repositories.BusinessRepository
	codec              *crypto.Codec
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessRepo repositories.BusinessRepository, codec *crypto.Codec) *BusinessHandler {
	return &BusinessHandler{businessRepository: businessRepo, codec: codec}
}

// RegisterBusinessRoutes registers business-related routes. Creation and
// deletion are restricted to elevated roles; listing is roster-filtered for
// everyone else.
func (h *BusinessHandler) RegisterBusinessRoutes(g *echo.Group) {
	g.POST("/businesses", h.CreateBusiness, middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
	g.GET("/businesses", h.GetBusinesses)
	g.GET("/businesses/:id", h.GetBusiness)
	g.PUT("/businesses/:id", h.UpdateBusiness, middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
	g.DELETE("/businesses/:id", h.DeleteBusiness, middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
}

// CreateBusiness creates a new client business. Social media passwords are
// encrypted before they reach the database.
func (h *BusinessHandler) CreateBusiness(c echo.Context) error {
	var req models.CreateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !contains(models.Packages, req.Package) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid package")
	}
	if !contains(models.BusinessTypes, req.TypeOfBusiness) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid type of business")
	}

	business := &models.Business{
		BusinessName:      req.BusinessName,
		TypeOfBusiness:    req.TypeOfBusiness,
		Country:           req.Country,
		Package:           req.Package,
		EntryDate:         req.EntryDate,
		ContactDetails:    req.ContactDetails,
		Email:             req.Email,
		Address:           req.Address,
		SocialMediaLinks:  req.SocialMediaLinks,
		Note:              req.Note,
		Tags:              req.Tags,
		AssignedWriters:   req.AssignedWriters,
		AssignedDesigners: req.AssignedDesigners,
		AssignedEditors:   req.AssignedEditors,
		Status:            true,
	}
	h.encryptCredentials(business.SocialMediaLinks)

	if err := h.businessRepository.CreateBusiness(c.Request().Context(), business); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.decryptCredentials(business.SocialMediaLinks)
	return c.JSON(http.StatusCreated, business)
}

// GetBusinesses lists active businesses with search and pagination.
// Non-elevated users only see businesses whose rosters include them.
func (h *BusinessHandler) GetBusinesses(c echo.Context) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := repositories.BusinessFilter{
		Search:    c.QueryParam("search"),
		Page:      page,
		Limit:     limit,
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if !user.IsElevated() {
		filter.CollaboratorID = user.ID
	}

	businesses, total, err := h.businessRepository.GetBusinesses(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for i := range businesses {
		h.decryptCredentials(businesses[i].SocialMediaLinks)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": businesses,
		"meta": echo.Map{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GetBusiness retrieves one business with decrypted credentials
func (h *BusinessHandler) GetBusiness(c echo.Context) error {
	business, err := h.businessRepository.GetBusinessByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Business not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.decryptCredentials(business.SocialMediaLinks)
	return c.JSON(http.StatusOK, business)
}

// UpdateBusiness applies a partial update to a business
func (h *BusinessHandler) UpdateBusiness(c echo.Context) error {
	var req models.UpdateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Package != nil && !contains(models.Packages, *req.Package) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid package")
	}
	if req.TypeOfBusiness != nil && !contains(models.BusinessTypes, *req.TypeOfBusiness) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid type of business")
	}

	update := buildBusinessUpdate(&req)
	if req.SocialMediaLinks != nil {
		h.encryptCredentials(req.SocialMediaLinks)
		update["socialMediaLinks"] = req.SocialMediaLinks
	}

	business, err := h.businessRepository.UpdateBusiness(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Business not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.decryptCredentials(business.SocialMediaLinks)
	return c.JSON(http.StatusOK, business)
}

// DeleteBusiness deletes a business
func (h *BusinessHandler) DeleteBusiness(c echo.Context) error {
	if err := h.businessRepository.DeleteBusiness(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Business not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// encryptCredentials encrypts platform passwords in place, skipping values
// that already carry the encrypted token separator.
func (h *BusinessHandler) encryptCredentials(links *models.SocialMediaLinks) {
	for _, platform := range links.Platforms() {
		if platform.Password != "" && !crypto.IsEncrypted(platform.Password) {
			platform.Password = h.codec.Encrypt(platform.Password)
		}
	}
}

// decryptCredentials decrypts platform passwords in place for responses
func (h *BusinessHandler) decryptCredentials(links *models.SocialMediaLinks) {
	for _, platform := range links.Platforms() {
		if platform.Password != "" {
			platform.Password = h.codec.Decrypt(platform.Password)
		}
	}
}

func buildBusinessUpdate(req *models.UpdateBusinessRequest) bson.M {
	update := bson.M{}

	setString := func(key string, value *string) {
		if value != nil {
			update[key] = *value
		}
	}
	setString("businessName", req.BusinessName)
	setString("typeOfBusiness", req.TypeOfBusiness)
	setString("country", req.Country)
	setString("package", req.Package)
	setString("entryDate", req.EntryDate)
	setString("contactDetails", req.ContactDetails)
	setString("email", req.Email)
	setString("address", req.Address)
	setString("note", req.Note)
	setString("tags", req.Tags)

	if req.AssignedWriters != nil {
		update["assignedWriters"] = req.AssignedWriters
	}
	if req.AssignedDesigners != nil {
		update["assignedDesigners"] = req.AssignedDesigners
	}
	if req.AssignedEditors != nil {
		update["assignedEditors"] = req.AssignedEditors
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}

	return update
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
