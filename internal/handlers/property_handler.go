package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
	"tharwa/internal/services"
)

// PropertyHandler handles property-related requests.
type PropertyHandler struct {
	propertyService services.PropertyServicer
	auditService    services.AuditServicer
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService services.PropertyServicer, auditService services.AuditServicer) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService, auditService: auditService}
}

// CreatePropertyRequest represents the request payload for creating a property.
type CreatePropertyRequest struct {
	Name          string                 `json:"name" binding:"required,min=1,max=200"`
	Emirate       string                 `json:"emirate" binding:"required,emirate"`
	Developer     string                 `json:"developer" binding:"max=200"`
	Community     string                 `json:"community" binding:"max=200"`
	Bedrooms      int                    `json:"bedrooms" binding:"gte=0,lte=20"`
	Purpose       models.PropertyPurpose `json:"purpose" binding:"required,property_purpose"`
	PurchasePrice int64                  `json:"purchase_price" binding:"gte=0"`
}

// UpdatePropertyRequest represents the request payload for updating a property.
type UpdatePropertyRequest struct {
	Name      string                 `json:"name" binding:"omitempty,min=1,max=200"`
	Developer string                 `json:"developer" binding:"max=200"`
	Community string                 `json:"community" binding:"max=200"`
	Bedrooms  *int                   `json:"bedrooms" binding:"omitempty,gte=0,lte=20"`
	Status    *models.PropertyStatus `json:"status" binding:"omitempty,property_status"`
}

// ListPropertiesQuery represents the query parameters for listing properties.
type ListPropertiesQuery struct {
	pagination.PageRequest
	Status  *models.PropertyStatus  `form:"status" binding:"omitempty,property_status"`
	Purpose *models.PropertyPurpose `form:"purpose" binding:"omitempty,property_purpose"`
	Emirate *string                 `form:"emirate" binding:"omitempty,emirate"`
}

// CreateProperty handles creating a new property.
// @Summary     Create property
// @Description Register a new managed property
// @Tags        properties
// @Accept      json
// @Produce     json
// @Param       request body CreatePropertyRequest true "Property details"
// @Success     201 {object} models.Property "Property created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	property, err := h.propertyService.CreateProperty(
		req.Name, req.Emirate, req.Developer, req.Community,
		req.Bedrooms, req.Purpose, req.PurchasePrice,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_PROPERTY", "property", property.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "emirate": req.Emirate})

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

// GetProperties handles listing properties.
// @Summary     List properties
// @Description Get a paginated list of properties with optional filters
// @Tags        properties
// @Produce     json
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       status    query string false "Filter by status"
// @Param       purpose   query string false "Filter by purpose"
// @Param       emirate   query string false "Filter by emirate"
// @Success     200 {object} pagination.PageResponse[models.Property] "Paginated properties"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties [get]
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	var query ListPropertiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.PropertyFilter{
		Status:  query.Status,
		Purpose: query.Purpose,
		Emirate: query.Emirate,
	}
	result, err := h.propertyService.GetProperties(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProperty handles fetching a single property.
// @Summary     Get property
// @Description Get a property by ID
// @Tags        properties
// @Produce     json
// @Param       id path int true "Property ID"
// @Success     200 {object} models.Property "Property"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	property, err := h.propertyService.GetPropertyByID(propertyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// UpdateProperty handles updating a property.
// @Summary     Update property
// @Description Update a property's details or lifecycle status
// @Tags        properties
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Property ID"
// @Param       request body UpdatePropertyRequest true "Fields to update"
// @Success     200 {object} models.Property "Updated property"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	property, err := h.propertyService.UpdateProperty(propertyID, req.Name, req.Developer, req.Community, req.Bedrooms, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_PROPERTY", "property", propertyID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// DeleteProperty handles deleting a property.
// @Summary     Delete property
// @Description Delete a property
// @Tags        properties
// @Produce     json
// @Param       id path int true "Property ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.propertyService.DeleteProperty(propertyID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_PROPERTY", "property", propertyID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}
