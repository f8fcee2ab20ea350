package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
	"tharwa/internal/services"
)

// --- mock property service ---

type mockPropertyService struct {
	createPropertyFn  func(name, emirate, developer, community string, bedrooms int, purpose models.PropertyPurpose, purchasePrice int64) (*models.Property, error)
	getPropertiesFn   func(page pagination.PageRequest, filter services.PropertyFilter) (*pagination.PageResponse[models.Property], error)
	getPropertyByIDFn func(propertyID uint) (*models.Property, error)
	updatePropertyFn  func(propertyID uint, name, developer, community string, bedrooms *int, status *models.PropertyStatus) (*models.Property, error)
	deletePropertyFn  func(propertyID uint) error
}

func (m *mockPropertyService) CreateProperty(name, emirate, developer, community string, bedrooms int, purpose models.PropertyPurpose, purchasePrice int64) (*models.Property, error) {
	if m.createPropertyFn != nil {
		return m.createPropertyFn(name, emirate, developer, community, bedrooms, purpose, purchasePrice)
	}
	return &models.Property{}, nil
}

func (m *mockPropertyService) GetProperties(page pagination.PageRequest, filter services.PropertyFilter) (*pagination.PageResponse[models.Property], error) {
	if m.getPropertiesFn != nil {
		return m.getPropertiesFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Property{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockPropertyService) GetPropertyByID(propertyID uint) (*models.Property, error) {
	if m.getPropertyByIDFn != nil {
		return m.getPropertyByIDFn(propertyID)
	}
	return &models.Property{}, nil
}

func (m *mockPropertyService) UpdateProperty(propertyID uint, name, developer, community string, bedrooms *int, status *models.PropertyStatus) (*models.Property, error) {
	if m.updatePropertyFn != nil {
		return m.updatePropertyFn(propertyID, name, developer, community, bedrooms, status)
	}
	return &models.Property{}, nil
}

func (m *mockPropertyService) DeleteProperty(propertyID uint) error {
	if m.deletePropertyFn != nil {
		return m.deletePropertyFn(propertyID)
	}
	return nil
}

func setupPropertyRouter(handler *PropertyHandler) *gin.Engine {
	r := gin.New()
	r.POST("/properties", handler.CreateProperty)
	r.GET("/properties", handler.GetProperties)
	r.GET("/properties/:id", handler.GetProperty)
	r.PUT("/properties/:id", handler.UpdateProperty)
	r.DELETE("/properties/:id", handler.DeleteProperty)
	return r
}

func TestPropertyHandler_CreateProperty(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockPropertyService{
			createPropertyFn: func(name, emirate, _, _ string, _ int, _ models.PropertyPurpose, _ int64) (*models.Property, error) {
				p := &models.Property{Name: name, Emirate: emirate}
				p.ID = 1
				return p, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, http.MethodPost, "/properties",
			`{"name":"Marina View 1204","emirate":"Dubai","purpose":"off_plan","purchase_price":1000000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on unknown emirate", func(t *testing.T) {
		handler := NewPropertyHandler(&mockPropertyService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, http.MethodPost, "/properties",
			`{"name":"Marina View 1204","emirate":"Atlantis","purpose":"off_plan"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown purpose", func(t *testing.T) {
		handler := NewPropertyHandler(&mockPropertyService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, http.MethodPost, "/properties",
			`{"name":"Marina View 1204","emirate":"Dubai","purpose":"timeshare"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPropertyHandler_GetProperty(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockPropertyService{
			getPropertyByIDFn: func(uint) (*models.Property, error) {
				return nil, apperrors.ErrPropertyNotFound
			},
		}
		handler := NewPropertyHandler(svc, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, http.MethodGet, "/properties/42", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PROPERTY_NOT_FOUND")
	})

	t.Run("returns 400 on bad path id", func(t *testing.T) {
		handler := NewPropertyHandler(&mockPropertyService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, http.MethodGet, "/properties/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPropertyHandler_GetProperties(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.PropertyFilter
		svc := &mockPropertyService{
			getPropertiesFn: func(page pagination.PageRequest, filter services.PropertyFilter) (*pagination.PageResponse[models.Property], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Property{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, http.MethodGet, "/properties?status=active&emirate=Dubai", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Status == nil || *gotFilter.Status != models.PropertyStatusActive {
			t.Errorf("expected active status filter, got %v", gotFilter.Status)
		}
		if gotFilter.Emirate == nil || *gotFilter.Emirate != "Dubai" {
			t.Errorf("expected Dubai emirate filter, got %v", gotFilter.Emirate)
		}
	})
}
