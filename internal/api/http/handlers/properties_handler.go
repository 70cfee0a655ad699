package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/dto"
	"github.com/spec-kit/asset-service/internal/service"
)

// PropertiesHandler exposes property endpoints.
type PropertiesHandler struct {
	properties *service.PropertyService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(properties *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{properties: properties}
}

// Create handles POST /create-properties.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	var req dto.PropertyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	property, err := h.properties.Create(c.UserContext(), propertyInput(req))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Property created", "data": dto.NewPropertyResponse(property)})
}

// List handles GET /get-properties.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	properties, err := h.properties.List(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"count": len(properties), "data": dto.MapList(properties, dto.NewPropertyResponse)})
}

// Get handles GET /get-properties/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	property, err := h.properties.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": dto.NewPropertyResponse(property)})
}

// Update handles PUT /update-properties/:id.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	var req dto.PropertyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	property, err := h.properties.Update(c.UserContext(), c.Params("id"), propertyInput(req))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Property updated", "data": dto.NewPropertyResponse(property)})
}

// Delete handles DELETE /delete-properties/:id.
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	if err := h.properties.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Property deleted"})
}

func propertyInput(req dto.PropertyRequest) service.PropertyInput {
	return service.PropertyInput{
		CategoryName:    req.CategoryName,
		SubCategoryName: req.SubCategoryName,
		FlatNumber:      req.FlatNumber,
		AssetIDs:        req.AssignAssets,
	}
}
