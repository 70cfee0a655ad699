package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/dto"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/service"
)

// AssetsHandler exposes asset registration and lifecycle endpoints.
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assetService}
}

// Create handles POST /assets.
func (h *AssetsHandler) Create(c *fiber.Ctx) error {
	var req dto.AssetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	asset, err := h.assets.Create(c.UserContext(), assetInput(req))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{
		"message": "Asset created successfully",
		"data":    dto.NewAssetCreatedResponse(asset),
	})
}

// List handles GET /assets.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	assets, err := h.assets.List(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"count": len(assets), "data": dto.NewAssetList(assets)})
}

// Get handles GET /assets-single/:id.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	asset, err := h.assets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Update handles PUT /assets/:id.
func (h *AssetsHandler) Update(c *fiber.Ctx) error {
	var req dto.AssetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	asset, err := h.assets.Update(c.UserContext(), c.Params("id"), assetInput(req))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Asset updated successfully", "data": dto.NewAssetResponse(asset)})
}

// Delete handles DELETE /assets/:id.
func (h *AssetsHandler) Delete(c *fiber.Ctx) error {
	if err := h.assets.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Asset deleted successfully"})
}

// Deprecate handles PUT /deprecated-asset/:id.
func (h *AssetsHandler) Deprecate(c *fiber.Ctx) error {
	return h.setStatus(c, domain.AssetStatusDeprecated, "Asset marked as deprecated")
}

// Dispose handles PUT /disposed-asset/:id.
func (h *AssetsHandler) Dispose(c *fiber.Ctx) error {
	return h.setStatus(c, domain.AssetStatusDisposed, "Asset marked as disposed")
}

func (h *AssetsHandler) setStatus(c *fiber.Ctx, status domain.AssetStatus, message string) error {
	asset, err := h.assets.SetStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": message, "data": dto.NewAssetResponse(asset)})
}

func assetInput(req dto.AssetRequest) service.AssetInput {
	return service.AssetInput{
		AssetName:        req.AssetName,
		PurchasedDate:    req.PurchasedDate,
		DepreciationDate: req.DepreciationDate,
		Status:           req.Status,
		Images:           req.Images,
		Document:         req.Document,
	}
}
