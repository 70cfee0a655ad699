package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/dto"
	"github.com/spec-kit/asset-service/internal/service"
)

// CatalogHandler exposes categories, subcategories and items.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"count": len(categories), "data": dto.MapList(categories, dto.NewCategoryResponse)})
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": dto.NewCategoryResponse(category)})
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.catalog.CreateCategory(c.UserContext(), req.CategoryName)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Category created", "data": dto.NewCategoryResponse(category)})
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.catalog.UpdateCategory(c.UserContext(), c.Params("id"), req.CategoryName)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Category updated", "data": dto.NewCategoryResponse(category)})
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Category deleted"})
}

func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	subs, err := h.catalog.ListSubcategories(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"count": len(subs), "data": dto.MapList(subs, dto.NewSubcategoryResponse)})
}

func (h *CatalogHandler) GetSubcategory(c *fiber.Ctx) error {
	sub, err := h.catalog.GetSubcategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": dto.NewSubcategoryResponse(sub)})
}

func (h *CatalogHandler) CreateSubcategory(c *fiber.Ctx) error {
	var req dto.SubcategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sub, err := h.catalog.CreateSubcategory(c.UserContext(), service.SubcategoryInput{
		CategoryName:    req.CategoryName,
		SubCategoryName: req.SubCategoryName,
	})
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Subcategory created", "data": dto.NewSubcategoryResponse(sub)})
}

func (h *CatalogHandler) UpdateSubcategory(c *fiber.Ctx) error {
	var req dto.SubcategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sub, err := h.catalog.UpdateSubcategory(c.UserContext(), c.Params("id"), service.SubcategoryInput{
		CategoryName:    req.CategoryName,
		SubCategoryName: req.SubCategoryName,
	})
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Subcategory updated", "data": dto.NewSubcategoryResponse(sub)})
}

func (h *CatalogHandler) DeleteSubcategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteSubcategory(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Subcategory deleted"})
}

func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.catalog.ListItems(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"count": len(items), "data": dto.MapList(items, dto.NewItemResponse)})
}

func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.catalog.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": dto.NewItemResponse(item)})
}

func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var req dto.ItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.catalog.CreateItem(c.UserContext(), req.ItemName)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Item created", "data": dto.NewItemResponse(item)})
}

func (h *CatalogHandler) UpdateItem(c *fiber.Ctx) error {
	var req dto.ItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.catalog.UpdateItem(c.UserContext(), c.Params("id"), req.ItemName)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Item updated", "data": dto.NewItemResponse(item)})
}

func (h *CatalogHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.catalog.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Item deleted"})
}
