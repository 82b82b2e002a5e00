package handler

import (
	"go-counter-pos/internal/model"
	"go-counter-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MenuHandler struct {
	service service.MenuService
}

func NewMenuHandler(s service.MenuService) *MenuHandler {
	return &MenuHandler{service: s}
}

// GetMenuItems returns the full catalog
// GET /api/v1/menu
func (h *MenuHandler) GetMenuItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	responses := make([]model.MenuItemResponse, len(items))
	for i := range items {
		responses[i] = items[i].ToResponse()
	}
	return c.JSON(responses)
}

// GetMenuItem returns one item
// GET /api/v1/menu/:id
func (h *MenuHandler) GetMenuItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	item, err := h.service.GetItem(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Menu item not found"})
	}
	return c.JSON(item.ToResponse())
}

// CreateMenuItem adds a catalog entry
// POST /api/v1/menu
func (h *MenuHandler) CreateMenuItem(c *fiber.Ctx) error {
	var item model.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateItem(&item, getUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Menu item created", "data": item.ToResponse()})
}

// UpdateMenuItem applies a partial update
// PUT /api/v1/menu/:id
func (h *MenuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var req model.MenuItemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateItem(id, &req, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Menu item updated", "data": updated.ToResponse()})
}

// ResetStock zeroes stock across the catalog
// POST /api/v1/menu-stock/reset?scope=today|all
func (h *MenuHandler) ResetStock(c *fiber.Ctx) error {
	scope := model.ResetScope(c.Query("scope", string(model.ResetScopeToday)))

	items, err := h.service.ResetStock(scope, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	responses := make([]model.MenuItemResponse, len(items))
	for i := range items {
		responses[i] = items[i].ToResponse()
	}
	return c.JSON(fiber.Map{"message": "Stock reset", "data": responses})
}
