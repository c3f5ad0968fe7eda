package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/inventory"
)

// EquipmentHandler maneja las peticiones HTTP del inventario de alquiler.
type EquipmentHandler struct {
	uc *inventory.EquipmentUseCase
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *inventory.EquipmentUseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

// Create registra un equipo.
// POST /api/equipment
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	eq, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(eq)
}

// List devuelve el inventario completo.
// GET /api/equipment
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update edición directa de un equipo.
// PUT /api/equipment/:id
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	eq, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(eq)
}

// UpdateStock corrige el stock en mano; es la salida ofrecida ante un
// conflicto de stock al armar un carrito.
// PUT /api/equipment/:id/stock
func (h *EquipmentHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	eq, err := h.uc.UpdateStock(c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(eq)
}

// Delete elimina un equipo del catálogo.
// DELETE /api/equipment/:id
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
