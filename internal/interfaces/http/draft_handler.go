package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/application/dto"
)

// DraftHandler maneja las facturas guardadas para después.
type DraftHandler struct {
	uc *billing.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *billing.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Save guarda (o sobreescribe, si trae ID) un borrador.
// POST /api/drafts
func (h *DraftHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.uc.Save(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// List devuelve todos los borradores.
// GET /api/drafts
func (h *DraftHandler) List(c *fiber.Ctx) error {
	drafts, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(drafts)
}

// Get devuelve un borrador con su carrito completo para retomarlo.
// GET /api/drafts/:id
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	draft, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(draft)
}

// Delete elimina un borrador explícitamente.
// DELETE /api/drafts/:id
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
