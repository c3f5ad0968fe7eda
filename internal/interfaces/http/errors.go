package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
)

// respondError mapea errores de dominio a códigos HTTP. Un conflicto de
// stock viaja con su detalle (equipo, disponible, faltante) para que el
// cliente pueda ofrecer la ruta de actualizar stock.
func respondError(c *fiber.Ctx, err error) error {
	var conflict *domain.StockConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.StockConflictResponse{
			Code:          "STOCK_CONFLICT",
			Message:       conflict.Error(),
			EquipmentID:   conflict.EquipmentID,
			EquipmentName: conflict.EquipmentName,
			Requested:     conflict.Requested,
			Available:     conflict.Available,
			Shortfall:     conflict.Shortfall(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrIncompleteBill):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INCOMPLETE_BILL", Message: "seleccione un cliente y agregue ítems al carrito",
		})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrIndexOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "recurso no encontrado",
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: "recurso duplicado",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
