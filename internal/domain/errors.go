package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrIncompleteBill    = errors.New("factura incompleta: falta cliente o el carrito está vacío")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrIndexOutOfRange   = errors.New("índice de línea fuera de rango")
)

// StockConflictError indica que la demanda agregada del carrito sobre un
// equipo supera el stock disponible. Envuelve ErrInsufficientStock para que
// errors.Is siga funcionando en los handlers.
type StockConflictError struct {
	EquipmentID   string
	EquipmentName string
	Requested     int64 // demanda agregada del carrito para este equipo
	Available     int64 // stock actual del equipo
}

// Shortfall devuelve cuántas unidades faltan para cubrir la demanda.
func (e *StockConflictError) Shortfall() int64 {
	return e.Requested - e.Available
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: solicitado %d, disponible %d (faltan %d)",
		e.EquipmentName, e.Requested, e.Available, e.Shortfall())
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockConflictError) Unwrap() error { return ErrInsufficientStock }
