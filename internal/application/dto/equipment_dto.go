package dto

import "github.com/shopspring/decimal"

// CreateEquipmentRequest alta de un artículo de inventario.
type CreateEquipmentRequest struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateEquipmentRequest edición directa de un artículo.
type UpdateEquipmentRequest struct {
	Name     *string          `json:"name"`
	Quantity *int64           `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// UpdateStockRequest ruta rápida para corregir el stock en mano, ofrecida
// cuando un alta de línea choca contra el stock disponible.
type UpdateStockRequest struct {
	Quantity int64 `json:"quantity"`
}

// EquipmentResponse representación de un artículo en la API.
type EquipmentResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}
