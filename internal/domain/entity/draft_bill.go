package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftBill es una factura "guardada para después": foto del cliente, las
// líneas del carrito, el descuento global y la fecha de facturación.
// Se sobreescribe al volver a guardar con el mismo ID y se elimina cuando
// el borrador se convierte en factura real.
type DraftBill struct {
	ID              string
	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	Lines           []DraftLine
	DiscountPercent decimal.Decimal
	BillDate        time.Time
	SavedAt         time.Time
}

// DraftLine replica los campos de una línea de carrito para persistirla
// como parte del borrador.
type DraftLine struct {
	EquipmentID   string          `json:"equipmentId"`
	EquipmentName string          `json:"equipmentName"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	UsageDays     int64           `json:"usageDays"`
	Description   string          `json:"description,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}
