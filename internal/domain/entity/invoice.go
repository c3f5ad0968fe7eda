package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura comprometida. Los datos del
// cliente (nombre y teléfono) se copian al momento de facturar: ediciones
// posteriores del cliente no alteran facturas históricas.
// Una vez creada, la factura es inmutable; solo se soporta borrarla, y el
// borrado NO restaura el inventario descontado en el commit.
type Invoice struct {
	ID              string
	Number          int64 // consecutivo global, inicia en 1, sin huecos ni repetidos
	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	BillDate        time.Time // fecha elegida por el usuario, distinta de CreatedAt
	CreatedAt       time.Time
	DiscountPercent decimal.Decimal // descuento global 0–100
	Subtotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	GrandTotal      decimal.Decimal
}

// InvoiceItem es la foto congelada de una línea del carrito al momento del
// commit. Subtotal = Quantity × UnitPrice × UsageDays; Total refleja el
// subtotal (no hay descuento por línea).
type InvoiceItem struct {
	ID            string
	InvoiceID     string
	EquipmentID   string
	EquipmentName string
	Description   string
	Quantity      int64
	UnitPrice     decimal.Decimal
	UsageDays     int64
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
}
