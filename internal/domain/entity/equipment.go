package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equipment representa un artículo del inventario de alquiler (sillas,
// carpas, equipos de sonido...). Quantity es el stock en mano autoritativo
// y nunca puede quedar negativo; Price es el precio unitario por defecto
// que se sugiere al agregar el artículo a un carrito.
type Equipment struct {
	ID        string
	Name      string
	Quantity  int64
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
