package billing

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// MaxDescriptionLen longitud máxima de la descripción libre de una línea.
const MaxDescriptionLen = 500

var oneHundred = decimal.NewFromInt(100)

// CartLine es una línea del carrito en construcción. Nunca se persiste
// directamente: al hacer commit se congela como entity.InvoiceItem.
// Subtotal = Quantity × UnitPrice × UsageDays y se recalcula en cada
// mutación; no es mutable de forma independiente.
type CartLine struct {
	EquipmentID   string
	EquipmentName string
	Quantity      int64
	UnitPrice     decimal.Decimal
	UsageDays     int64
	Description   string
	Subtotal      decimal.Decimal
	Total         decimal.Decimal // hoy refleja Subtotal (no hay descuento por línea)
}

// LineInput campos editables de una línea (alta o edición).
type LineInput struct {
	Quantity    int64
	UnitPrice   decimal.Decimal
	UsageDays   int64
	Description string
}

// ParseLineInput convierte los campos tal como llegan de un formulario.
// Rechaza entradas no numéricas en lugar de convertirlas silenciosamente
// a cero: "abc" como cantidad es un error, no una cantidad 0.
func ParseLineInput(qty, price, usageDays, description string) (LineInput, error) {
	q, err := strconv.ParseInt(strings.TrimSpace(qty), 10, 64)
	if err != nil {
		return LineInput{}, domain.ErrInvalidInput
	}
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return LineInput{}, domain.ErrInvalidInput
	}
	d, err := strconv.ParseInt(strings.TrimSpace(usageDays), 10, 64)
	if err != nil {
		return LineInput{}, domain.ErrInvalidInput
	}
	return LineInput{Quantity: q, UnitPrice: p, UsageDays: d, Description: description}, nil
}

func (in LineInput) validate() error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.UsageDays < 1 {
		return domain.ErrInvalidInput
	}
	if len(in.Description) > MaxDescriptionLen {
		return domain.ErrInvalidInput
	}
	return nil
}

// subtotal calcula Quantity × UnitPrice × UsageDays.
func (in LineInput) subtotal() decimal.Decimal {
	return decimal.NewFromInt(in.Quantity).
		Mul(in.UnitPrice).
		Mul(decimal.NewFromInt(in.UsageDays))
}

// Cart mantiene la secuencia ordenada de líneas de una factura en curso y
// sus totales derivados. Es un motor en memoria de un solo actor: la capa
// HTTP serializa los commits, el carrito no necesita locking propio.
type Cart struct {
	Customer        *entity.Customer
	Lines           []CartLine
	DiscountPercent decimal.Decimal
	BillDate        time.Time
	DraftID         string // ID del borrador del que se retomó el carrito, si aplica
}

// NewCart crea un carrito vacío con fecha de facturación hoy.
func NewCart() *Cart {
	return &Cart{BillDate: time.Now()}
}

// SelectCustomer fija el cliente del carrito.
func (c *Cart) SelectCustomer(customer *entity.Customer) {
	c.Customer = customer
}

// AddLine valida y agrega una línea al final del carrito. No verifica stock:
// esa es responsabilidad de la reconciliación (CheckLineAgainstStock antes de
// agregar, Reconcile antes del commit).
func (c *Cart) AddLine(equipmentID, equipmentName string, in LineInput) error {
	if equipmentID == "" {
		return domain.ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return err
	}
	sub := in.subtotal()
	c.Lines = append(c.Lines, CartLine{
		EquipmentID:   equipmentID,
		EquipmentName: equipmentName,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		UsageDays:     in.UsageDays,
		Description:   strings.TrimSpace(in.Description),
		Subtotal:      sub,
		Total:         sub,
	})
	return nil
}

// EditLine aplica la misma validación del alta y recalcula el subtotal.
func (c *Cart) EditLine(index int, in LineInput) error {
	if index < 0 || index >= len(c.Lines) {
		return domain.ErrIndexOutOfRange
	}
	if err := in.validate(); err != nil {
		return err
	}
	line := &c.Lines[index]
	line.Quantity = in.Quantity
	line.UnitPrice = in.UnitPrice
	line.UsageDays = in.UsageDays
	line.Description = strings.TrimSpace(in.Description)
	line.Subtotal = in.subtotal()
	line.Total = line.Subtotal
	return nil
}

// RemoveLine quita la línea y reindexa.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return domain.ErrIndexOutOfRange
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

// SetDiscount fija el descuento global en porcentaje [0,100].
func (c *Cart) SetDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(oneHundred) {
		return domain.ErrInvalidInput
	}
	c.DiscountPercent = percent
	return nil
}

// Subtotal suma los subtotales de todas las líneas.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

// DiscountAmount = Subtotal × DiscountPercent / 100.
func (c *Cart) DiscountAmount() decimal.Decimal {
	return c.Subtotal().Mul(c.DiscountPercent).Div(oneHundred)
}

// GrandTotal = Subtotal − DiscountAmount.
func (c *Cart) GrandTotal() decimal.Decimal {
	return c.Subtotal().Sub(c.DiscountAmount())
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Clear resetea el carrito: sin líneas, sin descuento, sin cliente, fecha de
// hoy. Se usa tras un commit exitoso y al cancelar explícitamente.
func (c *Cart) Clear() {
	c.Customer = nil
	c.Lines = nil
	c.DiscountPercent = decimal.Zero
	c.BillDate = time.Now()
	c.DraftID = ""
}
