package dto

import "github.com/shopspring/decimal"

// CartLineRequest una línea del carrito tal como la envía el cliente.
type CartLineRequest struct {
	EquipmentID string          `json:"equipmentId"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UsageDays   int64           `json:"usageDays"`
	Description string          `json:"description"`
}

// CommitInvoiceRequest commit de una factura: cliente + carrito + descuento
// global + fecha de facturación. DraftID viene cuando el carrito se retomó
// de un borrador guardado: al facturar, ese borrador se elimina.
type CommitInvoiceRequest struct {
	CustomerID      string            `json:"customerId"`
	Lines           []CartLineRequest `json:"lines"`
	DiscountPercent decimal.Decimal   `json:"discountPercent"`
	BillDate        string            `json:"billDate"` // YYYY-MM-DD
	DraftID         string            `json:"draftId"`
}

// InvoiceItemResponse línea congelada de una factura.
type InvoiceItemResponse struct {
	EquipmentID   string          `json:"equipmentId"`
	EquipmentName string          `json:"equipmentName"`
	Description   string          `json:"description,omitempty"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	UsageDays     int64           `json:"usageDays"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

// InvoiceResponse cabecera + líneas de una factura comprometida.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	Number          int64                 `json:"number"`
	CustomerID      string                `json:"customerId"`
	CustomerName    string                `json:"customerName"`
	CustomerPhone   string                `json:"customerPhone,omitempty"`
	BillDate        string                `json:"billDate"`
	CreatedAt       string                `json:"createdAt"`
	DiscountPercent decimal.Decimal       `json:"discountPercent"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	DiscountAmount  decimal.Decimal       `json:"discountAmount"`
	GrandTotal      decimal.Decimal       `json:"grandTotal"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
	// RenderWarning se llena si la factura quedó comprometida pero el PDF
	// falló: la factura es financieramente final, el PDF se puede reintentar.
	RenderWarning string `json:"renderWarning,omitempty"`
}

// SaveDraftRequest guarda (o sobreescribe) una factura para después.
type SaveDraftRequest struct {
	ID              string            `json:"id"` // vacío = borrador nuevo
	CustomerID      string            `json:"customerId"`
	Lines           []CartLineRequest `json:"lines"`
	DiscountPercent decimal.Decimal   `json:"discountPercent"`
	BillDate        string            `json:"billDate"`
}

// DraftResponse un borrador guardado, con el carrito completo para retomarlo.
type DraftResponse struct {
	ID              string                `json:"id"`
	CustomerID      string                `json:"customerId"`
	CustomerName    string                `json:"customerName"`
	CustomerPhone   string                `json:"customerPhone,omitempty"`
	Lines           []InvoiceItemResponse `json:"lines"`
	DiscountPercent decimal.Decimal       `json:"discountPercent"`
	BillDate        string                `json:"billDate"`
	SavedAt         string                `json:"savedAt"`
}
