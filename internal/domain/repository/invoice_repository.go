package repository

import (
	"time"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas y sus
// líneas congeladas. Las facturas no se actualizan nunca: solo alta, lectura
// y borrado (el borrado no toca el inventario).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	// ListByDateRange filtra por fecha de facturación en el rango inclusivo
	// [from, to], más recientes primero.
	ListByDateRange(from, to time.Time) ([]*entity.Invoice, error)
	Delete(id string) error
}
