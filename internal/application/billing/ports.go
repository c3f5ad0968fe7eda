package billing

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que cubre
// inventario, facturas, borradores y el consecutivo. Todo lo que escribe el
// commit pasa por aquí: o queda todo, o no queda nada.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		equipmentRepo repository.EquipmentRepository,
		invoiceRepo repository.InvoiceRepository,
		draftRepo repository.DraftRepository,
		counterRepo repository.CounterRepository,
	) error) error
}

// InvoiceRenderer genera el documento imprimible de una factura ya
// comprometida. Un fallo aquí NO revierte la factura: se reporta como
// advertencia y la factura sigue siendo válida.
type InvoiceRenderer interface {
	RenderInvoicePDF(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) ([]byte, error)
}
