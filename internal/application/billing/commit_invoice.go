package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	domainbilling "github.com/jhoicas/Alquiler-api/internal/domain/billing"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
	"github.com/jhoicas/Alquiler-api/pkg/logger"
)

// CommitUseCase convierte un carrito validado en una factura persistida y
// el inventario descontado, de forma atómica desde el punto de vista del
// usuario: valida stock, descuenta inventario, guarda la factura con sus
// líneas congeladas, avanza el consecutivo y elimina el borrador retomado,
// todo en una transacción.
type CommitUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	renderer     InvoiceRenderer
	log          *logger.Logger
}

// NewCommitUseCase construye el caso de uso.
func NewCommitUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	renderer InvoiceRenderer,
	log *logger.Logger,
) *CommitUseCase {
	return &CommitUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		renderer:     renderer,
		log:          log,
	}
}

// CommitResult resultado de un commit exitoso. PDF va vacío y RenderWarning
// lleno si la factura quedó comprometida pero el render falló: la factura es
// financieramente final desde que la transacción hizo commit.
type CommitResult struct {
	Invoice       *entity.Invoice
	Items         []*entity.InvoiceItem
	PDF           []byte
	RenderWarning string
}

// Commit ejecuta el flujo completo:
//
//  1. Precondición: cliente seleccionado y carrito no vacío, si no
//     ErrIncompleteBill sin efectos.
//  2. En una transacción: bloquear las filas de los equipos referenciados
//     (foto fresca, no la copia en memoria con la que se armó el carrito),
//     reconciliar la demanda agregada contra ese stock, escribir los
//     decrementos, asignar el consecutivo de forma atómica, guardar la
//     factura con sus líneas congeladas y borrar el borrador retomado.
//     Un conflicto de stock revierte todo sin dejar escritura alguna.
//  3. Fuera de la transacción: generar el PDF. Si falla, se registra la
//     advertencia y la factura sigue válida.
//
// Tras un Commit exitoso el llamador limpia el carrito y refresca su vista
// de inventario.
func (uc *CommitUseCase) Commit(ctx context.Context, cart *domainbilling.Cart) (*CommitResult, error) {
	if cart.Customer == nil || cart.IsEmpty() {
		return nil, domain.ErrIncompleteBill
	}

	// El cliente puede haber sido borrado desde que se armó el carrito.
	customer, err := uc.customerRepo.GetByID(cart.Customer.ID)
	if err != nil {
		return nil, fmt.Errorf("commit: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err = uc.txRunner.RunBilling(ctx, func(
		equipmentRepo repository.EquipmentRepository,
		invoiceRepo repository.InvoiceRepository,
		draftRepo repository.DraftRepository,
		counterRepo repository.CounterRepository,
	) error {
		// 1) Foto fresca de inventario con las filas bloqueadas.
		stock := make(map[string]*entity.Equipment, len(cart.Lines))
		for _, line := range cart.Lines {
			if _, ok := stock[line.EquipmentID]; ok {
				continue
			}
			eq, err := equipmentRepo.GetForUpdate(line.EquipmentID)
			if err != nil {
				return fmt.Errorf("commit: bloquear equipo %s: %w", line.EquipmentID, err)
			}
			if eq != nil {
				stock[line.EquipmentID] = eq
			}
		}

		// 2) Reconciliación: demanda agregada vs stock. Falla sin aplicar nada.
		plan, err := domainbilling.Reconcile(cart.Lines, stock)
		if err != nil {
			return err
		}

		// 3) Todos los decrementos de inventario antes de cualquier otra escritura.
		for _, dec := range plan {
			eq := stock[dec.EquipmentID]
			if err := equipmentRepo.UpdateQuantity(eq.ID, eq.Quantity-dec.Quantity); err != nil {
				return fmt.Errorf("commit: descontar stock de %s: %w", eq.Name, err)
			}
		}

		// 4) Consecutivo: asignar-y-persistir en una sola operación. Si la
		// transacción se revierte, el número no queda consumido.
		number, err := counterRepo.NextInvoiceNumber()
		if err != nil {
			return fmt.Errorf("commit: asignar consecutivo: %w", err)
		}

		// 5) Factura con la foto del cliente y las líneas congeladas.
		inv = &entity.Invoice{
			ID:              uuid.New().String(),
			Number:          number,
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			CustomerPhone:   customer.Phone,
			BillDate:        cart.BillDate,
			CreatedAt:       now,
			DiscountPercent: cart.DiscountPercent,
			Subtotal:        cart.Subtotal(),
			DiscountAmount:  cart.DiscountAmount(),
			GrandTotal:      cart.GrandTotal(),
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return fmt.Errorf("commit: guardar factura: %w", err)
		}
		items = make([]*entity.InvoiceItem, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			item := &entity.InvoiceItem{
				ID:            uuid.New().String(),
				InvoiceID:     inv.ID,
				EquipmentID:   line.EquipmentID,
				EquipmentName: line.EquipmentName,
				Description:   line.Description,
				Quantity:      line.Quantity,
				UnitPrice:     line.UnitPrice,
				UsageDays:     line.UsageDays,
				Subtotal:      line.Subtotal,
				Total:         line.Total,
			}
			if err := invoiceRepo.CreateItem(item); err != nil {
				return fmt.Errorf("commit: guardar línea: %w", err)
			}
			items = append(items, item)
		}

		// 6) Si el carrito venía de un borrador, eliminarlo.
		if cart.DraftID != "" {
			if err := draftRepo.Delete(cart.DraftID); err != nil {
				return fmt.Errorf("commit: eliminar borrador: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CommitResult{Invoice: inv, Items: items}

	// El render ocurre después del commit: un fallo aquí no deshace nada.
	pdf, err := uc.renderer.RenderInvoicePDF(ctx, inv, items)
	if err != nil {
		uc.log.Warn().
			Err(err).
			Int64("invoice_number", inv.Number).
			Msg("factura comprometida pero el PDF falló; se puede reintentar la descarga")
		result.RenderWarning = "la factura quedó registrada pero el PDF no pudo generarse: " + err.Error()
		return result, nil
	}
	result.PDF = pdf
	return result, nil
}
