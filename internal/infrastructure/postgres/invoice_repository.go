package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Las facturas son inmutables: no hay Update.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, number, customer_id, customer_name, customer_phone,
	bill_date, created_at, discount_percent, subtotal, discount_amount, grand_total`

// Create persiste la cabecera de una factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, customer_id, customer_name, customer_phone,
			bill_date, created_at, discount_percent, subtotal, discount_amount, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.CustomerID, invoice.CustomerName, invoice.CustomerPhone,
		invoice.BillDate, invoice.CreatedAt, invoice.DiscountPercent,
		invoice.Subtotal, invoice.DiscountAmount, invoice.GrandTotal,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// El número de factura tiene constraint único: un choque aquí
			// significa que el consecutivo no se asignó en la misma tx.
			return fmt.Errorf("insert invoice: número repetido: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea congelada de la factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, equipment_id, equipment_name, description,
			quantity, unit_price, usage_days, subtotal, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.EquipmentID, item.EquipmentName, item.Description,
		item.Quantity, item.UnitPrice, item.UsageDays, item.Subtotal, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura. Devuelve nil sin error si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetItemsByInvoiceID devuelve las líneas congeladas en el orden original.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, equipment_id, equipment_name, description,
			quantity, unit_price, usage_days, subtotal, total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.EquipmentID, &it.EquipmentName, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.UsageDays, &it.Subtotal, &it.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByDateRange filtra por fecha de facturación en el rango inclusivo.
// Las facturas sin fecha quedan excluidas por el IS NOT NULL.
func (r *InvoiceRepo) ListByDateRange(from, to time.Time) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE bill_date IS NOT NULL AND bill_date BETWEEN $1 AND $2
		ORDER BY bill_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Delete elimina la factura y sus líneas. El inventario descontado al
// facturar NO se restaura.
func (r *InvoiceRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.CustomerName, &inv.CustomerPhone,
		&inv.BillDate, &inv.CreatedAt, &inv.DiscountPercent,
		&inv.Subtotal, &inv.DiscountAmount, &inv.GrandTotal,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
