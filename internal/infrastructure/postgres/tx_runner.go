package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción, ejecuta fn con los repositorios del
// commit atados a esa tx y hace Commit o Rollback. Con esto los decrementos
// de stock, la factura, el consecutivo y el borrado del borrador quedan
// todos o ninguno.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	equipmentRepo repository.EquipmentRepository,
	invoiceRepo repository.InvoiceRepository,
	draftRepo repository.DraftRepository,
	counterRepo repository.CounterRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	equipmentRepo := NewEquipmentRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)
	draftRepo := NewDraftRepository(tx)
	counterRepo := NewCounterRepository(tx)

	if err := fn(equipmentRepo, invoiceRepo, draftRepo, counterRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
