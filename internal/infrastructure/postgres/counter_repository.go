package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// Clave del consecutivo de facturación en app_settings.
const invoiceCounterKey = "invoice_counter"

// CounterRepo consecutivo de facturación sobre la tabla clave/valor
// app_settings. La asignación es un solo UPSERT con RETURNING: escritor
// único, atómico, sin ventana entre leer y escribir.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// NextInvoiceNumber asigna y persiste el siguiente número en una sola
// operación. Dentro de la transacción del commit: un rollback devuelve el
// número, así los consecutivos emitidos no tienen huecos ni repetidos.
func (r *CounterRepo) NextInvoiceNumber() (int64, error) {
	query := `
		INSERT INTO app_settings (key, value) VALUES ($1, '1')
		ON CONFLICT (key) DO UPDATE SET value = (app_settings.value::bigint + 1)::text
		RETURNING value::bigint`
	var number int64
	if err := r.q.QueryRow(context.Background(), query, invoiceCounterKey).Scan(&number); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return number, nil
}

// Current devuelve el último número emitido, 0 si nunca se ha facturado.
func (r *CounterRepo) Current() (int64, error) {
	var value string
	err := r.q.QueryRow(context.Background(),
		`SELECT value FROM app_settings WHERE key = $1`, invoiceCounterKey).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get invoice counter: %w", err)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse invoice counter %q: %w", value, err)
	}
	return n, nil
}
