package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo implementación de DraftRepository. Las líneas del carrito se
// guardan como JSONB: el borrador es una foto opaca que debe reproducir el
// carrito idéntico al retomarlo, no un modelo relacional.
type DraftRepo struct {
	q Querier
}

// NewDraftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDraftRepository(q Querier) *DraftRepo {
	return &DraftRepo{q: q}
}

// Save crea o sobreescribe el borrador (upsert por ID).
func (r *DraftRepo) Save(draft *entity.DraftBill) error {
	lines, err := json.Marshal(draft.Lines)
	if err != nil {
		return fmt.Errorf("marshal draft lines: %w", err)
	}
	query := `
		INSERT INTO draft_bills (id, customer_id, customer_name, customer_phone,
			lines, discount_percent, bill_date, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			customer_name = EXCLUDED.customer_name,
			customer_phone = EXCLUDED.customer_phone,
			lines = EXCLUDED.lines,
			discount_percent = EXCLUDED.discount_percent,
			bill_date = EXCLUDED.bill_date,
			saved_at = EXCLUDED.saved_at`
	_, err = r.q.Exec(context.Background(), query,
		draft.ID, draft.CustomerID, draft.CustomerName, draft.CustomerPhone,
		lines, draft.DiscountPercent, draft.BillDate, draft.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// GetByID obtiene un borrador. Devuelve nil sin error si no existe.
func (r *DraftRepo) GetByID(id string) (*entity.DraftBill, error) {
	query := `
		SELECT id, customer_id, customer_name, customer_phone,
			lines, discount_percent, bill_date, saved_at
		FROM draft_bills WHERE id = $1`
	draft, err := scanDraft(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return draft, nil
}

// List devuelve todos los borradores, los más recientes primero.
func (r *DraftRepo) List() ([]*entity.DraftBill, error) {
	query := `
		SELECT id, customer_id, customer_name, customer_phone,
			lines, discount_percent, bill_date, saved_at
		FROM draft_bills ORDER BY saved_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()
	var list []*entity.DraftBill
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		list = append(list, draft)
	}
	return list, rows.Err()
}

// Delete elimina un borrador por ID.
func (r *DraftRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM draft_bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func scanDraft(row pgx.Row) (*entity.DraftBill, error) {
	var d entity.DraftBill
	var lines []byte
	err := row.Scan(&d.ID, &d.CustomerID, &d.CustomerName, &d.CustomerPhone,
		&lines, &d.DiscountPercent, &d.BillDate, &d.SavedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &d.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal draft lines: %w", err)
	}
	return &d, nil
}
