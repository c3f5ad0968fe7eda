package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación de EquipmentRepository (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `id, name, quantity, price, created_at, updated_at`

// Create persiste un nuevo equipo.
func (r *EquipmentRepo) Create(eq *entity.Equipment) error {
	query := `
		INSERT INTO equipment (id, name, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		eq.ID, eq.Name, eq.Quantity, eq.Price, eq.CreatedAt, eq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID. Devuelve nil sin error si no existe.
func (r *EquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	return r.getByID(id, false)
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE) antes de devolverla.
// Solo tiene sentido dentro de una transacción: el commit la usa para que
// la foto de stock validada sea la misma que se descuenta.
func (r *EquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	return r.getByID(id, true)
}

func (r *EquipmentRepo) getByID(id string, forUpdate bool) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var eq entity.Equipment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&eq.ID, &eq.Name, &eq.Quantity, &eq.Price, &eq.CreatedAt, &eq.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &eq, nil
}

// List devuelve todo el inventario ordenado por nombre.
func (r *EquipmentRepo) List() ([]*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		var eq entity.Equipment
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Quantity, &eq.Price, &eq.CreatedAt, &eq.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, &eq)
	}
	return list, rows.Err()
}

// Update escribe todos los campos editables del equipo.
func (r *EquipmentRepo) Update(eq *entity.Equipment) error {
	query := `
		UPDATE equipment SET name = $2, quantity = $3, price = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		eq.ID, eq.Name, eq.Quantity, eq.Price, eq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

// UpdateQuantity escribe el nuevo stock en mano. El CHECK (quantity >= 0)
// de la tabla es la última línea de defensa del invariante.
func (r *EquipmentRepo) UpdateQuantity(id string, quantity int64) error {
	query := `UPDATE equipment SET quantity = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update equipment quantity: %w", err)
	}
	return nil
}

// Delete elimina un equipo por ID.
func (r *EquipmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return nil
}
