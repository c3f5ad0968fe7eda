package repository

import "github.com/jhoicas/Alquiler-api/internal/domain/entity"

// EquipmentRepository define el puerto de persistencia para el inventario.
// Usado dentro de transacciones para garantizar consistencia del commit.
type EquipmentRepository interface {
	Create(eq *entity.Equipment) error
	GetByID(id string) (*entity.Equipment, error)
	List() ([]*entity.Equipment, error)
	Update(eq *entity.Equipment) error
	// UpdateQuantity escribe el nuevo stock en mano del equipo.
	UpdateQuantity(id string, quantity int64) error
	Delete(id string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); la foto
	// de stock que valida el commit debe leerse con este método dentro de la
	// transacción del commit.
	GetForUpdate(id string) (*entity.Equipment, error)
}
