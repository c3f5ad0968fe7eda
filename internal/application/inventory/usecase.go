package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// EquipmentUseCase catálogo de equipos de alquiler: altas, ediciones
// directas y la ruta rápida de corrección de stock que se ofrece cuando un
// carrito choca contra el stock disponible. El descuento de stock por
// facturación NO pasa por aquí: lo hace el commit dentro de su transacción.
type EquipmentUseCase struct {
	repo repository.EquipmentRepository
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo}
}

// Create registra un equipo. Name obligatorio, Quantity ≥ 0, Price ≥ 0.
func (uc *EquipmentUseCase) Create(in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Quantity < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	eq := &entity.Equipment{
		ID:        uuid.New().String(),
		Name:      name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(eq); err != nil {
		return nil, err
	}
	return toEquipmentResponse(eq), nil
}

// List devuelve el inventario completo.
func (uc *EquipmentUseCase) List() ([]*dto.EquipmentResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EquipmentResponse, 0, len(list))
	for _, eq := range list {
		out = append(out, toEquipmentResponse(eq))
	}
	return out, nil
}

// Update edición directa con merge parcial. Quantity nunca puede quedar
// negativa ni Price negativo.
func (uc *EquipmentUseCase) Update(id string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	eq, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		eq.Name = name
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		eq.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		eq.Price = *in.Price
	}
	eq.UpdatedAt = time.Now()
	if err := uc.repo.Update(eq); err != nil {
		return nil, err
	}
	return toEquipmentResponse(eq), nil
}

// UpdateStock fija el stock en mano. Es la salida que se le ofrece al
// usuario ante un conflicto de stock: subir el inventario real en vez de
// recortar el carrito.
func (uc *EquipmentUseCase) UpdateStock(id string, quantity int64) (*dto.EquipmentResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	eq, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateQuantity(id, quantity); err != nil {
		return nil, err
	}
	eq.Quantity = quantity
	return toEquipmentResponse(eq), nil
}

// Delete elimina el equipo del catálogo.
func (uc *EquipmentUseCase) Delete(id string) error {
	eq, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if eq == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toEquipmentResponse(eq *entity.Equipment) *dto.EquipmentResponse {
	return &dto.EquipmentResponse{
		ID:       eq.ID,
		Name:     eq.Name,
		Quantity: eq.Quantity,
		Price:    eq.Price,
	}
}
