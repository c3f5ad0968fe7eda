package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes. El borrado es directo y sin
// cascada: las facturas históricas conservan la foto de nombre y teléfono
// tomada al facturar.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registra un cliente. Name es obligatorio y no puede ser solo
// espacios; todos los campos se guardan recortados.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List devuelve todos los clientes.
func (uc *CustomerUseCase) List() ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update hace merge parcial: solo los campos presentes en la petición pisan
// el valor guardado. Un nombre presente pero vacío se rechaza.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) error {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	patch := entity.CustomerPatch{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ErrInvalidInput
		}
		patch.Name = &name
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		patch.Phone = &phone
	}
	if in.Address != nil {
		address := strings.TrimSpace(*in.Address)
		patch.Address = &address
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		patch.Email = &email
	}
	return uc.repo.Update(id, patch)
}

// Delete elimina el cliente. No toca sus facturas.
func (uc *CustomerUseCase) Delete(id string) error {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Phone:   c.Phone,
		Address: c.Address,
		Email:   c.Email,
	}
}
