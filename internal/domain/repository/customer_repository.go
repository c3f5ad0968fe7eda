package repository

import "github.com/jhoicas/Alquiler-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
	// Update hace merge parcial: solo pisa los campos no nil.
	Update(id string, fields entity.CustomerPatch) error
	Delete(id string) error
}
