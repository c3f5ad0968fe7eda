package repository

import "github.com/jhoicas/Alquiler-api/internal/domain/entity"

// DraftRepository define el puerto para facturas guardadas para después.
type DraftRepository interface {
	// Save crea o sobreescribe el borrador con el mismo ID.
	Save(draft *entity.DraftBill) error
	GetByID(id string) (*entity.DraftBill, error)
	List() ([]*entity.DraftBill, error)
	Delete(id string) error
}
