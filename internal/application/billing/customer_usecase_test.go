package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCustomer_Create_RecortaYValida(t *testing.T) {
	store := newMemStore()
	uc := appbilling.NewCustomerUseCase(&memCustomerRepo{store})

	created, err := uc.Create(dto.CreateCustomerRequest{
		Name:  "  María Pérez  ",
		Phone: " 555-0101 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "María Pérez", created.Name)
	assert.Equal(t, "555-0101", created.Phone)
	assert.NotEmpty(t, created.ID)

	_, err = uc.Create(dto.CreateCustomerRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un nombre de solo espacios no es un nombre")
}

func TestCustomer_Update_MergeParcial(t *testing.T) {
	store := newMemStore()
	uc := appbilling.NewCustomerUseCase(&memCustomerRepo{store})
	created, err := uc.Create(dto.CreateCustomerRequest{Name: "María Pérez", Phone: "555-0101"})
	require.NoError(t, err)

	// Solo el teléfono presente: el nombre no se toca.
	err = uc.Update(created.ID, dto.UpdateCustomerRequest{Phone: strPtr("555-0202")})
	require.NoError(t, err)
	assert.Equal(t, "María Pérez", store.customers[created.ID].Name)
	assert.Equal(t, "555-0202", store.customers[created.ID].Phone)

	// Nombre presente pero vacío se rechaza (distinto de ausente).
	err = uc.Update(created.ID, dto.UpdateCustomerRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Update("no-existe", dto.UpdateCustomerRequest{Phone: strPtr("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomer_Delete(t *testing.T) {
	store := newMemStore()
	uc := appbilling.NewCustomerUseCase(&memCustomerRepo{store})
	created, err := uc.Create(dto.CreateCustomerRequest{Name: "María Pérez"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.Empty(t, store.customers)
	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrNotFound)
}
