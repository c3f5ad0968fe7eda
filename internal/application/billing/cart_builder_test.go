package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

func newBuilderFixture() (*memStore, *appbilling.CartBuilder) {
	store := newMemStore()
	store.customers["c-1"] = &entity.Customer{ID: "c-1", Name: "María Pérez"}
	store.equipment["eq-sillas"] = &entity.Equipment{
		ID: "eq-sillas", Name: "Silla plegable", Quantity: 10, Price: decimal.NewFromInt(25),
	}
	builder := appbilling.NewCartBuilder(&memCustomerRepo{store}, &memEquipmentRepo{store})
	return store, builder
}

func TestCartBuilder_ArmaCarritoCompleto(t *testing.T) {
	_, builder := newBuilderFixture()

	cart, err := builder.Build("c-1", []dto.CartLineRequest{
		{EquipmentID: "eq-sillas", Quantity: 4, UnitPrice: decimal.NewFromInt(25), UsageDays: 3},
	}, decimal.NewFromInt(10), "2026-08-15", "")

	require.NoError(t, err)
	require.NotNil(t, cart.Customer)
	assert.Equal(t, "María Pérez", cart.Customer.Name)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "Silla plegable", cart.Lines[0].EquipmentName,
		"el nombre sale del inventario, no de la petición")
	assert.True(t, decimal.NewFromInt(300).Equal(cart.Subtotal()), "4 × 25 × 3")
	assert.Equal(t, "2026-08-15", cart.BillDate.Format("2006-01-02"))
}

func TestCartBuilder_VerificacionInteractivaDeStock(t *testing.T) {
	// La segunda línea del mismo equipo se valida contra la demanda ya
	// acumulada: 6 + 5 = 11 sobre 10 en stock.
	_, builder := newBuilderFixture()

	_, err := builder.Build("c-1", []dto.CartLineRequest{
		{EquipmentID: "eq-sillas", Quantity: 6, UnitPrice: decimal.NewFromInt(25), UsageDays: 1},
		{EquipmentID: "eq-sillas", Quantity: 5, UnitPrice: decimal.NewFromInt(25), UsageDays: 1},
	}, decimal.Zero, "", "")

	var conflict *domain.StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(11), conflict.Requested)
	assert.Equal(t, int64(10), conflict.Available)
	assert.Equal(t, int64(1), conflict.Shortfall(),
		"el faltante le permite al handler ofrecer la actualización de stock")
}

func TestCartBuilder_EquipoInexistente(t *testing.T) {
	_, builder := newBuilderFixture()

	_, err := builder.Build("c-1", []dto.CartLineRequest{
		{EquipmentID: "eq-fantasma", Quantity: 1, UnitPrice: decimal.NewFromInt(5), UsageDays: 1},
	}, decimal.Zero, "", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartBuilder_ClienteInexistente(t *testing.T) {
	_, builder := newBuilderFixture()

	_, err := builder.Build("c-fantasma", nil, decimal.Zero, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartBuilder_FechaInvalida(t *testing.T) {
	_, builder := newBuilderFixture()

	_, err := builder.Build("c-1", nil, decimal.Zero, "15/08/2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCartBuilder_FechaVaciaEsHoy(t *testing.T) {
	_, builder := newBuilderFixture()

	cart, err := builder.Build("c-1", nil, decimal.Zero, "", "")
	require.NoError(t, err)
	assert.False(t, cart.BillDate.IsZero())
}

func TestCartBuilder_PropagaDraftID(t *testing.T) {
	_, builder := newBuilderFixture()

	cart, err := builder.Build("c-1", nil, decimal.Zero, "", "d-1")
	require.NoError(t, err)
	assert.Equal(t, "d-1", cart.DraftID)
}
