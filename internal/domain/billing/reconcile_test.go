package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/billing"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de reconciliación de stock: la demanda que cuenta es la AGREGADA de
// todas las líneas que referencian el mismo equipo, no la de cada línea por
// separado. El escenario canónico: 10 sillas en stock, una línea pide 4 y
// otra 5 → pasa (9 ≤ 10); una tercera pide 2 → conflicto (11 > 10).
// ──────────────────────────────────────────────────────────────────────────────

func sillas(qty int64) *entity.Equipment {
	return &entity.Equipment{
		ID:       "eq-sillas",
		Name:     "Silla plegable",
		Quantity: qty,
		Price:    decimal.NewFromInt(25),
	}
}

func cartLines(qtys ...int64) []billing.CartLine {
	lines := make([]billing.CartLine, 0, len(qtys))
	for _, q := range qtys {
		lines = append(lines, billing.CartLine{
			EquipmentID:   "eq-sillas",
			EquipmentName: "Silla plegable",
			Quantity:      q,
		})
	}
	return lines
}

func TestAggregateDemand_SumaPorEquipo(t *testing.T) {
	lines := []billing.CartLine{
		{EquipmentID: "eq-sillas", Quantity: 4},
		{EquipmentID: "eq-mesas", Quantity: 2},
		{EquipmentID: "eq-sillas", Quantity: 5},
	}

	demand := billing.AggregateDemand(lines)

	assert.Equal(t, int64(9), demand["eq-sillas"], "4 + 5 líneas del mismo equipo")
	assert.Equal(t, int64(2), demand["eq-mesas"])
}

func TestReconcile_DemandaAgregadaDentroDelStock(t *testing.T) {
	stock := map[string]*entity.Equipment{"eq-sillas": sillas(10)}

	plan, err := billing.Reconcile(cartLines(4, 5), stock)
	require.NoError(t, err)

	require.Len(t, plan, 1, "un solo decremento por equipo, no por línea")
	assert.Equal(t, "eq-sillas", plan[0].EquipmentID)
	assert.Equal(t, int64(9), plan[0].Quantity)
}

func TestReconcile_DemandaAgregadaExcedeStock(t *testing.T) {
	stock := map[string]*entity.Equipment{"eq-sillas": sillas(10)}

	plan, err := billing.Reconcile(cartLines(4, 5, 2), stock)

	require.Nil(t, plan, "en conflicto no se emite ningún decremento parcial")
	var conflict *domain.StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "eq-sillas", conflict.EquipmentID)
	assert.Equal(t, int64(11), conflict.Requested)
	assert.Equal(t, int64(10), conflict.Available)
	assert.Equal(t, int64(1), conflict.Shortfall(), "faltante = 11 − 10")
}

func TestReconcile_EquipoAusenteCuentaComoStockCero(t *testing.T) {
	// Equipo eliminado del inventario entre el armado del carrito y el commit.
	plan, err := billing.Reconcile(cartLines(1), map[string]*entity.Equipment{})

	require.Nil(t, plan)
	var conflict *domain.StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(0), conflict.Available)
}

func TestReconcile_OrdenDePrimeraAparicion(t *testing.T) {
	lines := []billing.CartLine{
		{EquipmentID: "eq-carpa", Quantity: 1},
		{EquipmentID: "eq-sillas", Quantity: 4},
		{EquipmentID: "eq-carpa", Quantity: 1},
	}
	stock := map[string]*entity.Equipment{
		"eq-carpa":  {ID: "eq-carpa", Name: "Carpa 6x6", Quantity: 3},
		"eq-sillas": sillas(10),
	}

	plan, err := billing.Reconcile(lines, stock)
	require.NoError(t, err)

	require.Len(t, plan, 2)
	assert.Equal(t, "eq-carpa", plan[0].EquipmentID)
	assert.Equal(t, int64(2), plan[0].Quantity)
	assert.Equal(t, "eq-sillas", plan[1].EquipmentID)
}

func TestReconcile_CarritoVacio(t *testing.T) {
	plan, err := billing.Reconcile(nil, map[string]*entity.Equipment{})
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestCheckLineAgainstStock_AltaCuentaLasDemasLineas(t *testing.T) {
	eq := sillas(10)
	lines := cartLines(4, 5) // ya hay 9 comprometidas

	// Agregar 1 más cabe justo (10 de 10).
	assert.NoError(t, billing.CheckLineAgainstStock(lines, -1, eq, 1))

	// Agregar 2 excede: la demanda agregada sería 11.
	err := billing.CheckLineAgainstStock(lines, -1, eq, 2)
	var conflict *domain.StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(11), conflict.Requested)
	assert.Equal(t, int64(10), conflict.Available)
}

func TestCheckLineAgainstStock_EdicionExcluyeLaLineaEditada(t *testing.T) {
	eq := sillas(10)
	lines := cartLines(4, 5)

	// Editar la línea 1 (la de 5): su cantidad vieja no cuenta contra sí misma,
	// así que subirla a 6 cabe (4 + 6 = 10).
	assert.NoError(t, billing.CheckLineAgainstStock(lines, 1, eq, 6))

	// Subirla a 7 ya no (4 + 7 = 11).
	err := billing.CheckLineAgainstStock(lines, 1, eq, 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
