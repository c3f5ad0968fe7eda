package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	domainbilling "github.com/jhoicas/Alquiler-api/internal/domain/billing"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
	"github.com/jhoicas/Alquiler-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del commit de factura contra un almacén en memoria que imita la
// semántica transaccional de PostgreSQL: la función del commit corre sobre
// una copia del estado y solo si termina sin error la copia reemplaza al
// original. Así se puede verificar lo que más importa del commit: que un
// fallo a mitad de camino no deja NINGUNA escritura (ni stock descontado,
// ni consecutivo consumido, ni factura a medias).
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido de los repositorios en memoria.
type memStore struct {
	customers map[string]*entity.Customer
	equipment map[string]*entity.Equipment
	invoices  map[string]*entity.Invoice
	items     []*entity.InvoiceItem
	drafts    map[string]*entity.DraftBill
	counter   int64
}

func newMemStore() *memStore {
	return &memStore{
		customers: make(map[string]*entity.Customer),
		equipment: make(map[string]*entity.Equipment),
		invoices:  make(map[string]*entity.Invoice),
		drafts:    make(map[string]*entity.DraftBill),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.customers {
		cp := *v
		c.customers[k] = &cp
	}
	for k, v := range s.equipment {
		cp := *v
		c.equipment[k] = &cp
	}
	for k, v := range s.invoices {
		cp := *v
		c.invoices[k] = &cp
	}
	c.items = append(c.items, s.items...)
	for k, v := range s.drafts {
		cp := *v
		c.drafts[k] = &cp
	}
	c.counter = s.counter
	return c
}

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}
func (r *memCustomerRepo) List() ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		out = append(out, c)
	}
	return out, nil
}
func (r *memCustomerRepo) Update(id string, fields entity.CustomerPatch) error {
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	if fields.Name != nil {
		c.Name = *fields.Name
	}
	if fields.Phone != nil {
		c.Phone = *fields.Phone
	}
	if fields.Address != nil {
		c.Address = *fields.Address
	}
	if fields.Email != nil {
		c.Email = *fields.Email
	}
	return nil
}
func (r *memCustomerRepo) Delete(id string) error { delete(r.s.customers, id); return nil }

type memEquipmentRepo struct{ s *memStore }

func (r *memEquipmentRepo) Create(eq *entity.Equipment) error { r.s.equipment[eq.ID] = eq; return nil }
func (r *memEquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	return r.s.equipment[id], nil
}
func (r *memEquipmentRepo) List() ([]*entity.Equipment, error) { return nil, nil }
func (r *memEquipmentRepo) Update(eq *entity.Equipment) error { r.s.equipment[eq.ID] = eq; return nil }
func (r *memEquipmentRepo) UpdateQuantity(id string, quantity int64) error {
	eq, ok := r.s.equipment[id]
	if !ok {
		return domain.ErrNotFound
	}
	eq.Quantity = quantity
	return nil
}
func (r *memEquipmentRepo) Delete(id string) error { delete(r.s.equipment, id); return nil }
func (r *memEquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	return r.s.equipment[id], nil
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error { r.s.invoices[inv.ID] = inv; return nil }
func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	r.s.items = append(r.s.items, item)
	return nil
}
func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) { return r.s.invoices[id], nil }
func (r *memInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, it := range r.s.items {
		if it.InvoiceID == invoiceID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *memInvoiceRepo) ListByDateRange(from, to time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if !inv.BillDate.Before(from) && !inv.BillDate.After(to) {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (r *memInvoiceRepo) Delete(id string) error { delete(r.s.invoices, id); return nil }

type memDraftRepo struct{ s *memStore }

func (r *memDraftRepo) Save(d *entity.DraftBill) error { r.s.drafts[d.ID] = d; return nil }
func (r *memDraftRepo) GetByID(id string) (*entity.DraftBill, error) { return r.s.drafts[id], nil }
func (r *memDraftRepo) List() ([]*entity.DraftBill, error)           { return nil, nil }
func (r *memDraftRepo) Delete(id string) error                       { delete(r.s.drafts, id); return nil }

type memCounterRepo struct{ s *memStore }

func (r *memCounterRepo) NextInvoiceNumber() (int64, error) {
	r.s.counter++
	return r.s.counter, nil
}
func (r *memCounterRepo) Current() (int64, error) { return r.s.counter, nil }

// memTxRunner corre el cuerpo del commit sobre un clon del almacén y solo
// lo promueve si no hubo error. Un error descarta el clon completo, igual
// que un ROLLBACK.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) RunBilling(ctx context.Context, fn func(
	equipmentRepo repository.EquipmentRepository,
	invoiceRepo repository.InvoiceRepository,
	draftRepo repository.DraftRepository,
	counterRepo repository.CounterRepository,
) error) error {
	tx := t.s.clone()
	err := fn(&memEquipmentRepo{tx}, &memInvoiceRepo{tx}, &memDraftRepo{tx}, &memCounterRepo{tx})
	if err != nil {
		return err
	}
	*t.s = *tx
	return nil
}

type stubRenderer struct {
	pdf []byte
	err error
}

func (r *stubRenderer) RenderInvoicePDF(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) ([]byte, error) {
	return r.pdf, r.err
}

// ──────────────────────────────────────────────────────────────────────────────

type commitFixture struct {
	store    *memStore
	renderer *stubRenderer
	uc       *appbilling.CommitUseCase
}

func newCommitFixture(t *testing.T) *commitFixture {
	t.Helper()
	store := newMemStore()
	store.customers["c-1"] = &entity.Customer{ID: "c-1", Name: "María Pérez", Phone: "555-0101"}
	store.equipment["eq-sillas"] = &entity.Equipment{
		ID: "eq-sillas", Name: "Silla plegable", Quantity: 10, Price: decimal.NewFromInt(25),
	}
	store.equipment["eq-carpa"] = &entity.Equipment{
		ID: "eq-carpa", Name: "Carpa 6x6", Quantity: 2, Price: decimal.NewFromInt(300),
	}
	renderer := &stubRenderer{pdf: []byte("%PDF-1.7 fake")}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := appbilling.NewCommitUseCase(&memTxRunner{store}, &memCustomerRepo{store}, renderer, log)
	return &commitFixture{store: store, renderer: renderer, uc: uc}
}

type lineSpec struct {
	equipmentID string
	qty         int64
}

// cartWith arma un carrito listo para commit con el cliente de prueba y las
// líneas indicadas, a un día de uso y al precio de lista del equipo.
func (f *commitFixture) cartWith(t *testing.T, lines ...lineSpec) *domainbilling.Cart {
	t.Helper()
	cart := domainbilling.NewCart()
	cart.SelectCustomer(f.store.customers["c-1"])
	for _, l := range lines {
		eq := f.store.equipment[l.equipmentID]
		require.NotNil(t, eq, "equipo de prueba %s no existe", l.equipmentID)
		err := cart.AddLine(eq.ID, eq.Name, domainbilling.LineInput{
			Quantity:  l.qty,
			UnitPrice: eq.Price,
			UsageDays: 1,
		})
		require.NoError(t, err)
	}
	return cart
}

func TestCommit_Exitoso_DescuentaStockYAsignaConsecutivo(t *testing.T) {
	f := newCommitFixture(t)
	cart := f.cartWith(t, lineSpec{"eq-sillas", 4}, lineSpec{"eq-sillas", 5})

	res, err := f.uc.Commit(context.Background(), cart)
	require.NoError(t, err)
	require.NotNil(t, res.Invoice)

	assert.Equal(t, int64(1), res.Invoice.Number, "la primera factura lleva el consecutivo 1")
	assert.Equal(t, "María Pérez", res.Invoice.CustomerName, "foto del cliente congelada")
	assert.Equal(t, int64(1), f.store.equipment["eq-sillas"].Quantity,
		"10 − (4+5) = 1: el decremento es la demanda agregada, no por línea")
	assert.Len(t, res.Items, 2, "las líneas se congelan una a una, sin fusionarse")
	assert.NotEmpty(t, res.PDF)
	assert.Empty(t, res.RenderWarning)
	assert.Len(t, f.store.invoices, 1)
	assert.Len(t, f.store.items, 2)
}

func TestCommit_CarritoIncompleto_SinEfectos(t *testing.T) {
	f := newCommitFixture(t)

	// Sin cliente.
	cart := domainbilling.NewCart()
	require.NoError(t, cart.AddLine("eq-sillas", "Silla", domainbilling.LineInput{
		Quantity: 1, UnitPrice: decimal.NewFromInt(25), UsageDays: 1,
	}))
	_, err := f.uc.Commit(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrIncompleteBill)

	// Sin líneas.
	empty := domainbilling.NewCart()
	empty.SelectCustomer(f.store.customers["c-1"])
	_, err = f.uc.Commit(context.Background(), empty)
	assert.ErrorIs(t, err, domain.ErrIncompleteBill)

	assert.Equal(t, int64(10), f.store.equipment["eq-sillas"].Quantity)
	assert.Zero(t, f.store.counter, "un commit rechazado no consume consecutivo")
	assert.Empty(t, f.store.invoices)
}

func TestCommit_ConflictoDeStock_RevierteTodo(t *testing.T) {
	f := newCommitFixture(t)
	cart := f.cartWith(t, lineSpec{"eq-sillas", 4}, lineSpec{"eq-sillas", 7})

	_, err := f.uc.Commit(context.Background(), cart)

	var conflict *domain.StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(11), conflict.Requested)
	assert.Equal(t, int64(10), conflict.Available)

	assert.Equal(t, int64(10), f.store.equipment["eq-sillas"].Quantity, "stock intacto")
	assert.Zero(t, f.store.counter, "consecutivo intacto")
	assert.Empty(t, f.store.invoices, "ninguna factura a medias")
	assert.Empty(t, f.store.items)
	assert.Len(t, cart.Lines, 2, "el carrito sobrevive al conflicto para que el usuario lo ajuste")
}

func TestCommit_ConsecutivoSinHuecos(t *testing.T) {
	f := newCommitFixture(t)

	// Commit 1 exitoso → número 1.
	res1, err := f.uc.Commit(context.Background(), f.cartWith(t, lineSpec{"eq-sillas", 2}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res1.Invoice.Number)

	// Commit fallido por stock: el número NO se consume.
	_, err = f.uc.Commit(context.Background(), f.cartWith(t, lineSpec{"eq-carpa", 5}))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Commit 2 exitoso → número 2, sin hueco.
	res2, err := f.uc.Commit(context.Background(), f.cartWith(t, lineSpec{"eq-sillas", 2}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res2.Invoice.Number,
		"los commits fallidos no dejan huecos en el consecutivo")
}

func TestCommit_EliminaElBorradorRetomado(t *testing.T) {
	f := newCommitFixture(t)
	f.store.drafts["d-1"] = &entity.DraftBill{ID: "d-1", CustomerID: "c-1"}

	cart := f.cartWith(t, lineSpec{"eq-sillas", 1})
	cart.DraftID = "d-1"

	_, err := f.uc.Commit(context.Background(), cart)
	require.NoError(t, err)
	assert.NotContains(t, f.store.drafts, "d-1",
		"el borrador retomado se elimina en la misma transacción del commit")
}

func TestCommit_ClienteBorradoEntreArmadoYCommit(t *testing.T) {
	f := newCommitFixture(t)
	cart := f.cartWith(t, lineSpec{"eq-sillas", 1})
	delete(f.store.customers, "c-1")

	_, err := f.uc.Commit(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(10), f.store.equipment["eq-sillas"].Quantity)
}

func TestCommit_FalloDelRender_LaFacturaQuedaFirme(t *testing.T) {
	f := newCommitFixture(t)
	f.renderer.err = errors.New("fuente corrupta")
	f.renderer.pdf = nil

	cart := f.cartWith(t, lineSpec{"eq-sillas", 3})
	res, err := f.uc.Commit(context.Background(), cart)

	require.NoError(t, err, "el fallo del PDF no es un fallo del commit")
	assert.NotEmpty(t, res.RenderWarning)
	assert.Empty(t, res.PDF)
	assert.Len(t, f.store.invoices, 1, "la factura ya es financieramente final")
	assert.Equal(t, int64(7), f.store.equipment["eq-sillas"].Quantity, "el stock quedó descontado")
	assert.Equal(t, int64(1), f.store.counter)
}

func TestCommit_TotalesCongeladosEnLaFactura(t *testing.T) {
	f := newCommitFixture(t)
	cart := f.cartWith(t, lineSpec{"eq-sillas", 10}) // 10 × 25 × 1 = 250
	require.NoError(t, cart.SetDiscount(decimal.NewFromInt(10)))

	res, err := f.uc.Commit(context.Background(), cart)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(250).Equal(res.Invoice.Subtotal))
	assert.True(t, decimal.NewFromInt(25).Equal(res.Invoice.DiscountAmount))
	assert.True(t, decimal.NewFromInt(225).Equal(res.Invoice.GrandTotal))
}
