package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	domainbilling "github.com/jhoicas/Alquiler-api/internal/domain/billing"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// CartBuilder reconstruye un carrito de dominio a partir de la petición del
// cliente, pasando cada línea por el motor de carrito (validación y
// recálculo de subtotales) y por la verificación interactiva de stock:
// demanda de las demás líneas para el mismo equipo + esta línea contra el
// stock disponible, igual que al agregar ítems uno a uno en pantalla.
type CartBuilder struct {
	customerRepo  repository.CustomerRepository
	equipmentRepo repository.EquipmentRepository
}

// NewCartBuilder construye el builder.
func NewCartBuilder(customerRepo repository.CustomerRepository, equipmentRepo repository.EquipmentRepository) *CartBuilder {
	return &CartBuilder{customerRepo: customerRepo, equipmentRepo: equipmentRepo}
}

// billDateLayouts formatos aceptados para la fecha de facturación.
var billDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseBillDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	for _, layout := range billDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.ErrInvalidInput
}

// Build arma el carrito: cliente, líneas (con verificación de stock línea a
// línea), descuento global y fecha. No escribe nada; un conflicto de stock
// se devuelve como *domain.StockConflictError y el carrito no se entrega.
func (b *CartBuilder) Build(customerID string, lines []dto.CartLineRequest, discount decimal.Decimal, billDate, draftID string) (*domainbilling.Cart, error) {
	cart := domainbilling.NewCart()
	cart.DraftID = draftID

	if customerID != "" {
		customer, err := b.customerRepo.GetByID(customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		cart.SelectCustomer(customer)
	}

	date, err := parseBillDate(billDate)
	if err != nil {
		return nil, err
	}
	cart.BillDate = date

	for _, line := range lines {
		eq, err := b.equipmentRepo.GetByID(line.EquipmentID)
		if err != nil {
			return nil, err
		}
		if eq == nil {
			return nil, domain.ErrNotFound
		}
		// Verificación interactiva: como un alta de línea (skipIndex -1).
		if err := domainbilling.CheckLineAgainstStock(cart.Lines, -1, eq, line.Quantity); err != nil {
			return nil, err
		}
		if err := cart.AddLine(eq.ID, eq.Name, domainbilling.LineInput{
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			UsageDays:   line.UsageDays,
			Description: line.Description,
		}); err != nil {
			return nil, err
		}
	}

	if err := cart.SetDiscount(discount); err != nil {
		return nil, err
	}
	return cart, nil
}
