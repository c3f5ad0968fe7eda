package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	domainbilling "github.com/jhoicas/Alquiler-api/internal/domain/billing"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// DraftUseCase facturas "guardadas para después": fotos de un carrito en
// construcción que pueden retomarse tal cual. Guardar con el mismo ID
// sobreescribe; el borrador se elimina cuando se convierte en factura real
// (lo hace el commit) o cuando el usuario lo borra explícitamente.
type DraftUseCase struct {
	repo    repository.DraftRepository
	builder *CartBuilder
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(repo repository.DraftRepository, builder *CartBuilder) *DraftUseCase {
	return &DraftUseCase{repo: repo, builder: builder}
}

// Save valida que haya cliente y carrito no vacío (igual que el commit) y
// guarda la foto. Sin ID entrante se genera uno nuevo; con ID se
// sobreescribe el borrador existente.
func (uc *DraftUseCase) Save(in dto.SaveDraftRequest) (*dto.DraftResponse, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrIncompleteBill
	}
	cart, err := uc.builder.Build(in.CustomerID, in.Lines, in.DiscountPercent, in.BillDate, "")
	if err != nil {
		return nil, err
	}

	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	draft := &entity.DraftBill{
		ID:              id,
		CustomerID:      cart.Customer.ID,
		CustomerName:    cart.Customer.Name,
		CustomerPhone:   cart.Customer.Phone,
		Lines:           draftLinesFromCart(cart.Lines),
		DiscountPercent: cart.DiscountPercent,
		BillDate:        cart.BillDate,
		SavedAt:         time.Now(),
	}
	if err := uc.repo.Save(draft); err != nil {
		return nil, err
	}
	return toDraftResponse(draft), nil
}

// List devuelve todos los borradores guardados.
func (uc *DraftUseCase) List() ([]*dto.DraftResponse, error) {
	drafts, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DraftResponse, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, toDraftResponse(d))
	}
	return out, nil
}

// Get devuelve un borrador con su carrito completo para retomarlo. El
// carrito reconstruido es idéntico al guardado: mismas líneas, descuento y
// fecha de facturación.
func (uc *DraftUseCase) Get(id string) (*dto.DraftResponse, error) {
	draft, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrNotFound
	}
	return toDraftResponse(draft), nil
}

// Delete elimina el borrador explícitamente.
func (uc *DraftUseCase) Delete(id string) error {
	draft, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if draft == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func draftLinesFromCart(lines []domainbilling.CartLine) []entity.DraftLine {
	out := make([]entity.DraftLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.DraftLine{
			EquipmentID:   l.EquipmentID,
			EquipmentName: l.EquipmentName,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			UsageDays:     l.UsageDays,
			Description:   l.Description,
			Subtotal:      l.Subtotal,
			Total:         l.Total,
		})
	}
	return out
}

func toDraftResponse(d *entity.DraftBill) *dto.DraftResponse {
	lines := make([]dto.InvoiceItemResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, dto.InvoiceItemResponse{
			EquipmentID:   l.EquipmentID,
			EquipmentName: l.EquipmentName,
			Description:   l.Description,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			UsageDays:     l.UsageDays,
			Subtotal:      l.Subtotal,
			Total:         l.Total,
		})
	}
	return &dto.DraftResponse{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		CustomerName:    d.CustomerName,
		CustomerPhone:   d.CustomerPhone,
		Lines:           lines,
		DiscountPercent: d.DiscountPercent,
		BillDate:        d.BillDate.Format("2006-01-02"),
		SavedAt:         d.SavedAt.Format(time.RFC3339),
	}
}
