package billing

import (
	"time"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// ReportsUseCase consulta y borrado del libro de facturas.
type ReportsUseCase struct {
	repo repository.InvoiceRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(repo repository.InvoiceRepository) *ReportsUseCase {
	return &ReportsUseCase{repo: repo}
}

// DayRange normaliza un rango a granularidad de día inclusivo:
// [inicio 00:00:00, fin 23:59:59.999999999]. Falla si inicio > fin.
func DayRange(start, end time.Time) (time.Time, time.Time, error) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())
	if from.After(to) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return from, to, nil
}

// ListByDateRange lista las facturas cuya fecha de facturación cae en el
// rango inclusivo de días. Las fechas llegan como YYYY-MM-DD; las facturas
// sin fecha quedan excluidas (lo garantiza el repositorio). Más recientes
// primero.
func (uc *ReportsUseCase) ListByDateRange(startStr, endStr string) ([]*dto.InvoiceResponse, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	from, to, err := DayRange(start, end)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.repo.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, ToInvoiceResponse(inv, nil))
	}
	return out, nil
}

// Get devuelve una factura con sus líneas congeladas.
func (uc *ReportsUseCase) Get(id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv, items), nil
}

// Delete elimina el registro del libro de facturas. Deliberadamente NO
// restaura el inventario descontado al facturar: así se comporta el sistema
// desde siempre y cambiarlo es una decisión de producto pendiente. El
// handler lo advierte en el texto de confirmación.
func (uc *ReportsUseCase) Delete(id string) error {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// ToInvoiceResponse arma la representación API de una factura.
func ToInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CustomerPhone:   inv.CustomerPhone,
		BillDate:        inv.BillDate.Format("2006-01-02"),
		CreatedAt:       inv.CreatedAt.Format(time.RFC3339),
		DiscountPercent: inv.DiscountPercent,
		Subtotal:        inv.Subtotal,
		DiscountAmount:  inv.DiscountAmount,
		GrandTotal:      inv.GrandTotal,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			EquipmentID:   item.EquipmentID,
			EquipmentName: item.EquipmentName,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			UsageDays:     item.UsageDays,
			Subtotal:      item.Subtotal,
			Total:         item.Total,
		})
	}
	return resp
}
