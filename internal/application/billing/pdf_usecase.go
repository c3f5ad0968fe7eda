package billing

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// PDFUseCase genera (o regenera) el documento imprimible de una factura ya
// comprometida. Útil cuando el render falló en el commit: la factura sigue
// válida y el PDF se puede pedir de nuevo por aquí.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	renderer    InvoiceRenderer
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, renderer InvoiceRenderer) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, renderer: renderer}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// DownloadInvoicePDF recupera la factura con sus líneas y la renderiza.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	pdfBytes, err = uc.renderer.RenderInvoicePDF(ctx, inv, items)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: renderizar: %w", err)
	}
	return pdfBytes, InvoiceFilename(inv.Number, inv.CustomerName), nil
}

// InvoiceFilename arma el nombre de archivo INV<numero con ceros>-<Cliente>.pdf
// quitando caracteres no alfanuméricos del nombre del cliente.
func InvoiceFilename(number int64, customerName string) string {
	clean := nonAlphanumeric.ReplaceAllString(customerName, "")
	if clean == "" {
		clean = "Customer"
	}
	return fmt.Sprintf("INV%03d-%s.pdf", number, clean)
}
