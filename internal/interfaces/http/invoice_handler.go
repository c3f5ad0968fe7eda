package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/application/dto"
)

// InvoiceHandler maneja el commit de facturas, el libro de facturas y la
// descarga del PDF.
type InvoiceHandler struct {
	builder *billing.CartBuilder
	commit  *billing.CommitUseCase
	reports *billing.ReportsUseCase
	pdf     *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(
	builder *billing.CartBuilder,
	commit *billing.CommitUseCase,
	reports *billing.ReportsUseCase,
	pdf *billing.PDFUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{builder: builder, commit: commit, reports: reports, pdf: pdf}
}

// Create compromete el carrito: valida stock contra inventario fresco,
// descuenta, guarda la factura, avanza el consecutivo y elimina el borrador
// retomado. Si el PDF falla después del commit, la respuesta trae
// renderWarning y la factura sigue siendo válida.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CommitInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cart, err := h.builder.Build(in.CustomerID, in.Lines, in.DiscountPercent, in.BillDate, in.DraftID)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.commit.Commit(c.Context(), cart)
	if err != nil {
		return respondError(c, err)
	}
	resp := billing.ToInvoiceResponse(result.Invoice, result.Items)
	resp.RenderWarning = result.RenderWarning
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List filtra el libro de facturas por rango de fechas inclusivo a
// granularidad de día.
// GET /api/invoices?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end son obligatorios (YYYY-MM-DD)"})
	}
	invoices, err := h.reports.ListByDateRange(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// GetByID obtiene una factura con sus líneas congeladas.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.reports.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// DownloadPDF regenera el documento imprimible de una factura comprometida.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Delete elimina la factura del libro. Advertencia deliberada: el stock
// descontado al facturar NO se restaura.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.reports.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"deleted": true,
		"warning": "el inventario descontado por esta factura no se restaura",
	})
}
