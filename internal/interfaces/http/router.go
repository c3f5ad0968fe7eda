package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC  *billing.CustomerUseCase
	EquipmentUC *inventory.EquipmentUseCase
	CartBuilder *billing.CartBuilder
	CommitUC    *billing.CommitUseCase
	ReportsUC   *billing.ReportsUseCase
	PDFUC       *billing.PDFUseCase
	DraftUC     *billing.DraftUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Inventario de alquiler
	equipment := api.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment.Post("/", equipmentHandler.Create)
	equipment.Get("/", equipmentHandler.List)
	equipment.Put("/:id", equipmentHandler.Update)
	equipment.Put("/:id/stock", equipmentHandler.UpdateStock)
	equipment.Delete("/:id", equipmentHandler.Delete)

	// Facturación
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CartBuilder, deps.CommitUC, deps.ReportsUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Borradores ("guardar para después")
	drafts := api.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Post("/", draftHandler.Save)
	drafts.Get("/", draftHandler.List)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Delete)
}
