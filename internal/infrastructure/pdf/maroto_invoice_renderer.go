// Package pdf implementa la representación imprimible de una factura de
// alquiler usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa + leyenda                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  N° Factura │ Cliente │ Fecha                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ítem | Cant | Precio | Importe | Días | Subtotal     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / (− Descuento %) / TOTAL NETO               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 14, Green: 150, Blue: 184}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDiscount = &props.Color{Red: 217, Green: 83, Blue: 79}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// CompanyInfo datos de la empresa impresos en el encabezado.
type CompanyInfo struct {
	Name    string
	Tagline string
}

// MarotoInvoiceRenderer implementa billing.InvoiceRenderer usando Maroto v2.
type MarotoInvoiceRenderer struct {
	company CompanyInfo
}

var _ appbilling.InvoiceRenderer = (*MarotoInvoiceRenderer)(nil)

// NewMarotoInvoiceRenderer construye el renderer.
func NewMarotoInvoiceRenderer(company CompanyInfo) *MarotoInvoiceRenderer {
	return &MarotoInvoiceRenderer{company: company}
}

// RenderInvoicePDF genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoInvoiceRenderer) RenderInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	items []*entity.InvoiceItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Factura #%03d", invoice.Number), true).
		WithAuthor(g.company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billInfoRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la empresa centrado + leyenda.
func (g *MarotoInvoiceRenderer) headerRow() core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(g.company.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New(g.company.Tagline, props.Text{
				Size: 9, Align: align.Center, Top: 9, Color: colorGray,
			}),
		),
	)
}

// billInfoRow: número de factura, cliente y fecha de facturación.
func billInfoRow(invoice *entity.Invoice) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Factura No: #%03d", invoice.Number), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New("Cliente: "+invoice.CustomerName, props.Text{
				Size: 9, Top: 6,
			}),
			text.New("Fecha: "+invoice.BillDate.Format("02/01/2006"), props.Text{
				Size: 9, Top: 11, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ítem", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Importe", 2, align.Right),
		h("Días", 1, align.Center),
		h("Subtotal", 2, align.Right),
	)
}

// tableItemRows: una fila por línea congelada; Importe = cantidad × precio,
// Subtotal incluye además los días de uso.
func tableItemRows(items []*entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.EquipmentName
		if it.Description != "" {
			name += " - " + it.Description
		}
		amount := decimal.NewFromInt(it.Quantity).Mul(it.UnitPrice)
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(it.UnitPrice.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(amount.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.UsageDays), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(it.Subtotal.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow: total, línea de descuento solo si aplica, y total neto.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: c,
		})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}

	labels := []core.Component{label("Total:", nil)}
	values := []core.Component{value(invoice.Subtotal.StringFixed(2), nil)}
	if invoice.DiscountAmount.IsPositive() {
		labels = append(labels, label(
			fmt.Sprintf("Menos: Descuento (%s%%):", invoice.DiscountPercent.String()), colorDiscount))
		values = append(values, value(invoice.DiscountAmount.StringFixed(2), colorDiscount))
	}
	labels = append(labels, text.New("TOTAL NETO:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
	}))
	values = append(values, text.New(invoice.GrandTotal.StringFixed(2), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
	}))

	return row.New(24).Add(
		col.New(5),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
	)
}
