// Package pdf genera la exportación PDF de un reporte de órdenes.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del reporte  │  Tienda + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GENERADO POR / TIENDA: contacto y dirección                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR ORDEN: N° orden + tabla Cant | Producto | P.Unit | Sub │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: artículos / órdenes / TOTAL                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/application/reporting"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/pricing"
)

var _ reporting.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoPDFGenerator implementa reporting.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	money *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se formatean en español ("1.234.567,50").
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{money: message.NewPrinter(language.Spanish)}
}

// GenerateReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReportPDF(_ context.Context, report *dto.ReportDetailResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	author := "Inventario Teams"
	if report.OwnerDetails != nil {
		author = fullName(report.OwnerDetails)
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte "+report.Name, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(report))
	if report.Description != "" {
		m.AddRows(text.NewRow(8, report.Description, props.Text{Size: 8, Top: 2, Color: colorGray}))
	}

	for _, o := range report.Orders {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(orderTitleRow(g, o))
		m.AddRows(tableHeaderRow())
		m.AddRows(g.itemRows(o.Items)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow nombre del reporte (izq) y tienda + fecha (der).
func headerRow(report *dto.ReportDetailResponse) core.Row {
	store := "—"
	if report.StoreDetails != nil {
		store = report.StoreDetails.Name
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Reporte "+report.ID, props.Text{Size: 7, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("REPORTE DE ÓRDENES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(store, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7}),
			text.New("Fecha: "+report.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partiesRow quién generó el reporte y dirección de la tienda.
func partiesRow(report *dto.ReportDetailResponse) core.Row {
	owner, address := "—", "—"
	if report.OwnerDetails != nil {
		owner = fmt.Sprintf("%s   |   %s   |   %s", fullName(report.OwnerDetails), report.OwnerDetails.Email, report.OwnerDetails.Role)
	}
	if report.StoreDetails != nil {
		a := report.StoreDetails.Address
		address = joinNonEmpty(", ", a.Line1, a.Line2, a.City, a.State, a.Country)
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("GENERADO POR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(owner, props.Text{Size: 8, Top: 5, Color: colorGray}),
			text.New("Dirección de la tienda: "+address, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func orderTitleRow(g *MarotoPDFGenerator, o dto.OrderResponse) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("Orden "+o.OrderNumber, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2})),
		col.New(4).Add(text.New(o.CreatedAt.Format("02/01/2006 15:04")+"   "+g.formatMoney(o.TotalPrice), props.Text{
			Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}

// tableHeaderRow cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// itemRows una fila por línea de la orden.
func (g *MarotoPDFGenerator) itemRows(items []dto.OrderItemDTO) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		subtotal := pricing.LineTotal(it.Quantity, it.ProductDetails.UnitPrice)
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductDetails.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.formatMoney(it.ProductDetails.UnitPrice), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(3).Add(text.New(g.formatMoney(subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRow(report *dto.ReportDetailResponse) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 10, Color: colorPrimary}
	grandLabel, grandValue := grand, grand
	grandLabel.Right, grandValue.Right = 2, 1

	return row.New(20).Add(
		col.New(6), // espacio izquierdo
		col.New(3).Add(
			label("Artículos:", 0),
			label("Órdenes:", 5),
			text.New("TOTAL:", grandLabel),
		),
		col.New(3).Add(
			value(g.money.Sprintf("%d", report.TotalItems), 0),
			value(g.money.Sprintf("%d", len(report.Orders)), 5),
			text.New(g.formatMoney(report.TotalPrices), grandValue),
		),
	)
}

// formatMoney "$1.234.567,50" con separadores en español.
func (g *MarotoPDFGenerator) formatMoney(d decimal.Decimal) string {
	return "$" + g.money.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func fullName(o *dto.OwnerDetails) string {
	name := strings.TrimSpace(o.FirstName + " " + o.LastName)
	if name == "" {
		return o.Email
	}
	return name
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "—"
	}
	return strings.Join(out, sep)
}
