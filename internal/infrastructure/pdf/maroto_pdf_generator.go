// Package pdf genera la lista de empaque (packing list) que acompaña a la
// Addenda Soriana: una sección por tarima con su SSCC y los artículos que carga.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + Tienda  │  Remisión + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENTREGA: Sucursal / Pedido / Cita / Fecha de entrega       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TARIMA n: QR + código de barras del SSCC                   │
//	│  TABLA: Código | Descripción | Cantidad                     │
//	│  ... una sección por tarima ...                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Tarimas / Bultos                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PackingListGenerator implementa la lista de empaque usando Maroto v2.
type PackingListGenerator struct{}

// NewPackingListGenerator construye el generador.
func NewPackingListGenerator() *PackingListGenerator { return &PackingListGenerator{} }

// GeneratePackingList genera el PDF y devuelve sus bytes.
func (g *PackingListGenerator) GeneratePackingList(
	ctx context.Context,
	in entity.AddendaInput,
	cfdi entity.ComprobanteData,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de empaque "+cfdi.Remision(), true).
		WithAuthor(nonEmpty(in.Proveedor, "Proveedor"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in, cfdi))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(entregaRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	descripciones := descripcionesPorCodigo(cfdi)
	total := decimal.Zero
	for _, t := range in.Tarimas {
		m.AddRows(tarimaRows(t)...)
		m.AddRows(tableHeaderRow())
		for _, p := range t.Productos {
			m.AddRows(productoRow(p, descripciones[p.Codigo]))
			total = total.Add(p.Cantidad)
		}
		m.AddRows(line.NewRow(3))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(len(in.Tarimas), total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar lista de empaque: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: proveedor y tienda (izq), remisión y fecha (der).
func headerRow(in entity.AddendaInput, cfdi entity.ComprobanteData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Proveedor "+nonEmpty(in.Proveedor, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tienda: "+nonEmpty(in.Tienda, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("LISTA DE EMPAQUE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Remisión "+nonEmpty(cfdi.Remision(), "—"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+nonEmpty(cfdi.Fecha, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// entregaRow: datos de la entrega de mercancía.
func entregaRow(in entity.AddendaInput) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Sucursal: %s   |   Pedido: %s   |   Cita: %s   |   Fecha de entrega: %s",
				nonEmpty(in.Entrega, "—"),
				nonEmpty(in.FolioPedido, "—"),
				nonEmpty(in.Cita, "—"),
				nonEmpty(in.FechaEntrega, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tarimaRows: título de la tarima con QR y código de barras del SSCC.
func tarimaRows(t entity.TarimaInput) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("TARIMA "+strconv.Itoa(t.Numero), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if t.CodigoBarra == "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin código de barras", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
		return rows
	}
	rows = append(rows, row.New(24).Add(
		col.New(3).Add(code.NewQr(t.CodigoBarra, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(6).Add(code.NewBar(t.CodigoBarra, props.Barcode{
			Percent: 90,
			Center:  true,
		})),
		col.New(3).Add(
			text.New("SSCC", props.Text{Style: fontstyle.Bold, Size: 7, Top: 4, Align: align.Right}),
			text.New(t.CodigoBarra, props.Text{Size: 7, Top: 9, Align: align.Right, Color: colorGray}),
		),
	))
	return rows
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 3, align.Left),
		h("Descripción", 7, align.Left),
		h("Cantidad", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// productoRow: una fila por producto de la tarima.
func productoRow(p entity.ProductoInput, descripcion string) core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New(
			nonEmpty(p.Codigo, "—"),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(7).Add(text.New(
			nonEmpty(descripcion, "—"),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			p.Cantidad.String(),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalsRow: número de tarimas y total de bultos.
func totalsRow(tarimas int, bultos decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Tarimas:"),
			text.New("Total de bultos:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			value(strconv.Itoa(tarimas), 0),
			value(bultos.StringFixed(2), 6),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// descripcionesPorCodigo indexa la descripción de cada concepto por su SKU.
// Si un SKU se repite se conserva la primera descripción.
func descripcionesPorCodigo(cfdi entity.ComprobanteData) map[string]string {
	out := make(map[string]string, len(cfdi.Conceptos))
	for _, c := range cfdi.Conceptos {
		if _, ok := out[c.NoIdentificacion]; !ok && c.NoIdentificacion != "" {
			out[c.NoIdentificacion] = c.Descripcion
		}
	}
	return out
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
