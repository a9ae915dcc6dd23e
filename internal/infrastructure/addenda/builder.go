// Generador de la Addenda Soriana (DSCargaRemisionProv) a partir del resumen
// del CFDI y de los datos logísticos (tarimas y productos) capturados por el proveedor.

package addenda

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
	"github.com/jhoicas/addenda-cfdi/pkg/cfdi"
)

// Valores fijos del renglón Remision.
const (
	consecutivo       = "0"
	cumpleReqFiscales = "true"
	cantidadPedidos   = "1"
	empaqueEnCajas    = "true"
	empaqueEnTarimas  = "true"
	importeCero       = "0.00"
)

// Config parámetros de la Addenda que no vienen del CFDI ni del usuario.
type Config struct {
	TipoMoneda string // Catálogo Soriana: 1 = pesos
	TipoBulto  string // Catálogo Soriana: 1 = cajas
	Indent     int    // Espacios de sangría; etree.NoIndent (-1) para una sola línea
	Prefix     string // Prefijo de cfdi:Addenda cuando se genera el fragmento suelto
}

// DefaultConfig valores usados por Soriana para proveedores nacionales.
func DefaultConfig() Config {
	return Config{
		TipoMoneda: "1",
		TipoBulto:  "1",
		Indent:     4,
		Prefix:     cfdi.DefaultPrefix,
	}
}

// Generator construye la Addenda y la inserta en el CFDI original.
type Generator struct {
	cfg Config
}

// NewGenerator crea el generador. TipoMoneda, TipoBulto y Prefix vacíos toman DefaultConfig.
func NewGenerator(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.TipoMoneda == "" {
		cfg.TipoMoneda = def.TipoMoneda
	}
	if cfg.TipoBulto == "" {
		cfg.TipoBulto = def.TipoBulto
	}
	if cfg.Prefix == "" {
		cfg.Prefix = def.Prefix
	}
	return &Generator{cfg: cfg}
}

// Build devuelve el bloque <cfdi:Addenda> sin insertarlo en ningún documento.
func (g *Generator) Build(in entity.AddendaInput, data entity.ComprobanteData) (string, error) {
	return g.build(g.cfg.Prefix, in, data)
}

func (g *Generator) build(prefix string, in entity.AddendaInput, data entity.ComprobanteData) (string, error) {
	d := Derive(in, data)

	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	root := doc.CreateElement(qualified(prefix, cfdi.NodeAddenda))
	ds := root.CreateElement("DSCargaRemisionProv")

	g.writeRemision(ds, in, data, d)
	writePedidos(ds, in, data, d)
	writeArticulos(ds, in, data, d)
	writeCajasTarimas(ds, in, data, d)
	writeArticulosPorCajaTarima(ds, in, d)

	doc.Indent(g.cfg.Indent)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("addenda: serializar XML: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func qualified(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// newRow crea un renglón con Id="{name}{n}" y RowOrder="{n}", en ese orden.
func newRow(parent *etree.Element, tag, idPrefix string, n int) *etree.Element {
	row := parent.CreateElement(tag)
	row.CreateAttr("Id", idPrefix+strconv.Itoa(n))
	row.CreateAttr("RowOrder", strconv.Itoa(n))
	return row
}

func field(row *etree.Element, tag, value string) {
	row.CreateElement(tag).SetText(value)
}

func (g *Generator) writeRemision(ds *etree.Element, in entity.AddendaInput, data entity.ComprobanteData, d entity.DatosDerivados) {
	row := newRow(ds, "Remision", "Remision", 0)
	field(row, "Proveedor", in.Proveedor)
	field(row, "Remision", d.Remision)
	field(row, "Consecutivo", consecutivo)
	field(row, "FechaRemision", d.FechaRemision)
	field(row, "Tienda", in.Tienda)
	field(row, "TipoMoneda", g.cfg.TipoMoneda)
	field(row, "TipoBulto", g.cfg.TipoBulto)
	field(row, "EntregaMercancia", in.Entrega)
	field(row, "CumpleReqFiscales", cumpleReqFiscales)
	field(row, "CantidadBultos", d.CantidadTotalBultos)
	field(row, "Subtotal", data.SubTotal)
	field(row, "Descuentos", importeCero)
	field(row, "IEPS", importeCero)
	field(row, "IVA", data.Impuestos.TasaIVA)
	field(row, "OtrosImpuestos", importeCero)
	field(row, "Total", data.Total)
	field(row, "CantidadPedidos", cantidadPedidos)
	field(row, "FechaEntregaMercancia", in.FechaEntrega)
	field(row, "EmpaqueEnCajas", empaqueEnCajas)
	field(row, "EmpaqueEnTarimas", empaqueEnTarimas)
	field(row, "CantidadCajasTarimas", strconv.Itoa(len(in.Tarimas)))
	field(row, "Cita", in.Cita)
}

func writePedidos(ds *etree.Element, in entity.AddendaInput, data entity.ComprobanteData, d entity.DatosDerivados) {
	row := newRow(ds, "Pedidos", "Pedidos", 0)
	field(row, "Proveedor", in.Proveedor)
	field(row, "Remision", d.Remision)
	field(row, "FolioPedido", in.FolioPedido)
	field(row, "Tienda", in.Tienda)
	field(row, "CantidadArticulos", strconv.Itoa(len(data.Conceptos)))
}

func writeArticulos(ds *etree.Element, in entity.AddendaInput, data entity.ComprobanteData, d entity.DatosDerivados) {
	for _, c := range data.Conceptos {
		codigo := c.NoIdentificacion
		if codigo == "" {
			codigo = cfdi.CodigoFaltante
		}
		row := newRow(ds, "Articulos", "Articulos", c.Index)
		field(row, "Proveedor", in.Proveedor)
		field(row, "Remision", d.Remision)
		field(row, "FolioPedido", in.FolioPedido)
		field(row, "Tienda", in.Tienda)
		field(row, "Codigo", codigo)
		field(row, "CantidadUnidadCompra", c.Cantidad)
		field(row, "CostoNetoUnidadCompra", c.ValorUnitario)
		field(row, "PorcentajeIEPS", importeCero)
		field(row, "PorcentajeIVA", c.TasaIVA)
	}
}

// writeCajasTarimas: CantidadArticulos repite el número de conceptos del CFDI en cada tarima.
func writeCajasTarimas(ds *etree.Element, in entity.AddendaInput, data entity.ComprobanteData, d entity.DatosDerivados) {
	articulos := strconv.Itoa(len(data.Conceptos))
	for i, t := range in.Tarimas {
		row := newRow(ds, "CajasTarimas", "CajaTarima", i)
		field(row, "Proveedor", in.Proveedor)
		field(row, "Remision", d.Remision)
		field(row, "NumeroCajaTarima", strconv.Itoa(t.Numero))
		field(row, "CodigoBarraCajaTarima", t.CodigoBarra)
		field(row, "SucursalDistribuir", in.Entrega)
		field(row, "CantidadArticulos", articulos)
	}
}

func writeArticulosPorCajaTarima(ds *etree.Element, in entity.AddendaInput, d entity.DatosDerivados) {
	for i, p := range d.ProductosEnTarimas {
		row := newRow(ds, "ArticulosPorCajaTarima", "ArticulosPorCajaTarima", i)
		field(row, "Proveedor", in.Proveedor)
		field(row, "Remision", d.Remision)
		field(row, "FolioPedido", in.FolioPedido)
		field(row, "NumeroCajaTarima", strconv.Itoa(p.NumeroTarima))
		field(row, "SucursalDistribuir", in.Entrega)
		field(row, "Codigo", p.Codigo)
		field(row, "CantidadUnidadCompra", p.Cantidad.String())
	}
}
