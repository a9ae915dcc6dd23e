package cfdi

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/addenda-cfdi/internal/domain"
	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
	"github.com/jhoicas/addenda-cfdi/pkg/cfdi"
)

var hundred = decimal.NewFromInt(100)

// Parser extrae el resumen fiscal (ComprobanteData) de un CFDI 3.3/4.0.
// No guarda estado: una misma instancia se puede usar desde varias goroutines.
type Parser struct{}

// NewParser crea el parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse lee el texto XML y devuelve el resumen fiscal con sus conceptos en orden de documento.
// Devuelve domain.ErrMalformedDocument si no existe el nodo raíz Comprobante.
func (p *Parser) Parse(xmlText string) (*entity.ComprobanteData, error) {
	doc, err := readDocument(xmlText)
	if err != nil {
		return nil, fmt.Errorf("cfdi: parsear XML: %w: %v", domain.ErrMalformedDocument, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != cfdi.NodeComprobante {
		return nil, fmt.Errorf("cfdi: no se encontró el nodo Comprobante en el XML: %w", domain.ErrMalformedDocument)
	}

	attrs := readAttrs(root, cfdi.ComprobanteDefaults)
	data := &entity.ComprobanteData{
		UUID:     timbreUUID(root),
		Serie:    attrs["Serie"],
		Folio:    attrs["Folio"],
		Fecha:    attrs["Fecha"],
		SubTotal: attrs["SubTotal"],
		Total:    attrs["Total"],
		Moneda:   attrs["Moneda"],
		Impuestos: entity.ImpuestosComprobante{
			TasaIVA: importeIVA(root),
		},
		Conceptos: conceptos(root),
	}
	return data, nil
}

func conceptos(root *etree.Element) []entity.ConceptoCFDI {
	nodes := descendantsByPath(root, cfdi.NodeConceptos, cfdi.NodeConcepto)
	out := make([]entity.ConceptoCFDI, 0, len(nodes))
	for i, node := range nodes {
		attrs := readAttrs(node, cfdi.ConceptoDefaults)
		out = append(out, entity.ConceptoCFDI{
			ClaveProdServ:    attrs["ClaveProdServ"],
			NoIdentificacion: attrs["NoIdentificacion"],
			Cantidad:         attrs["Cantidad"],
			ClaveUnidad:      attrs["ClaveUnidad"],
			Unidad:           attrs["Unidad"],
			Descripcion:      attrs["Descripcion"],
			ValorUnitario:    attrs["ValorUnitario"],
			Importe:          attrs["Importe"],
			Index:            i,
			TasaIVA:          tasaIVAPorcentaje(node),
		})
	}
	return out
}

// traslados devuelve los cfdi:Traslado directos de <Impuestos><Traslados> del nodo dado
// (raíz o concepto), nunca los de nodos anidados más abajo.
func traslados(el *etree.Element) []*etree.Element {
	return descendantsByPath(el, cfdi.NodeImpuestos, cfdi.NodeTraslados, cfdi.NodeTraslado)
}

func trasladoIVA(el *etree.Element) *etree.Element {
	for _, t := range traslados(el) {
		if v, _ := attr(t, cfdi.AttrImpuesto); v == cfdi.ImpuestoIVA {
			return t
		}
	}
	return nil
}

// tasaIVAPorcentaje convierte TasaOCuota (fracción, ej. 0.160000) en porcentaje con 2 decimales.
func tasaIVAPorcentaje(concepto *etree.Element) string {
	t := trasladoIVA(concepto)
	if t == nil {
		return cfdi.DefaultTasaIVA
	}
	raw, ok := attr(t, cfdi.AttrTasaOCuota)
	if !ok {
		return cfdi.DefaultTasaIVA
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return cfdi.DefaultTasaIVA
	}
	return rate.Mul(hundred).StringFixed(2)
}

// importeIVA devuelve el Importe del traslado 002 declarado en la raíz.
func importeIVA(root *etree.Element) string {
	return attrOr(trasladoIVA(root), cfdi.AttrImporte, cfdi.DefaultTasaIVA)
}

func timbreUUID(root *etree.Element) string {
	for _, complemento := range childrenByLocal(root, cfdi.NodeComplemento) {
		if tfd := firstChild(complemento, cfdi.NodeTimbreFiscalDigital); tfd != nil {
			return attrOr(tfd, cfdi.AttrUUID, "")
		}
	}
	return ""
}
