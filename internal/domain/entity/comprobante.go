package entity

// ConceptoCFDI representa una línea (cfdi:Concepto) de la factura.
// Los importes se conservan como cadenas decimales tal como vienen en el XML.
type ConceptoCFDI struct {
	ClaveProdServ    string
	NoIdentificacion string // SKU del proveedor
	Cantidad         string
	ClaveUnidad      string
	Unidad           string
	Descripcion      string
	ValorUnitario    string
	Importe          string
	Index            int    // Posición (base 0) en el documento; Id/RowOrder en la Addenda
	TasaIVA          string // Porcentaje con 2 decimales, calculado desde el traslado 002
}

// ImpuestosComprobante impuestos a nivel comprobante.
type ImpuestosComprobante struct {
	TasaIVA string // Importe (no tasa) del traslado 002 de la raíz
}

// ComprobanteData resumen fiscal extraído de un CFDI.
type ComprobanteData struct {
	UUID      string // Vacío si la factura no está timbrada
	Serie     string
	Folio     string
	Fecha     string
	SubTotal  string
	Total     string
	Moneda    string
	Impuestos ImpuestosComprobante
	Conceptos []ConceptoCFDI
}

// Remision devuelve la referencia del documento: Serie + Folio, sin separador.
func (c ComprobanteData) Remision() string {
	return c.Serie + c.Folio
}
