// Package cfdi contiene catálogos del SAT y constantes de estructura del
// Comprobante Fiscal Digital por Internet (CFDI 3.3 / 4.0) usados al extraer
// datos y al generar la Addenda.
package cfdi

// =============================================================================
// Namespaces
// =============================================================================

const (
	NsCfdi33 = "http://www.sat.gob.mx/cfd/3"
	NsCfdi40 = "http://www.sat.gob.mx/cfd/4"
	NsTfd    = "http://www.sat.gob.mx/TimbreFiscalDigital"

	// Prefijo convencional del namespace del comprobante.
	DefaultPrefix = "cfdi"
)

// =============================================================================
// c_Impuesto - Catálogo de impuestos (Anexo 20)
// =============================================================================

const (
	ImpuestoISR  = "001"
	ImpuestoIVA  = "002"
	ImpuestoIEPS = "003"
)

// =============================================================================
// Nombres locales de nodos y atributos
// =============================================================================

const (
	NodeComprobante         = "Comprobante"
	NodeConceptos           = "Conceptos"
	NodeConcepto            = "Concepto"
	NodeImpuestos           = "Impuestos"
	NodeTraslados           = "Traslados"
	NodeTraslado            = "Traslado"
	NodeComplemento         = "Complemento"
	NodeTimbreFiscalDigital = "TimbreFiscalDigital"
	NodeAddenda             = "Addenda"

	AttrImpuesto   = "Impuesto"
	AttrTasaOCuota = "TasaOCuota"
	AttrImporte    = "Importe"
	AttrUUID       = "UUID"
)

// =============================================================================
// Tablas de valores por defecto
// Un atributo ausente en el XML toma el valor de la tabla; no es un error.
// =============================================================================

// ComprobanteDefaults atributos leídos de la raíz y su valor por defecto.
var ComprobanteDefaults = map[string]string{
	"Serie":    "",
	"Folio":    "",
	"Fecha":    "",
	"SubTotal": "0.00",
	"Total":    "0.00",
	"Moneda":   "MXN",
}

// ConceptoDefaults atributos copiados de cada cfdi:Concepto.
var ConceptoDefaults = map[string]string{
	"ClaveProdServ":    "",
	"NoIdentificacion": "",
	"Cantidad":         "",
	"ClaveUnidad":      "",
	"Unidad":           "",
	"Descripcion":      "",
	"ValorUnitario":    "",
	"Importe":          "",
}

const (
	// DefaultTasaIVA porcentaje/importe cuando no existe traslado 002.
	DefaultTasaIVA = "0.00"
	// CodigoFaltante se emite en la Addenda cuando el concepto no trae NoIdentificacion.
	CodigoFaltante = "FALTA_CODIGO"
)
