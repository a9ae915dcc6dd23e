package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/addenda-cfdi/internal/domain"
	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
)

// Formatos aceptados para el archivo de datos logísticos.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Quantity cantidad de un producto. Acepta número o cadena numérica en JSON y YAML.
type Quantity struct {
	decimal.Decimal
}

// UnmarshalYAML admite `cantidad: 4`, `cantidad: 2.5` o `cantidad: "4"`.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("cantidad: se esperaba un escalar en la línea %d", node.Line)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("cantidad %q en la línea %d: %w", node.Value, node.Line, err)
	}
	q.Decimal = d
	return nil
}

// MarshalYAML escribe la cantidad como cadena para no perder precisión.
func (q Quantity) MarshalYAML() (interface{}, error) {
	return q.Decimal.String(), nil
}

// ProductoRequest producto dentro de una tarima.
type ProductoRequest struct {
	Codigo       string   `json:"codigo" yaml:"codigo"`
	Cantidad     Quantity `json:"cantidad" yaml:"cantidad"`
	NumeroTarima *int     `json:"numeroTarima,omitempty" yaml:"numeroTarima,omitempty"`
}

// TarimaRequest tarima con su código de barras (SSCC) y productos.
type TarimaRequest struct {
	Numero      int               `json:"numero" yaml:"numero"`
	CodigoBarra string            `json:"codigoBarra" yaml:"codigoBarra"`
	Productos   []ProductoRequest `json:"productos" yaml:"productos"`
}

// AddendaRequest datos logísticos capturados por el proveedor para generar la Addenda.
type AddendaRequest struct {
	Proveedor    string          `json:"proveedor" yaml:"proveedor"`
	Tienda       string          `json:"tienda" yaml:"tienda"`
	Entrega      string          `json:"entrega" yaml:"entrega"`
	Cita         string          `json:"cita" yaml:"cita"`
	FolioPedido  string          `json:"folioPedido" yaml:"folioPedido"`
	FechaEntrega string          `json:"fechaEntrega" yaml:"fechaEntrega"`
	Tarimas      []TarimaRequest `json:"tarimas" yaml:"tarimas"`
}

// ToEntity convierte la petición al modelo de dominio.
func (r AddendaRequest) ToEntity() entity.AddendaInput {
	in := entity.AddendaInput{
		Proveedor:    r.Proveedor,
		Tienda:       r.Tienda,
		Entrega:      r.Entrega,
		Cita:         r.Cita,
		FolioPedido:  r.FolioPedido,
		FechaEntrega: r.FechaEntrega,
		Tarimas:      make([]entity.TarimaInput, 0, len(r.Tarimas)),
	}
	for _, t := range r.Tarimas {
		tarima := entity.TarimaInput{
			Numero:      t.Numero,
			CodigoBarra: t.CodigoBarra,
			Productos:   make([]entity.ProductoInput, 0, len(t.Productos)),
		}
		for _, p := range t.Productos {
			tarima.Productos = append(tarima.Productos, entity.ProductoInput{
				Codigo:       p.Codigo,
				Cantidad:     p.Cantidad.Decimal,
				NumeroTarima: p.NumeroTarima,
			})
		}
		in.Tarimas = append(in.Tarimas, tarima)
	}
	return in
}

// DecodeAddendaRequest lee los datos logísticos en JSON o YAML. Con format vacío
// se asume JSON si el contenido empieza con '{' y YAML en otro caso.
func DecodeAddendaRequest(raw []byte, format string) (*AddendaRequest, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("dto: datos logísticos vacíos: %w", domain.ErrInvalidInput)
	}
	if format == "" {
		format = FormatYAML
		if trimmed[0] == '{' {
			format = FormatJSON
		}
	}

	var req AddendaRequest
	switch strings.ToLower(format) {
	case FormatJSON:
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, fmt.Errorf("dto: decodificar JSON: %w: %v", domain.ErrInvalidInput, err)
		}
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(trimmed, &req); err != nil {
			return nil, fmt.Errorf("dto: decodificar YAML: %w: %v", domain.ErrInvalidInput, err)
		}
	default:
		return nil, fmt.Errorf("dto: formato %q no soportado: %w", format, domain.ErrInvalidInput)
	}
	return &req, nil
}

// ImpuestosResponse impuestos globales del comprobante.
type ImpuestosResponse struct {
	TasaIVA string `json:"tasaIVA"`
}

// ConceptoResponse concepto del CFDI.
type ConceptoResponse struct {
	Index            int    `json:"index"`
	ClaveProdServ    string `json:"claveProdServ"`
	NoIdentificacion string `json:"noIdentificacion"`
	Cantidad         string `json:"cantidad"`
	ClaveUnidad      string `json:"claveUnidad"`
	Unidad           string `json:"unidad"`
	Descripcion      string `json:"descripcion"`
	ValorUnitario    string `json:"valorUnitario"`
	Importe          string `json:"importe"`
	TasaIVA          string `json:"tasaIVA"`
}

// ComprobanteResponse resumen del CFDI que devuelve la operación de lectura.
type ComprobanteResponse struct {
	UUID      string             `json:"uuid"`
	Serie     string             `json:"serie"`
	Folio     string             `json:"folio"`
	Fecha     string             `json:"fecha"`
	SubTotal  string             `json:"subTotal"`
	Total     string             `json:"total"`
	Moneda    string             `json:"moneda"`
	Impuestos ImpuestosResponse  `json:"impuestos"`
	Conceptos []ConceptoResponse `json:"conceptos"`
}

// NewComprobanteResponse arma la respuesta a partir del resumen del dominio.
func NewComprobanteResponse(c *entity.ComprobanteData) ComprobanteResponse {
	resp := ComprobanteResponse{
		UUID:      c.UUID,
		Serie:     c.Serie,
		Folio:     c.Folio,
		Fecha:     c.Fecha,
		SubTotal:  c.SubTotal,
		Total:     c.Total,
		Moneda:    c.Moneda,
		Impuestos: ImpuestosResponse{TasaIVA: c.Impuestos.TasaIVA},
		Conceptos: make([]ConceptoResponse, 0, len(c.Conceptos)),
	}
	for _, con := range c.Conceptos {
		resp.Conceptos = append(resp.Conceptos, ConceptoResponse{
			Index:            con.Index,
			ClaveProdServ:    con.ClaveProdServ,
			NoIdentificacion: con.NoIdentificacion,
			Cantidad:         con.Cantidad,
			ClaveUnidad:      con.ClaveUnidad,
			Unidad:           con.Unidad,
			Descripcion:      con.Descripcion,
			ValorUnitario:    con.ValorUnitario,
			Importe:          con.Importe,
			TasaIVA:          con.TasaIVA,
		})
	}
	return resp
}

// GenerateSummary detalle que se informa tras generar la Addenda.
// Folio sigue el formato "serie-folio".
type GenerateSummary struct {
	FileName            string `json:"fileName"`
	UUID                string `json:"uuid,omitempty"`
	Folio               string `json:"folio"`
	Total               string `json:"total"`
	Proveedor           string `json:"proveedor"`
	CantidadTarimas     int    `json:"cantidadTarimas"`
	CantidadTotalBultos string `json:"cantidadTotalBultos"`
	PackingList         string `json:"packingList,omitempty"`
}
