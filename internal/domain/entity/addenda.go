package entity

import "github.com/shopspring/decimal"

// ProductoInput producto asignado a una tarima.
type ProductoInput struct {
	Codigo       string
	Cantidad     decimal.Decimal
	NumeroTarima *int // Opcional; al aplanar prevalece el número de la tarima que lo contiene
}

// TarimaInput tarima (pallet) física capturada por el usuario.
type TarimaInput struct {
	Numero      int
	CodigoBarra string // SSCC
	Productos   []ProductoInput
}

// AddendaInput datos logísticos para la Addenda (proveedor, tienda, cita, tarimas).
type AddendaInput struct {
	Proveedor    string
	Tienda       string
	Entrega      string
	Cita         string
	FolioPedido  string
	FechaEntrega string
	Tarimas      []TarimaInput
}

// ProductoEnTarima producto aplanado junto con el número de su tarima.
type ProductoEnTarima struct {
	Codigo       string
	Cantidad     decimal.Decimal
	NumeroTarima int
}

// DatosDerivados valores calculados una sola vez por generación.
type DatosDerivados struct {
	Remision            string // Serie + Folio
	FechaRemision       string // Solo la fecha (AAAA-MM-DD) de cfdi.Fecha
	ProductosEnTarimas  []ProductoEnTarima
	CantidadTotalBultos string // Suma de cantidades de todas las tarimas, 2 decimales
}
