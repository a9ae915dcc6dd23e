package addenda

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
)

// Derive calcula remisión, fecha, productos aplanados y total de bultos.
// El total de bultos sale de los datos logísticos, no de los conceptos del CFDI.
func Derive(in entity.AddendaInput, cfdi entity.ComprobanteData) entity.DatosDerivados {
	productos := flattenTarimas(in.Tarimas)
	total := decimal.Zero
	for _, p := range productos {
		total = total.Add(p.Cantidad)
	}
	return entity.DatosDerivados{
		Remision:            cfdi.Remision(),
		FechaRemision:       datePart(cfdi.Fecha),
		ProductosEnTarimas:  productos,
		CantidadTotalBultos: total.StringFixed(2),
	}
}

// flattenTarimas aplana los productos de todas las tarimas conservando el orden de captura.
// Cada producto queda ligado al número de la tarima que lo contiene.
// Derive expone el cálculo para quien necesite los mismos valores que lleva la Addenda.
func (g *Generator) Derive(in entity.AddendaInput, cfdi entity.ComprobanteData) entity.DatosDerivados {
	return Derive(in, cfdi)
}

func flattenTarimas(tarimas []entity.TarimaInput) []entity.ProductoEnTarima {
	n := 0
	for _, t := range tarimas {
		n += len(t.Productos)
	}
	out := make([]entity.ProductoEnTarima, 0, n)
	for _, t := range tarimas {
		for _, p := range t.Productos {
			out = append(out, entity.ProductoEnTarima{
				Codigo:       p.Codigo,
				Cantidad:     p.Cantidad,
				NumeroTarima: t.Numero,
			})
		}
	}
	return out
}

func datePart(fecha string) string {
	r := []rune(fecha)
	if len(r) <= 10 {
		return fecha
	}
	return string(r[:10])
}
