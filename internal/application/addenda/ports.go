package addenda

import (
	"context"

	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
)

// InvoiceParser extrae el resumen fiscal de un CFDI.
type InvoiceParser interface {
	Parse(xmlText string) (*entity.ComprobanteData, error)
}

// AddendaGenerator construye la Addenda Soriana y la inserta en el CFDI original.
type AddendaGenerator interface {
	Build(in entity.AddendaInput, data entity.ComprobanteData) (string, error)
	Generate(originalXML string, in entity.AddendaInput, data entity.ComprobanteData) (string, error)
	Derive(in entity.AddendaInput, data entity.ComprobanteData) entity.DatosDerivados
}

// InjectionVerifier comprueba que el documento resultante solo difiera del original en la Addenda.
type InjectionVerifier func(original, result string) error

// PackingListGenerator genera la lista de empaque en PDF.
type PackingListGenerator interface {
	GeneratePackingList(ctx context.Context, in entity.AddendaInput, cfdi entity.ComprobanteData) ([]byte, error)
}
