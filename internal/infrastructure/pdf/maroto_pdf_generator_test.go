package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
	"github.com/jhoicas/addenda-cfdi/internal/infrastructure/pdf"
)

func logistica() entity.AddendaInput {
	return entity.AddendaInput{
		Proveedor:    "12345",
		Tienda:       "0250",
		Entrega:      "0250",
		FolioPedido:  "PO-9",
		FechaEntrega: "2024-03-20",
		Tarimas: []entity.TarimaInput{
			{Numero: 1, CodigoBarra: "000750100000000017", Productos: []entity.ProductoInput{
				{Codigo: "SKU1", Cantidad: decimal.NewFromInt(4)},
				{Codigo: "SKU2", Cantidad: decimal.RequireFromString("2.5")},
			}},
			{Numero: 2, Productos: []entity.ProductoInput{
				{Codigo: "SKU9", Cantidad: decimal.NewFromInt(1)},
			}},
		},
	}
}

func TestGeneratePackingList_GeneraPDF(t *testing.T) {
	cfdi := entity.ComprobanteData{
		Serie: "A", Folio: "100", Fecha: "2024-03-15T10:20:30",
		Conceptos: []entity.ConceptoCFDI{{NoIdentificacion: "SKU1", Descripcion: "Galletas"}},
	}
	out, err := pdf.NewPackingListGenerator().GeneratePackingList(context.Background(), logistica(), cfdi)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGeneratePackingList_SinTarimas(t *testing.T) {
	out, err := pdf.NewPackingListGenerator().GeneratePackingList(context.Background(), entity.AddendaInput{}, entity.ComprobanteData{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePackingList_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := pdf.NewPackingListGenerator().GeneratePackingList(ctx, logistica(), entity.ComprobanteData{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}
