package addenda_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/addenda-cfdi/internal/domain"
	"github.com/jhoicas/addenda-cfdi/internal/infrastructure/addenda"
)

const (
	cierreRaiz = "</cfdi:Comprobante>"

	cfdiOriginal = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital" Version="4.0" Serie="A" Folio="100" Fecha="2024-03-15T10:20:30" SubTotal="400.00" Moneda="MXN" Total="464.00">
  <cfdi:Conceptos>
    <cfdi:Concepto NoIdentificacion="SKU1" Cantidad="4" ValorUnitario="100.00" Importe="400.00" Descripcion="Galletas &amp; pan"/>
  </cfdi:Conceptos>
  <cfdi:Complemento>
    <tfd:TimbreFiscalDigital Version="1.1" UUID="6F1B2C3D-4E5F-4A6B-8C7D-9E0F1A2B3C4D"/>
  </cfdi:Complemento>
</cfdi:Comprobante>`
)

func TestGenerate_InsertaAntesDelCierreDeLaRaiz(t *testing.T) {
	g := addenda.NewGenerator(addenda.DefaultConfig())
	fragment, err := g.Build(inputUnaTarima(), comprobanteUnConcepto())
	require.NoError(t, err)

	out, err := g.Generate(cfdiOriginal, inputUnaTarima(), comprobanteUnConcepto())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, cierreRaiz), "debe existir exactamente un cierre de la raíz")
	idx := strings.Index(cfdiOriginal, cierreRaiz)
	assert.Equal(t, cfdiOriginal[:idx], out[:idx], "los bytes previos al punto de inserción no cambian")
	assert.True(t, strings.HasSuffix(out, fragment+cierreRaiz), "la Addenda queda inmediatamente antes del cierre")
	assert.Equal(t, cfdiOriginal, strings.Replace(out, fragment, "", 1), "quitando la Addenda se recupera el original")
}

func TestGenerate_PrefijoDeLaRaiz(t *testing.T) {
	original := `<Comprobante Serie="A" Folio="100"><Conceptos/></Comprobante>`
	out, err := addenda.NewGenerator(addenda.DefaultConfig()).Generate(original, inputUnaTarima(), comprobanteUnConcepto())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<Comprobante Serie="A" Folio="100"><Conceptos/><Addenda>`))
	assert.True(t, strings.HasSuffix(out, "</Addenda></Comprobante>"))
	assert.NotContains(t, out, "cfdi:Addenda")
}

func TestGenerate_ToleraEspaciosEnEtiquetaDeCierre(t *testing.T) {
	original := `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Serie="A"></cfdi:Comprobante  >` + "\n"
	out, err := addenda.NewGenerator(addenda.DefaultConfig()).Generate(original, inputUnaTarima(), comprobanteUnConcepto())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "</cfdi:Addenda></cfdi:Comprobante  >\n"))
}

func TestGenerate_IgnoraCierreDentroDeComentarios(t *testing.T) {
	original := `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4"><!-- </cfdi:Comprobante> --><cfdi:Conceptos/></cfdi:Comprobante>`
	out, err := addenda.NewGenerator(addenda.DefaultConfig()).Generate(original, inputUnaTarima(), comprobanteUnConcepto())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4"><!-- </cfdi:Comprobante> --><cfdi:Conceptos/><cfdi:Addenda>`))
	assert.True(t, strings.HasSuffix(out, "</cfdi:Addenda></cfdi:Comprobante>"))
}

func TestGenerate_ErrorSinEtiquetaDeCierre(t *testing.T) {
	casos := map[string]string{
		"sin cierre":       `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4"><cfdi:Conceptos/>`,
		"raíz autocerrada": `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4"/>`,
		"otra raíz":        `<cfdi:Retenciones xmlns:cfdi="http://www.sat.gob.mx/cfd/4"></cfdi:Retenciones>`,
		"vacío":            ``,
		"texto":            `no es xml`,
	}
	g := addenda.NewGenerator(addenda.DefaultConfig())
	for nombre, original := range casos {
		t.Run(nombre, func(t *testing.T) {
			out, err := g.Generate(original, inputUnaTarima(), comprobanteUnConcepto())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedDocument)
			assert.Empty(t, out)
		})
	}
}

// ── Verificación C14N ─────────────────────────────────────────────────────────

func TestVerifyInjection_DocumentoGenerado(t *testing.T) {
	out, err := addenda.NewGenerator(addenda.DefaultConfig()).Generate(cfdiOriginal, inputUnaTarima(), comprobanteUnConcepto())
	require.NoError(t, err)
	assert.NoError(t, addenda.VerifyInjection(cfdiOriginal, out))
}

func TestVerifyInjection_DetectaCambiosFueraDeLaAddenda(t *testing.T) {
	out, err := addenda.NewGenerator(addenda.DefaultConfig()).Generate(cfdiOriginal, inputUnaTarima(), comprobanteUnConcepto())
	require.NoError(t, err)

	alterado := strings.Replace(out, `Folio="100"`, `Folio="101"`, 1)
	assert.ErrorIs(t, addenda.VerifyInjection(cfdiOriginal, alterado), domain.ErrInjectionMismatch)
}

func TestVerifyInjection_AddendaDebeSerElUltimoHijo(t *testing.T) {
	assert.ErrorIs(t, addenda.VerifyInjection(cfdiOriginal, cfdiOriginal), domain.ErrInjectionMismatch)
}
