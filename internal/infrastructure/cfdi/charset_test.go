package cfdi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/addenda-cfdi/internal/domain"
	"github.com/jhoicas/addenda-cfdi/internal/infrastructure/cfdi"
)

func TestDecodeDocument_UTF8SinCambios(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?><cfdi:Comprobante Folio="ñ"/>`)
	text, label, err := cfdi.DecodeDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", label)
	assert.Equal(t, string(raw), text)
}

func TestDecodeDocument_QuitaBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<Comprobante/>`)...)
	text, label, err := cfdi.DecodeDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "", label)
	assert.Equal(t, `<Comprobante/>`, text)
}

func TestDecodeDocument_ISO88591IdaYVuelta(t *testing.T) {
	// "Compañía" en Latin-1: ñ = 0xF1, í = 0xED
	raw := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Comprobante Serie=\"Compa\xf1\xeda\"/>")

	text, label, err := cfdi.DecodeDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-1", label)
	assert.Contains(t, text, `Serie="Compañía"`)

	data, err := cfdi.NewParser().Parse(text)
	require.NoError(t, err, "el parser debe aceptar el texto ya decodificado aunque declare ISO-8859-1")
	assert.Equal(t, "Compañía", data.Serie)

	back, err := cfdi.EncodeDocument(text, label)
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestDecodeDocument_ErrorCodificacionDesconocida(t *testing.T) {
	_, _, err := cfdi.DecodeDocument([]byte(`<?xml version="1.0" encoding="x-no-existe"?><Comprobante/>`))
	assert.ErrorIs(t, err, domain.ErrUnsupportedCharset)
}
