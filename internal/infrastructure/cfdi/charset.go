package cfdi

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/jhoicas/addenda-cfdi/internal/domain"
)

var (
	utf8BOM         = []byte{0xEF, 0xBB, 0xBF}
	declEncodingRgx = regexp.MustCompile(`^\s*<\?xml[^>]*?\bencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
)

// DecodeDocument convierte los bytes de un CFDI a texto UTF-8 según el encoding declarado
// en <?xml ...?>. Devuelve también la etiqueta declarada ("" si no hay) para poder
// volver a codificar la salida con EncodeDocument.
func DecodeDocument(raw []byte) (string, string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	label := declaredCharset(raw)
	enc, err := lookupCharset(label)
	if err != nil {
		return "", "", err
	}
	if enc == nil {
		return string(raw), label, nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", "", fmt.Errorf("cfdi: decodificar %s: %w", label, err)
	}
	return string(out), label, nil
}

// EncodeDocument codifica el texto con la etiqueta devuelta por DecodeDocument.
func EncodeDocument(text, label string) ([]byte, error) {
	enc, err := lookupCharset(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}
	out, _, err := transform.String(enc.NewEncoder(), text)
	if err != nil {
		return nil, fmt.Errorf("cfdi: codificar %s: %w", label, err)
	}
	return []byte(out), nil
}

func declaredCharset(raw []byte) string {
	head := raw
	if len(head) > 256 {
		head = head[:256]
	}
	m := declEncodingRgx.FindSubmatch(head)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// lookupCharset devuelve nil para UTF-8 (sin transformación).
func lookupCharset(label string) (encoding.Encoding, error) {
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("cfdi: %q: %w", label, domain.ErrUnsupportedCharset)
	}
	return enc, nil
}
