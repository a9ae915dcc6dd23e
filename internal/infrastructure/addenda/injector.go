package addenda

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/addenda-cfdi/internal/domain"
	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
	"github.com/jhoicas/addenda-cfdi/pkg/cfdi"
)

// Generate construye la Addenda y la inserta justo antes de la etiqueta de cierre
// del nodo raíz Comprobante. El resto del documento se conserva byte por byte.
// El prefijo de cfdi:Addenda es el mismo que usa la raíz del documento.
func (g *Generator) Generate(originalXML string, in entity.AddendaInput, data entity.ComprobanteData) (string, error) {
	at, prefix, err := locateRootEnd(originalXML)
	if err != nil {
		return "", err
	}
	fragment, err := g.build(prefix, in, data)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(originalXML) + len(fragment))
	sb.WriteString(originalXML[:at])
	sb.WriteString(fragment)
	sb.WriteString(originalXML[at:])
	return sb.String(), nil
}

// locateRootEnd devuelve el offset (en bytes) donde inicia la etiqueta de cierre de la
// raíz Comprobante y el prefijo con el que está escrita. Se tokeniza el documento en vez
// de buscar el literal "</cfdi:Comprobante>", así que tolera espacios dentro de la
// etiqueta, comentarios o CDATA que contengan ese texto.
func locateRootEnd(xmlText string) (int, string, error) {
	dec := xml.NewDecoder(strings.NewReader(xmlText))
	dec.Strict = true
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }

	depth := 0
	prefix := ""
	for {
		start := dec.InputOffset()
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, "", fmt.Errorf("addenda: leer XML: %w: %v", domain.ErrMalformedDocument, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if t.Name.Local != cfdi.NodeComprobante {
					return 0, "", fmt.Errorf("addenda: la raíz es %q y no Comprobante: %w", t.Name.Local, domain.ErrMalformedDocument)
				}
				prefix = t.Name.Space
			}
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				// <cfdi:Comprobante/> no tiene etiqueta de cierre donde insertar.
				if dec.InputOffset() == start {
					return 0, "", fmt.Errorf("addenda: Comprobante vacío sin etiqueta de cierre: %w", domain.ErrMalformedDocument)
				}
				return int(start), prefix, nil
			}
		}
		if depth < 0 {
			break
		}
	}
	return 0, "", fmt.Errorf("addenda: no se encontró la etiqueta de cierre de Comprobante: %w", domain.ErrMalformedDocument)
}
