package addenda

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/addenda-cfdi/internal/domain"
	"github.com/jhoicas/addenda-cfdi/pkg/cfdi"
)

// VerifyInjection comprueba que result sea original más una Addenda como último hijo
// de la raíz: quita esa Addenda y compara la forma canónica (C14N) de ambos documentos.
func VerifyInjection(original, result string) error {
	want, err := canonicalRoot(original, false)
	if err != nil {
		return err
	}
	got, err := canonicalRoot(result, true)
	if err != nil {
		return err
	}
	if !bytes.Equal(want, got) {
		return fmt.Errorf("addenda: el documento cambió fuera de la Addenda: %w", domain.ErrInjectionMismatch)
	}
	return nil
}

// canonicalRoot serializa solo el elemento raíz (sin declaración XML) y lo canonicaliza.
func canonicalRoot(xmlText string, dropAddenda bool) ([]byte, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, fmt.Errorf("addenda: parsear XML: %w: %v", domain.ErrMalformedDocument, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("addenda: documento sin raíz: %w", domain.ErrMalformedDocument)
	}
	root = root.Copy()

	if dropAddenda {
		children := root.ChildElements()
		if len(children) == 0 || children[len(children)-1].Tag != cfdi.NodeAddenda {
			return nil, fmt.Errorf("addenda: la Addenda no es el último hijo de la raíz: %w", domain.ErrInjectionMismatch)
		}
		root.RemoveChild(children[len(children)-1])
	}

	out := etree.NewDocument()
	out.SetRoot(root)
	raw, err := out.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("addenda: serializar XML: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("addenda: canonicalizar XML: %w", err)
	}
	return canonical, nil
}
