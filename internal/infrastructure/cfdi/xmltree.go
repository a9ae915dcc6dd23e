package cfdi

import (
	"io"

	"github.com/beevik/etree"
)

// readDocument parsea texto XML ya decodificado a UTF-8 en un árbol etree.
// La declaración encoding="..." se ignora: DecodeDocument ya transcodificó el texto.
func readDocument(xmlText string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = passthroughCharset
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, err
	}
	return doc, nil
}

func passthroughCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// childrenByLocal devuelve, en orden de documento, los hijos directos cuyo nombre
// local coincide, sin importar el prefijo. Siempre devuelve una secuencia:
// un único nodo y una lista de nodos se tratan igual.
func childrenByLocal(el *etree.Element, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == local {
			out = append(out, child)
		}
	}
	return out
}

// firstChild recorre la ruta de nombres locales y devuelve el primer nodo que la
// satisface, o nil si algún tramo no existe.
func firstChild(el *etree.Element, path ...string) *etree.Element {
	cur := el
	for _, local := range path {
		children := childrenByLocal(cur, local)
		if len(children) == 0 {
			return nil
		}
		cur = children[0]
	}
	return cur
}

// descendantsByPath devuelve todos los nodos que cumplen la ruta, en orden de documento.
func descendantsByPath(el *etree.Element, path ...string) []*etree.Element {
	if el == nil {
		return nil
	}
	current := []*etree.Element{el}
	for _, local := range path {
		var next []*etree.Element
		for _, c := range current {
			next = append(next, childrenByLocal(c, local)...)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// attr devuelve el valor de un atributo sin prefijo y si estaba presente.
func attr(el *etree.Element, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// attrOr devuelve el atributo o def si falta o está vacío.
func attrOr(el *etree.Element, name, def string) string {
	if v, ok := attr(el, name); ok && v != "" {
		return v
	}
	return def
}

// readAttrs aplica una tabla nombre → valor por defecto sobre el nodo.
func readAttrs(el *etree.Element, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(defaults))
	for name, def := range defaults {
		out[name] = attrOr(el, name, def)
	}
	return out
}
