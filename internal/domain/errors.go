package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrMalformedDocument: no se encontró el nodo Comprobante o su etiqueta de cierre.
	ErrMalformedDocument  = errors.New("documento CFDI mal formado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnsupportedCharset = errors.New("codificación de caracteres no soportada")
	// ErrInjectionMismatch: el documento resultante difiere del original fuera de la Addenda.
	ErrInjectionMismatch = errors.New("la inyección de la addenda alteró el documento original")
)
