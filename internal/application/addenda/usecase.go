package addenda

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/addenda-cfdi/internal/domain/entity"
	"github.com/jhoicas/addenda-cfdi/pkg/logger"
)

// Result salida de una generación: el CFDI con la Addenda y los datos usados para armarla.
type Result struct {
	RunID       string
	XML         string // CFDI original con la Addenda insertada
	Addenda     string // Solo el bloque <cfdi:Addenda>
	Comprobante *entity.ComprobanteData
	Derived     entity.DatosDerivados
	PackingList []byte // nil si no se configuró generador de PDF
	FileName    string // factura-{serie}{folio}.xml
}

// AddendaUseCase orquesta lectura del CFDI, generación, inserción y verificación de la Addenda.
type AddendaUseCase struct {
	parser      InvoiceParser
	generator   AddendaGenerator
	verify      InjectionVerifier    // nil = sin verificación
	packingList PackingListGenerator // nil = sin PDF
	log         *logger.Logger
}

// NewAddendaUseCase construye el caso de uso inyectando sus dependencias.
// verify y packingList son opcionales.
func NewAddendaUseCase(
	parser InvoiceParser,
	generator AddendaGenerator,
	verify InjectionVerifier,
	packingList PackingListGenerator,
	log *logger.Logger,
) *AddendaUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AddendaUseCase{
		parser:      parser,
		generator:   generator,
		verify:      verify,
		packingList: packingList,
		log:         log,
	}
}

// ParseInvoice devuelve el resumen del CFDI sin generar nada.
func (uc *AddendaUseCase) ParseInvoice(ctx context.Context, xmlText string) (*entity.ComprobanteData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := uc.parser.Parse(xmlText)
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudo leer el CFDI")
		return nil, err
	}
	uc.log.Info().
		Str("uuid", data.UUID).
		Str("remision", data.Remision()).
		Int("conceptos", len(data.Conceptos)).
		Msg("CFDI leído")
	return data, nil
}

// GenerateAddenda lee el CFDI, arma la Addenda con los datos logísticos y la inserta
// antes del cierre de Comprobante.
//
// Retorna:
//   - domain.ErrMalformedDocument  si el CFDI no es XML válido o no tiene raíz Comprobante.
//   - domain.ErrInjectionMismatch  si la verificación detecta cambios fuera de la Addenda.
func (uc *AddendaUseCase) GenerateAddenda(ctx context.Context, xmlText string, in entity.AddendaInput) (*Result, error) {
	runID := uuid.NewString()
	log := uc.log.WithRun(runID)

	// ── 1. Leer CFDI ──────────────────────────────────────────────────────────
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := uc.parser.Parse(xmlText)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo leer el CFDI")
		return nil, err
	}
	log.Debug().
		Str("uuid", data.UUID).
		Str("remision", data.Remision()).
		Int("conceptos", len(data.Conceptos)).
		Int("tarimas", len(in.Tarimas)).
		Msg("CFDI leído")

	uc.warnUnmatchedSKUs(log, in, data)

	// ── 2. Insertar Addenda ───────────────────────────────────────────────────
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := uc.generator.Generate(xmlText, in, *data)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo insertar la Addenda")
		return nil, err
	}
	fragment, err := uc.generator.Build(in, *data)
	if err != nil {
		return nil, fmt.Errorf("addenda: construir fragmento: %w", err)
	}

	// ── 3. Verificar que el CFDI no cambió ────────────────────────────────────
	if uc.verify != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := uc.verify(xmlText, out); err != nil {
			log.Error().Err(err).Msg("verificación C14N fallida")
			return nil, err
		}
		log.Debug().Msg("verificación C14N correcta")
	}

	res := &Result{
		RunID:       runID,
		XML:         out,
		Addenda:     fragment,
		Comprobante: data,
		Derived:     uc.generator.Derive(in, *data),
		FileName:    fmt.Sprintf("factura-%s%s.xml", data.Serie, data.Folio),
	}

	// ── 4. Lista de empaque (opcional) ────────────────────────────────────────
	if uc.packingList != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf, err := uc.packingList.GeneratePackingList(ctx, in, *data)
		if err != nil {
			log.Error().Err(err).Msg("no se pudo generar la lista de empaque")
			return nil, err
		}
		res.PackingList = pdf
	}

	log.Info().
		Str("remision", res.Derived.Remision).
		Str("bultos", res.Derived.CantidadTotalBultos).
		Int("tarimas", len(in.Tarimas)).
		Str("archivo", res.FileName).
		Msg("Addenda generada")
	return res, nil
}

// warnUnmatchedSKUs avisa de códigos capturados en tarimas que no están en el CFDI y de
// conceptos del CFDI que no viajan en ninguna tarima. No es un error: la Addenda se genera igual.
func (uc *AddendaUseCase) warnUnmatchedSKUs(log *logger.Logger, in entity.AddendaInput, data *entity.ComprobanteData) {
	enFactura := make(map[string]bool, len(data.Conceptos))
	for _, c := range data.Conceptos {
		if c.NoIdentificacion != "" {
			enFactura[c.NoIdentificacion] = true
		}
	}
	enTarimas := make(map[string]bool)
	for _, t := range in.Tarimas {
		for _, p := range t.Productos {
			enTarimas[p.Codigo] = true
		}
	}

	if faltan := missing(enTarimas, enFactura); len(faltan) > 0 {
		log.Warn().Strs("codigos", faltan).Msg("códigos en tarimas que no aparecen en el CFDI")
	}
	if faltan := missing(enFactura, enTarimas); len(faltan) > 0 {
		log.Warn().Strs("codigos", faltan).Msg("conceptos del CFDI que no están en ninguna tarima")
	}
}

// missing devuelve, ordenadas, las claves de a que no están en b.
func missing(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
