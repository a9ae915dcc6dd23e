package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/addenda-cfdi/internal/application/dto"
	infracfdi "github.com/jhoicas/addenda-cfdi/internal/infrastructure/cfdi"
)

// stdio nombre que selecciona stdin/stdout en lugar de un archivo.
const stdio = "-"

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <cfdi.xml>",
		Short: "Muestra en JSON los datos del CFDI que usa la Addenda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xmlText, _, err := readCFDI(cmd, args[0])
			if err != nil {
				return err
			}
			data, err := a.useCase(false).ParseInvoice(cmd.Context(), xmlText)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewComprobanteResponse(data))
		},
	}
}

type generateFlags struct {
	datos       string
	format      string
	output      string
	pdf         string
	addendaOnly bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate <cfdi.xml>",
		Short: "Inserta la Addenda Soriana en el CFDI",
		Long: "Lee el CFDI y los datos logísticos (JSON o YAML), arma la Addenda " +
			"DSCargaRemisionProv y la inserta antes del cierre de Comprobante.\n" +
			"Sin --output el archivo se llama factura-{serie}{folio}.xml.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.datos, "datos", "d", "", "archivo con los datos logísticos (JSON o YAML)")
	cmd.Flags().StringVar(&f.format, "format", "", "formato de --datos: json o yaml (por defecto se detecta)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "archivo de salida; '-' para stdout")
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "genera además la lista de empaque en este archivo PDF")
	cmd.Flags().BoolVar(&f.addendaOnly, "addenda-only", false, "escribe solo el bloque cfdi:Addenda")
	_ = cmd.MarkFlagRequired("datos")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, cfdiPath string, f generateFlags) error {
	xmlText, charset, err := readCFDI(cmd, cfdiPath)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(f.datos)
	if err != nil {
		return fmt.Errorf("leer datos logísticos: %w", err)
	}
	format := f.format
	if format == "" {
		format = formatFromExt(f.datos)
	}
	req, err := dto.DecodeAddendaRequest(raw, format)
	if err != nil {
		return err
	}

	res, err := a.useCase(f.pdf != "").GenerateAddenda(cmd.Context(), xmlText, req.ToEntity())
	if err != nil {
		return err
	}

	content := res.XML
	if f.addendaOnly {
		content = res.Addenda
	}
	encoded, err := infracfdi.EncodeDocument(content, charset)
	if err != nil {
		return err
	}

	output := f.output
	if output == "" {
		output = res.FileName
	}
	if output == stdio {
		_, err := cmd.OutOrStdout().Write(encoded)
		if err == nil && f.pdf != "" {
			err = os.WriteFile(f.pdf, res.PackingList, 0o644)
		}
		return err
	}
	if err := os.WriteFile(output, encoded, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", output, err)
	}
	if f.pdf != "" {
		if err := os.WriteFile(f.pdf, res.PackingList, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", f.pdf, err)
		}
	}

	return writeJSON(cmd.OutOrStdout(), dto.GenerateSummary{
		FileName:            output,
		UUID:                res.Comprobante.UUID,
		Folio:               res.Comprobante.Serie + "-" + res.Comprobante.Folio,
		Total:               res.Comprobante.Total,
		Proveedor:           req.Proveedor,
		CantidadTarimas:     len(req.Tarimas),
		CantidadTotalBultos: res.Derived.CantidadTotalBultos,
		PackingList:         f.pdf,
	})
}

// readCFDI lee el CFDI (archivo o stdin) y lo decodifica a UTF-8.
// Devuelve también el charset declarado para escribir la salida igual.
func readCFDI(cmd *cobra.Command, path string) (string, string, error) {
	var (
		raw []byte
		err error
	)
	if path == stdio {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", "", fmt.Errorf("leer CFDI: %w", err)
	}
	return infracfdi.DecodeDocument(raw)
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return dto.FormatJSON
	case ".yaml", ".yml":
		return dto.FormatYAML
	default:
		return ""
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
