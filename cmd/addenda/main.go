package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appaddenda "github.com/jhoicas/addenda-cfdi/internal/application/addenda"
	infraaddenda "github.com/jhoicas/addenda-cfdi/internal/infrastructure/addenda"
	infracfdi "github.com/jhoicas/addenda-cfdi/internal/infrastructure/cfdi"
	infrapdf "github.com/jhoicas/addenda-cfdi/internal/infrastructure/pdf"
	"github.com/jhoicas/addenda-cfdi/pkg/config"
	"github.com/jhoicas/addenda-cfdi/pkg/logger"
)

// app dependencias compartidas por los subcomandos.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{}
	root := newRootCmd(a)
	if err := root.ExecuteContext(ctx); err != nil {
		if a.log == nil {
			a.log = logger.New(logger.Config{Env: "production"})
		}
		stop()
		a.log.Fatal().Err(err).Msg("addenda")
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "addenda",
		Short:         "Genera la Addenda Soriana (DSCargaRemisionProv) para un CFDI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{
				Env:   cfg.App.Env,
				Level: cfg.Log.Level,
				Out:   cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.AddCommand(newParseCmd(a), newGenerateCmd(a))
	return root
}

// useCase arma el caso de uso con la configuración cargada.
func (a *app) useCase(withPDF bool) *appaddenda.AddendaUseCase {
	generator := infraaddenda.NewGenerator(infraaddenda.Config{
		TipoMoneda: a.cfg.Addenda.TipoMoneda,
		TipoBulto:  a.cfg.Addenda.TipoBulto,
		Indent:     a.cfg.Addenda.Indent,
		Prefix:     a.cfg.Addenda.NamespacePrefix,
	})

	var verify appaddenda.InjectionVerifier
	if a.cfg.Addenda.VerifyOutput {
		verify = infraaddenda.VerifyInjection
	}
	var packing appaddenda.PackingListGenerator
	if withPDF {
		packing = infrapdf.NewPackingListGenerator()
	}
	return appaddenda.NewAddendaUseCase(infracfdi.NewParser(), generator, verify, packing, a.log)
}
