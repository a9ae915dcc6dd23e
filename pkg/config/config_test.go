package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/addenda-cfdi/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "addenda-cfdi", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "1", cfg.Addenda.TipoMoneda)
	assert.Equal(t, "1", cfg.Addenda.TipoBulto)
	assert.Equal(t, 4, cfg.Addenda.Indent)
	assert.True(t, cfg.Addenda.VerifyOutput)
	assert.Equal(t, "cfdi", cfg.Addenda.NamespacePrefix)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ADDENDA_TIPO_MONEDA", "2")
	t.Setenv("ADDENDA_INDENT", "-1")
	t.Setenv("ADDENDA_VERIFY_OUTPUT", "false")
	t.Setenv("ADDENDA_NAMESPACE_PREFIX", "x")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "2", cfg.Addenda.TipoMoneda)
	assert.Equal(t, -1, cfg.Addenda.Indent)
	assert.False(t, cfg.Addenda.VerifyOutput)
	assert.Equal(t, "x", cfg.Addenda.NamespacePrefix)
}

func TestLoad_ValoresInvalidosUsanDefecto(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ADDENDA_INDENT", "cuatro")
	t.Setenv("ADDENDA_VERIFY_OUTPUT", "quizá")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Addenda.Indent)
	assert.True(t, cfg.Addenda.VerifyOutput)
}
