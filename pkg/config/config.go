package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	Addenda AddendaConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// AddendaConfig parámetros de la Addenda Soriana que no vienen del CFDI.
type AddendaConfig struct {
	TipoMoneda      string // Catálogo Soriana: 1 = pesos
	TipoBulto       string // Catálogo Soriana: 1 = cajas
	Indent          int    // Espacios de sangría del XML generado (-1 = una sola línea)
	VerifyOutput    bool   // Verificar por C14N que el CFDI no cambió fuera de la Addenda
	NamespacePrefix string // Prefijo para el fragmento suelto (--addenda-only)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, LOG_LEVEL, ADDENDA_TIPO_MONEDA, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "addenda-cfdi"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Addenda: AddendaConfig{
			TipoMoneda:      getString(v, "ADDENDA_TIPO_MONEDA", "1"),
			TipoBulto:       getString(v, "ADDENDA_TIPO_BULTO", "1"),
			Indent:          getInt(v, "ADDENDA_INDENT", 4),
			VerifyOutput:    getBool(v, "ADDENDA_VERIFY_OUTPUT", true),
			NamespacePrefix: getString(v, "ADDENDA_NAMESPACE_PREFIX", "cfdi"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
