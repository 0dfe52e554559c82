package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// AuthMode define de dónde salen las iniciales del voluntario.
type AuthMode string

const (
	// AuthModeDev: header X-Volunteer-Initials, sin verificación.
	AuthModeDev AuthMode = "dev"
	// AuthModeBackend: Bearer token verificado contra el backend hosteado.
	AuthModeBackend AuthMode = "backend"
)

// Config agrupa la configuración del servicio leída del entorno (y .env opcional).
type Config struct {
	AppEnv  string
	AppName string
	Port    string

	LogLevel  string
	LogFormat string

	// Storage: DB_DSN (Postgres) tiene prioridad sobre BACKEND_URL (REST hosteado).
	// Si no hay ninguno, todo queda in-memory.
	DatabaseURL    string
	MigrateOnStart bool
	BackendURL     string
	BackendAPIKey  string

	RedisURL              string
	RealtimeChannelPrefix string

	ClinicTimeZone string
	Location       *time.Location

	CORSAllowedOrigins []string
	ItemsFile          string
	AuthMode           AuthMode
	MetricsNamespace   string
}

// Load lee variables de entorno (y .env si existe).
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:                valueOrDefault(k.String("APP_ENV"), "development"),
		AppName:               valueOrDefault(k.String("APP_NAME"), "clinic-frontdesk"),
		Port:                  valueOrDefault(k.String("PORT"), "8080"),
		LogLevel:              valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:             valueOrDefault(k.String("LOG_FORMAT"), "text"),
		DatabaseURL:           strings.TrimSpace(k.String("DB_DSN")),
		MigrateOnStart:        parseBool(k.String("DB_MIGRATE")),
		BackendURL:            strings.TrimSpace(k.String("BACKEND_URL")),
		BackendAPIKey:         strings.TrimSpace(k.String("BACKEND_API_KEY")),
		RedisURL:              strings.TrimSpace(k.String("REDIS_URL")),
		RealtimeChannelPrefix: valueOrDefault(k.String("REALTIME_CHANNEL_PREFIX"), "realtime:public"),
		ClinicTimeZone:        valueOrDefault(k.String("CLINIC_TIMEZONE"), "America/Chicago"),
		CORSAllowedOrigins:    splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		ItemsFile:             strings.TrimSpace(k.String("ITEMS_FILE")),
		AuthMode:              AuthMode(strings.ToLower(valueOrDefault(k.String("AUTH_MODE"), string(AuthModeDev)))),
		MetricsNamespace:      valueOrDefault(k.String("METRICS_NAMESPACE"), "clinic"),
	}

	loc, err := time.LoadLocation(cfg.ClinicTimeZone)
	if err != nil {
		return nil, fmt.Errorf("CLINIC_TIMEZONE %q: %w", cfg.ClinicTimeZone, err)
	}
	cfg.Location = loc

	switch cfg.AuthMode {
	case AuthModeDev:
	case AuthModeBackend:
		if cfg.BackendURL == "" || cfg.BackendAPIKey == "" {
			return nil, fmt.Errorf("AUTH_MODE=backend requires BACKEND_URL and BACKEND_API_KEY")
		}
	default:
		return nil, fmt.Errorf("AUTH_MODE must be dev or backend, got %q", cfg.AuthMode)
	}

	if cfg.BackendURL != "" && cfg.BackendAPIKey == "" {
		return nil, fmt.Errorf("BACKEND_URL requires BACKEND_API_KEY")
	}

	return cfg, nil
}

// HTTPAddr devuelve la dirección de escucha del server.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// LoadForTests setea env temporalmente, carga y restaura.
func LoadForTests(vars map[string]string) (*Config, error) {
	original := make(map[string]*string, len(vars))
	for key, value := range vars {
		if prev, ok := os.LookupEnv(key); ok {
			p := prev
			original[key] = &p
		} else {
			original[key] = nil
		}
		if value == "" {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, value)
		}
	}
	defer func() {
		for key, prev := range original {
			if prev == nil {
				_ = os.Unsetenv(key)
			} else {
				_ = os.Setenv(key, *prev)
			}
		}
	}()
	return Load()
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
