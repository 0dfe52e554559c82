package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                 "",
		"DB_DSN":               "",
		"BACKEND_URL":          "",
		"BACKEND_API_KEY":      "",
		"AUTH_MODE":            "",
		"CLINIC_TIMEZONE":      "",
		"CORS_ALLOWED_ORIGINS": "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, AuthModeDev, cfg.AuthMode)
	require.Equal(t, "America/Chicago", cfg.Location.String())
	require.Nil(t, cfg.CORSAllowedOrigins)
}

func TestLoad_ParsesOriginsAndPort(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                 ":9090",
		"CORS_ALLOWED_ORIGINS": "http://localhost:3000, https://clinic.example.org ,",
		"CLINIC_TIMEZONE":      "UTC",
		"AUTH_MODE":            "",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, []string{"http://localhost:3000", "https://clinic.example.org"}, cfg.CORSAllowedOrigins)
}

func TestLoad_BackendAuthNeedsBackend(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"AUTH_MODE":       "backend",
		"BACKEND_URL":     "",
		"BACKEND_API_KEY": "",
		"CLINIC_TIMEZONE": "UTC",
	})
	require.Error(t, err)
}

func TestLoad_RejectsBadTimezone(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"CLINIC_TIMEZONE": "Mars/Olympus",
		"AUTH_MODE":       "",
	})
	require.Error(t, err)
}
