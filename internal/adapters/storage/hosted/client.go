package hosted

import (
	"net/url"
	"strings"
	"time"

	"clinic-frontdesk/internal/platform/httpclient"
)

const (
	restPrefix = "/rest/v1/"

	// Accept para pedir una sola fila; 0 filas => 406 con code PGRST116.
	acceptSingle = "application/vnd.pgrst.object+json"
	codeNoRows   = "PGRST116"
	codeUnique   = "23505"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient arma el httpclient con las headers de API key que espera el backend.
func NewClient(cfg Config) (*httpclient.Client, error) {
	c, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(cfg.APIKey)
	c.Headers = map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	}
	return c, nil
}

// tablePath arma "/rest/v1/<table>?<query>" con filtros estilo PostgREST (col=eq.valor).
func tablePath(table string, q url.Values) string {
	p := restPrefix + table
	if len(q) == 0 {
		return p
	}
	return p + "?" + q.Encode()
}

func eq(v string) string { return "eq." + v }
