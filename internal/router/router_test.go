package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinic-frontdesk/internal/platform/metrics"
	"clinic-frontdesk/internal/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Context:  ctx,
		Metrics:  metrics.New("clinic"),
		Location: time.UTC,
	}))
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts
}

func TestHTTP_EndToEnd_RegisterEditAndDashboard(t *testing.T) {
	ts := newServer(t)
	today := time.Now().UTC().Format("2006-01-02")

	// 1) Catálogo
	{
		st, body := doReq(t, ts.URL, "GET", "/items", "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"Rabies"`) {
			t.Fatalf("expected catalog, got %d body=%s", st, string(body))
		}
	}

	// 2) Alta con iniciales por header (modo dev)
	createRegistration(t, ts.URL, "AB", map[string]any{
		"car_number": "12",
		"num_dogs":   2,
		"items":      []map[string]any{{"name": "Rabies", "quantity": 2}},
	})

	// 3) Mismo auto el mismo día => 409 con mensaje para el voluntario
	{
		st, body := doReq(t, ts.URL, "POST", "/registrations", "AB", map[string]any{"car_number": "12"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "Car number for today already exists") {
			t.Fatalf("unexpected duplicate alert: %s", string(body))
		}
	}

	// 4) Segundo auto pendiente
	createRegistration(t, ts.URL, "AB", map[string]any{
		"car_number": "3",
		"num_cats":   1,
		"items":      []map[string]any{{"name": "Distemper", "quantity": 1}},
	})

	// 5) Listado en orden natural
	{
		st, body := doReq(t, ts.URL, "GET", "/registrations?date="+today, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var resp struct {
			Registrations []struct {
				CarNumber string `json:"car_number"`
			} `json:"registrations"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Registrations) != 2 || resp.Registrations[0].CarNumber != "3" {
			t.Fatalf("unexpected list: %s", string(body))
		}
	}

	// 5b) Alta de otro día: no entra en el dashboard en vivo de hoy
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	createRegistration(t, ts.URL, "AB", map[string]any{
		"car_number": "5",
		"date":       yesterday,
		"num_dogs":   3,
		"items":      []map[string]any{{"name": "Rabies", "quantity": 3}},
	})

	// 6) Edición: marca pagado el 12
	{
		st, body := doReq(t, ts.URL, "PUT", "/registrations/12", "CD", map[string]any{
			"num_dogs": 2,
			"items":    []map[string]any{{"name": "Rabies", "quantity": 2}},
			"credit":   true,
			"paid":     true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
	}

	// 7) Historial: alta + edición
	{
		st, body := doReq(t, ts.URL, "GET", "/registrations/12/history", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var hist []struct {
			Summary           string `json:"summary"`
			VolunteerInitials string `json:"volunteer_initials"`
		}
		_ = json.Unmarshal(body, &hist)
		if len(hist) != 2 || hist[0].Summary != "registration created" || hist[1].VolunteerInitials != "CD" {
			t.Fatalf("unexpected history: %s", string(body))
		}
		if !strings.Contains(hist[1].Summary, "paid: false → true") {
			t.Fatalf("expected paid change in summary, got %q", hist[1].Summary)
		}
	}

	// 8) Dashboard en vivo converge por realtime
	waitFor(t, func() bool {
		st, body := doReq(t, ts.URL, "GET", "/dashboard", "", nil)
		if st != http.StatusOK {
			return false
		}
		var s struct {
			Paid   map[string]int `json:"paid"`
			Unpaid map[string]int `json:"unpaid"`
		}
		if err := json.Unmarshal(body, &s); err != nil {
			return false
		}
		return s.Paid["total_dogs"] == 2 && s.Paid["total_rabies"] == 2 &&
			s.Unpaid["total_cats"] == 1 && s.Unpaid["total_distemper"] == 1
	})
	{
		_, body := doReq(t, ts.URL, "GET", "/dashboard", "", nil)
		var s struct {
			Source string         `json:"source"`
			Date   string         `json:"date"`
			Unpaid map[string]int `json:"unpaid"`
		}
		if err := json.Unmarshal(body, &s); err != nil {
			t.Fatalf("decode dashboard: %v", err)
		}
		if s.Date != today || s.Unpaid["total_dogs"] != 0 || s.Unpaid["total_rabies"] != 0 {
			t.Fatalf("other day leaked into live dashboard: %s", string(body))
		}
	}

	// 9) Dashboard por fecha (storage)
	{
		st, body := doReq(t, ts.URL, "GET", "/dashboard?date="+today, "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"source":"storage"`) {
			t.Fatalf("expected storage dashboard, got %d body=%s", st, string(body))
		}
	}

	// 10) Métricas
	{
		st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `clinic_registration_writes_total{op="create",result="duplicate"} 1`) {
			t.Fatalf("expected metrics, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_WritesRequireInitials(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/registrations", "", map[string]any{"car_number": "1"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without initials, got %d body=%s", st, string(body))
	}

	// Iniciales en el body alcanzan
	createRegistration(t, ts.URL, "", map[string]any{"car_number": "1", "volunteer_initials": "ZZ"})
}

func TestHTTP_Payment(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/payments", "AB", map[string]any{
		"car_number": "40",
		"num_dogs":   1,
		"items":      map[string]int{"rabies": 1},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without payment method, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/payments", "AB", map[string]any{
		"car_number": "40",
		"num_dogs":   1,
		"items":      map[string]int{"rabies": 1, "bogus": 1},
		"cash":       true,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown item key, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/payments", "AB", map[string]any{
		"car_number": "40",
		"num_dogs":   1,
		"items":      map[string]int{"rabies": 1},
		"donation":   5,
		"cash":       true,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 payment, got %d body=%s", st, string(body))
	}
	var reg struct {
		Paid  bool    `json:"paid"`
		Total float64 `json:"total"`
	}
	_ = json.Unmarshal(body, &reg)
	if !reg.Paid || reg.Total != 20 {
		t.Fatalf("unexpected payment: %s", string(body))
	}
}

func createRegistration(t *testing.T, baseURL, initials string, payload map[string]any) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/registrations", initials, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create registration, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create registration: missing id body=%s", string(body))
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func doReq(t *testing.T, baseURL, method, path, initials string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if initials != "" {
		req.Header.Set("X-Volunteer-Initials", initials)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
