package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoJSON_HeadersAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "k1", r.Header.Get("apikey"))
		require.Equal(t, "override", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL+"/", time.Second)
	require.NoError(t, err)
	c.Headers = map[string]string{"apikey": "k1", "Accept": "application/json"}

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "rest/v1/x", map[string]string{"Accept": "override"}, nil, &out))
	require.True(t, out.OK)
}

func TestDoJSON_ErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint"}`))
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, time.Second)
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodPost, "/rest/v1/x", nil, map[string]string{"a": "b"}, nil)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusConflict, he.StatusCode)
	require.Equal(t, "23505", he.Code)
	require.Contains(t, he.Message, "duplicate")
}

func TestDoJSON_RelativePathNeedsBaseURL(t *testing.T) {
	err := New(0).DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNewWithTransport_UsesInjectedTransport(t *testing.T) {
	var gotURL string
	c := NewWithTransport(0, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"id":"u1"}`)),
			Request:    r,
		}, nil
	}))
	require.Equal(t, DefaultTimeout, c.HTTP.Timeout)

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "http://backend.test/auth/v1/user", nil, nil, &out))
	require.Equal(t, "http://backend.test/auth/v1/user", gotURL)
	require.Equal(t, "u1", out.ID)
}
