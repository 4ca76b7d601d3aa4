package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, code int, msg string, data any) {
	raw, _ := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Envelope{Code: code, Msg: msg, Data: raw})
}

func newClient(t *testing.T, srv *httptest.Server, p Profile) *APIClient {
	t.Helper()
	p.Endpoint = srv.URL
	if p.Name == "" {
		p.Name = "test"
	}
	c, err := NewAPIClient(NewProfiles(&p), &ClientConfig{})
	require.NoError(t, err)
	return c
}

func TestAPIClientLogin(t *testing.T) {
	t.Run("Should log in and send the token", func(t *testing.T) {
		var seen atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case loginPath:
				var req LoginRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "admin@example.com", req.Email)
				writeEnvelope(w, 200, "", LoginResponse{Token: "tok"})
			default:
				seen.Store(r.Header.Get("Authorization"))
				writeEnvelope(w, 200, "", map[string]int{"total": 3})
			}
		}))
		defer srv.Close()

		c := newClient(t, srv, Profile{Email: "admin@example.com", Password: "pwd"})
		require.False(t, c.ConnectionOK())
		require.NoError(t, c.Connect(context.Background()))
		assert.True(t, c.ConnectionOK())

		var out struct {
			Total int `json:"total"`
		}
		require.NoError(t, c.Get(context.Background(), "/v1/admin/user/list", map[string]string{"page": "1"}, &out))
		assert.Equal(t, 3, out.Total)
		assert.Equal(t, "tok", seen.Load())
	})

	t.Run("Should retry transient login failures", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			writeEnvelope(w, 200, "", LoginResponse{Token: "tok"})
		}))
		defer srv.Close()

		c := newClient(t, srv, Profile{Email: "a@b.c", Password: "pwd"})
		token, err := c.Login(context.Background(), "a@b.c", "pwd")

		require.NoError(t, err)
		assert.Equal(t, "tok", token)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("Should cap login attempts on persistent failures", func(t *testing.T) {
		saved := loginBaseDelay
		loginBaseDelay = time.Millisecond
		t.Cleanup(func() { loginBaseDelay = saved })
		var hits, calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != loginPath {
				calls.Add(1)
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := newClient(t, srv, Profile{Email: "a@b.c", Password: "pwd"})
		_, err := c.Login(context.Background(), "a@b.c", "pwd")

		require.Error(t, err)
		assert.Equal(t, int32(loginRetries+1), hits.Load())

		c.setToken("tok")
		assert.Error(t, c.Get(context.Background(), "/v1/admin/user/list", nil, nil))
		assert.Equal(t, int32(httpRetries+1), calls.Load())
	})

	t.Run("Should not retry rejected credentials", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			writeEnvelope(w, 40002, "wrong password", nil)
		}))
		defer srv.Close()

		c := newClient(t, srv, Profile{Email: "a@b.c", Password: "bad"})
		err := c.Connect(context.Background())

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 40002, apiErr.Code)
		assert.Equal(t, int32(1), hits.Load())
		assert.False(t, c.ConnectionOK())
	})

	t.Run("Should refuse to connect without credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		c := newClient(t, srv, Profile{})

		assert.ErrorIs(t, c.Connect(context.Background()), ErrNoConnection)
	})
}

func TestAPIClientCalls(t *testing.T) {
	t.Run("Should surface envelope errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeEnvelope(w, 400, "bad request", nil)
		}))
		defer srv.Close()

		c := newClient(t, srv, Profile{Token: "tok"})
		err := c.Put(context.Background(), "/v1/admin/announcement/", map[string]int{"id": 1}, nil)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "ppanel error 400: bad request", apiErr.Error())
		assert.False(t, apiErr.Temporary())
	})

	t.Run("Should log in again on expired sessions", func(t *testing.T) {
		var logins atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == loginPath {
				logins.Add(1)
				writeEnvelope(w, 200, "", LoginResponse{Token: "fresh"})
				return
			}
			if r.Header.Get("Authorization") != "fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				writeEnvelope(w, 401, "token expired", nil)
				return
			}
			writeEnvelope(w, 200, "", nil)
		}))
		defer srv.Close()

		c := newClient(t, srv, Profile{Token: "stale", Email: "a@b.c", Password: "pwd"})
		err := c.Delete(context.Background(), "/v1/admin/user/", map[string]int{"id": 1}, nil)

		require.NoError(t, err)
		assert.Equal(t, int32(1), logins.Load())
	})

	t.Run("Should report unauthorized without credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeEnvelope(w, 401, "token expired", nil)
		}))
		defer srv.Close()

		c := newClient(t, srv, Profile{Token: "stale"})
		err := c.Get(context.Background(), "/v1/admin/user/list", nil, nil)

		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.False(t, c.ConnectionOK())
	})

	t.Run("Should switch profiles", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeEnvelope(w, 200, "", LoginResponse{Token: "tok"})
		}))
		defer srv.Close()

		pp := NewProfiles(
			&Profile{Name: "a", Endpoint: srv.URL, Token: "x"},
			&Profile{Name: "b", Endpoint: srv.URL, Email: "a@b.c", Password: "pwd"},
			&Profile{Name: "c", Endpoint: srv.URL},
		)
		c, err := NewAPIClient(pp, &ClientConfig{})
		require.NoError(t, err)

		require.NoError(t, c.SwitchProfile(context.Background(), "b"))
		assert.Equal(t, "b", c.ActiveProfile())
		assert.Equal(t, []string{"a", "b", "c"}, c.ProfileNames())

		assert.ErrorIs(t, c.SwitchProfile(context.Background(), "c"), ErrNoConnection)
		assert.Equal(t, "b", c.ActiveProfile())
		assert.ErrorIs(t, c.SwitchProfile(context.Background(), "zz"), ErrNoProfile)
	})
}
