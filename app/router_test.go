package app_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitwise74/reelhub-api/app"
	"bitwise74/reelhub-api/config"
	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	deps   *internal.Deps
	cfg    *config.Config
}

// newTestServer builds the full router on a fresh SQLite store. tmdb may
// be nil when the test doesn't touch the proxy routes.
func newTestServer(t *testing.T, tmdb http.HandlerFunc, opts ...func(*config.Config)) *testServer {
	t.Helper()

	if tmdb == nil {
		tmdb = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}

	upstream := httptest.NewServer(tmdb)
	t.Cleanup(upstream.Close)

	cfg := testutil.NewConfig(upstream.URL)
	for _, o := range opts {
		o(cfg)
	}

	s, _ := testutil.NewStore(t)

	d, err := app.NewDeps(cfg, s)
	require.NoError(t, err)

	return &testServer{
		t:      t,
		router: app.NewRouter(cfg, d),
		deps:   d,
		cfg:    cfg,
	}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func (s *testServer) register(username, email, password string) {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	return decode[map[string]string](s.t, w)["token"]
}

// signup registers and logs in a user, returning its token
func (s *testServer) signup(username string) string {
	s.t.Helper()

	email := username + "@example.com"
	s.register(username, email, "Pw1!")
	return s.login(email, "Pw1!")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["error"].(string)
}
