package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gestion-correos/internal/platform/logger"
	"gestion-correos/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthContext_DevHeaders(t *testing.T) {
	var got auth.Claims
	h := AuthContext(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetClaims(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "u-1")
	req.Header.Set("X-Debug-Role", "gestor, ROLE_REVISOR")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, []string{"ROLE_GESTOR", "ROLE_REVISOR"}, got.Roles)
}

func TestRequireRole(t *testing.T) {
	h := AuthContext(nil)(RequireRole("ROLE_ADMIN", "ROLE_AUDITOR")(okHandler()))

	cases := []struct {
		name   string
		user   string
		roles  string
		status int
	}{
		{"sin usuario", "", "", http.StatusUnauthorized},
		{"rol sin permiso", "u-1", "GESTOR", http.StatusForbidden},
		{"auditor", "u-2", "AUDITOR", http.StatusOK},
		{"admin", "u-3", "ROLE_ADMIN", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.user != "" {
				req.Header.Set("X-Debug-User-ID", tc.user)
				req.Header.Set("X-Debug-Role", tc.roles)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Handler(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Otra IP tiene su propio bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLog_IncluyeUsuarioDeAuthContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &buf})

	// mismo orden que el router: RequestID, RequestLog, AuthContext
	h := chimw.RequestID(RequestLog(log)(AuthContext(nil)(RequireAuth(okHandler()))))

	req := httptest.NewRequest(http.MethodGet, "/correos", nil)
	req.Header.Set("X-Debug-User-ID", "u-gestor")
	h.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/correos", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var ok, anon map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ok))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &anon))

	assert.Equal(t, "u-gestor", ok["user_id"])
	assert.EqualValues(t, 200, ok["status"])
	assert.NotEmpty(t, ok["request_id"])

	_, has := anon["user_id"]
	assert.False(t, has)
	assert.EqualValues(t, 401, anon["status"])
	assert.Equal(t, "warn", anon["level"])
}
