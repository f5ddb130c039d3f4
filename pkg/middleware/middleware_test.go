package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/pkg/apiErrors"
)

const (
	testSecret        = "super-secret-jwt-token-with-at-least-32-characters"
	roleAuthenticated = "authenticated"
)

func signToken(t *testing.T, secret string, role string, expiresAt time.Time) string {
	t.Helper()

	claims := UserClaims{
		Email: "analista@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

type capture struct {
	token  string
	claims *UserClaims
	called bool
}

func (c *capture) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.token, _ = backend.AccessToken(r.Context())
		c.claims, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	valid := signToken(t, testSecret, roleAuthenticated, time.Now().Add(time.Hour))
	expired := signToken(t, testSecret, roleAuthenticated, time.Now().Add(-time.Hour))
	otherSecret := signToken(t, "another-secret-another-secret-another", roleAuthenticated, time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
		wantCalled bool
		wantToken  string
	}{
		{name: "Sem token segue anônimo", secret: testSecret, wantStatus: http.StatusOK, wantCalled: true},
		{name: "Token válido", secret: testSecret, header: "Bearer " + valid, wantStatus: http.StatusOK, wantCalled: true, wantToken: valid},
		{name: "Sem prefixo Bearer", secret: testSecret, header: valid, wantStatus: http.StatusUnauthorized},
		{name: "Token expirado", secret: testSecret, header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "Assinatura de outro segredo", secret: testSecret, header: "Bearer " + otherSecret, wantStatus: http.StatusUnauthorized},
		{name: "Sem segredo aceita sem verificar", secret: "", header: "Bearer " + otherSecret, wantStatus: http.StatusOK, wantCalled: true, wantToken: otherSecret},
		{name: "Sem segredo rejeita token malformado", secret: "", header: "Bearer abc", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &capture{}
			req := httptest.NewRequest(http.MethodGet, "/v1/meta-ad-accounts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(tt.secret)(c.handler()).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, c.called)
			assert.Equal(t, tt.wantToken, c.token)
			if tt.wantToken != "" {
				require.NotNil(t, c.claims)
				assert.Equal(t, "user-1", c.claims.Subject)
				assert.Equal(t, tt.secret != "", c.claims.Verified)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredCode(t *testing.T) {
	expired := signToken(t, testSecret, roleAuthenticated, time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()

	AuthMiddleware(testSecret)((&capture{}).handler()).ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), apiErrors.ErrExpiredToken)
}

func TestServiceRoleOnly(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		anonymous  bool
		wantStatus int
	}{
		{name: "Token de serviço", role: RoleServiceRole, wantStatus: http.StatusOK},
		{name: "Usuário comum", role: roleAuthenticated, wantStatus: http.StatusForbidden},
		{name: "Anônimo", anonymous: true, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/cache-sweep/run", nil)
			if !tt.anonymous {
				req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, tt.role, time.Now().Add(time.Hour)))
			}
			w := httptest.NewRecorder()

			chain := AuthMiddleware(testSecret)(ServiceRoleOnly()((&capture{}).handler()))
			chain.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestServiceRoleOnly_RequiresVerifiedToken(t *testing.T) {
	claims := UserClaims{
		Role:             RoleServiceRole,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "forjado"},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name       string
		secret     string
		token      string
		wantStatus int
	}{
		{name: "Token sem assinatura sem segredo", secret: "", token: unsigned, wantStatus: http.StatusForbidden},
		{name: "Token assinado sem segredo configurado", secret: "", token: signToken(t, "qualquer-segredo", RoleServiceRole, time.Now().Add(time.Hour)), wantStatus: http.StatusForbidden},
		{name: "Token sem assinatura com segredo", secret: testSecret, token: unsigned, wantStatus: http.StatusUnauthorized},
		{name: "Token de serviço verificado", secret: testSecret, token: signToken(t, testSecret, RoleServiceRole, time.Now().Add(time.Hour)), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/cache-sweep/run", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()

			c := &capture{}
			AuthMiddleware(tt.secret)(ServiceRoleOnly()(c.handler())).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, c.called)
		})
	}
}

func TestCors(t *testing.T) {
	allowed := []string{"http://localhost:3000"}

	req := httptest.NewRequest(http.MethodOptions, "/v1/contracted-services", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	c := &capture{}
	Cors(allowed)(c.handler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, c.called)

	req = httptest.NewRequest(http.MethodGet, "/v1/contracted-services", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()

	Cors(allowed)(c.handler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, c.called)
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	incoming := "8f14e45f-ceea-467f-a0e6-ab7fdc1c2b6b"

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w := httptest.NewRecorder()

	LoggingMiddleware()((&capture{}).handler()).ServeHTTP(w, req)

	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	LogPanicMiddleware()(panicking).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), apiErrors.ErrInternalServer)
}
