package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrgate/internal/auth"
	"qrgate/internal/auth/models"
	"qrgate/internal/platform/metrics"
	"qrgate/internal/token"
)

// promauto registers against the default registry, so the metrics value is
// shared across all tests in this package.
var testMetrics = metrics.New()

func newTestRouter(t *testing.T, ttl time.Duration) (chi.Router, *token.Service) {
	t.Helper()
	tokens, err := token.New("test-signing-key", "HS256", ttl)
	require.NoError(t, err)

	creds := auth.NewCredentials("admin", "secure_password_123", "")
	h := New(creds, tokens, slog.Default(), testMetrics)

	r := chi.NewRouter()
	h.Register(r)
	return r, tokens
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleToken_Success(t *testing.T) {
	r, tokens := newTestRouter(t, 30*time.Minute)

	rec := postJSON(t, r, "/auth/token", models.TokenRequest{
		Username: "admin",
		Password: "secure_password_123",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 1800, resp.ExpiresIn)

	claims, err := tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, auth.DefaultScopes, claims.Scopes)
}

func TestHandleToken_TrimsUsername(t *testing.T) {
	r, _ := newTestRouter(t, time.Minute)

	rec := postJSON(t, r, "/auth/token", models.TokenRequest{
		Username: "  admin  ",
		Password: "secure_password_123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleToken_BadCredentials(t *testing.T) {
	r, _ := newTestRouter(t, time.Minute)

	cases := []struct {
		name string
		req  models.TokenRequest
	}{
		{name: "wrong password", req: models.TokenRequest{Username: "admin", Password: "nope"}},
		{name: "unknown user", req: models.TokenRequest{Username: "root", Password: "secure_password_123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, r, "/auth/token", tc.req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "authentication_error")
			// Same message for both failure modes.
			assert.Contains(t, rec.Body.String(), "Invalid username or password")
		})
	}
}

func TestHandleToken_ValidationFailures(t *testing.T) {
	r, _ := newTestRouter(t, time.Minute)

	cases := []struct {
		name string
		req  models.TokenRequest
	}{
		{name: "missing username", req: models.TokenRequest{Password: "x"}},
		{name: "blank username", req: models.TokenRequest{Username: "   ", Password: "x"}},
		{name: "missing password", req: models.TokenRequest{Username: "admin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, r, "/auth/token", tc.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "validation_error")
		})
	}
}

func TestHandleToken_MalformedBody(t *testing.T) {
	r, _ := newTestRouter(t, time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleValidate(t *testing.T) {
	r, tokens := newTestRouter(t, time.Minute)

	t.Run("valid token", func(t *testing.T) {
		signed, err := tokens.Issue("admin", auth.DefaultScopes)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/validate", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.ValidateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Valid)
		assert.Equal(t, "admin", resp.UserID)
		assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
	})

	t.Run("invalid token still returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/validate", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.ValidateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Valid)
		assert.Empty(t, resp.UserID)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("missing header still returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/validate", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"valid":false`)
	})
}
