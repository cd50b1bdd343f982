package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TokenVerifier defines the interface for verifying bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents the claims the gate expects from the verifier.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
	Scopes    []string
}

// Context keys for storing authenticated request information
type contextKeySubject struct{}
type contextKeyTokenExpiry struct{}
type contextKeyScopes struct{}

// GetSubject retrieves the authenticated subject from the context.
func GetSubject(ctx context.Context) string {
	subject, ok := ctx.Value(contextKeySubject{}).(string)
	if !ok {
		return ""
	}
	return subject
}

// GetTokenExpiry retrieves the token expiry from the context.
func GetTokenExpiry(ctx context.Context) time.Time {
	expiry, ok := ctx.Value(contextKeyTokenExpiry{}).(time.Time)
	if !ok {
		return time.Time{}
	}
	return expiry
}

// GetScopes retrieves the token scopes from the context.
func GetScopes(ctx context.Context) []string {
	scopes, ok := ctx.Value(contextKeyScopes{}).([]string)
	if !ok {
		return nil
	}
	return scopes
}

// RequireAuth guards protected routes with bearer token verification.
// Health, metrics, and token issuance routes are mounted outside this
// middleware so they never pass through it.
//
// Every rejection is a 401 with the authentication_error category; the
// message distinguishes missing and malformed headers from failed
// verification, but verification failures themselves stay uniform so the
// response does not reveal which token check failed.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
					"path", r.URL.Path,
				)
				writeUnauthorized(w, "Missing authentication token")
				return
			}

			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - malformed authorization header",
					"request_id", requestID,
					"path", r.URL.Path,
				)
				writeUnauthorized(w, "Invalid authentication token format. Expected: 'Bearer <token>'")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
					"path", r.URL.Path,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, contextKeySubject{}, claims.Subject)
			ctx = context.WithValue(ctx, contextKeyTokenExpiry{}, claims.ExpiresAt)
			ctx = context.WithValue(ctx, contextKeyScopes{}, claims.Scopes)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope rejects authenticated requests whose token does not carry
// the required scope. It must be mounted after RequireAuth.
func RequireScope(scope string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			for _, s := range GetScopes(ctx) {
				if s == scope {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.WarnContext(ctx, "unauthorized access - missing scope",
				"required_scope", scope,
				"subject", GetSubject(ctx),
				"request_id", GetRequestID(ctx),
			)
			writeUnauthorized(w, "Token does not carry the required scope")
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication_error","error_description":"` + description + `"}`))
}
