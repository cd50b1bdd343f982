package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"qrgate/internal/auth"
	"qrgate/internal/auth/models"
	"qrgate/internal/platform/metrics"
	"qrgate/internal/platform/middleware"
	"qrgate/internal/token"
	dErrors "qrgate/pkg/domain-errors"
	"qrgate/pkg/platform/httputil"
	"qrgate/pkg/validation"
)

// Handler handles the token issuance and introspection endpoints. These
// routes are mounted outside the request gate: issuing a token obviously
// cannot require one, and introspection carries its own token inline.
type Handler struct {
	creds   *auth.Credentials
	tokens  *token.Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new auth Handler.
func New(creds *auth.Credentials, tokens *token.Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		creds:   creds,
		tokens:  tokens,
		logger:  logger,
		metrics: m,
	}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/token", h.HandleToken)
	r.Post("/auth/validate", h.HandleValidate)
}

// HandleToken implements POST /auth/token.
// Validates the credential pair against the configured set and issues a
// signed access token carrying the default scopes.
//
// Input: { "username": "admin", "password": "..." }
// Output: { "access_token": "...", "token_type": "bearer", "expires_in": 1800 }
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if h.metrics != nil {
		h.metrics.TokenRequests.Inc()
	}

	req, ok := httputil.DecodeJSON[models.TokenRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	req.Normalize()
	if err := validation.Validate(req); err != nil {
		h.logger.WarnContext(ctx, "invalid token request",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	if !h.creds.Check(req.Username, req.Password) {
		if h.metrics != nil {
			h.metrics.AuthFailures.Inc()
		}
		h.logger.WarnContext(ctx, "token issuance rejected - bad credentials",
			"username", req.Username,
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid username or password"))
		return
	}

	signed, err := h.tokens.Issue(req.Username, auth.DefaultScopes)
	if err != nil {
		h.logger.ErrorContext(ctx, "token issuance failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "Failed to generate access token"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
	})
}

// HandleValidate implements POST /auth/validate.
// Introspects the bearer token from the Authorization header. This endpoint
// never fails: malformed or expired tokens yield {"valid": false}.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	claims, err := h.tokens.Verify(raw)
	if err != nil {
		httputil.WriteJSON(w, http.StatusOK, models.ValidateResponse{
			Valid: false,
			Error: "Invalid or expired token",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.ValidateResponse{
		Valid:     true,
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
}
