package token

import (
	"qrgate/internal/platform/middleware"
)

// VerifierAdapter bridges the token Service to the middleware.TokenVerifier
// interface so the HTTP gate stays decoupled from JWT internals.
type VerifierAdapter struct {
	service *Service
}

func NewVerifierAdapter(service *Service) *VerifierAdapter {
	return &VerifierAdapter{service: service}
}

func (a *VerifierAdapter) Verify(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := a.service.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		Scopes:    claims.Scopes,
	}, nil
}
