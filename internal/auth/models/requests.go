package models

import (
	s "qrgate/pkg/string"
)

// TokenRequest represents a request to exchange a credential pair for an access token.
type TokenRequest struct {
	Username string `json:"username" validate:"required,notblank,max=255"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims surrounding whitespace from the username. The password is
// left untouched: whitespace may be significant.
func (r *TokenRequest) Normalize() {
	s.TrimStrings(&r.Username)
}
