package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "qrgate/pkg/domain-errors"
)

// Claims represents the JWT claims carried by access tokens.
type Claims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation with an HMAC shared secret.
// It is stateless: tokens expire on their own and there is no revocation list.
type Service struct {
	signingKey []byte
	method     jwt.SigningMethod
	tokenTTL   time.Duration
}

// New creates a token Service for the given HMAC algorithm (HS256, HS384, HS512).
func New(signingKey string, algorithm string, tokenTTL time.Duration) (*Service, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported token algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token algorithm %q is not an HMAC method", algorithm)
	}
	return &Service{
		signingKey: []byte(signingKey),
		method:     method,
		tokenTTL:   tokenTTL,
	}, nil
}

// TTL reports the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.tokenTTL
}

// Issue signs a new access token for the subject carrying the given scopes.
// Expiry is now + the configured TTL.
func (s *Service) Issue(subject string, scopes []string) (string, error) {
	if subject == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "subject cannot be empty")
	}
	if len(scopes) == 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "scopes cannot be empty")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	now := time.Now()

	newToken := jwt.NewWithClaims(s.method, Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        hex.EncodeToString(b),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// errInvalidToken is the single error returned for every verification
// failure. Signature mismatch, malformed structure, wrong algorithm, and
// expiry all collapse into it so responses cannot be used as an oracle for
// which check failed.
var errInvalidToken = dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")

// Verify checks the token signature against the configured secret and
// algorithm, then the registered claims including expiry.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, errInvalidToken
	}
	if !parsed.Valid {
		return nil, errInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, errInvalidToken
	}
	return claims, nil
}

// HasScope reports whether the claims carry the required scope.
func HasScope(claims *Claims, required string) bool {
	if claims == nil {
		return false
	}
	return slices.Contains(claims.Scopes, required)
}
