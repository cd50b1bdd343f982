// Package auth holds the fixed credential set used for token issuance.
// There is no user database: one or a few username/password pairs are
// loaded from configuration at startup and stay immutable for the
// process lifetime.
package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// DefaultScopes are granted to every issued token.
var DefaultScopes = []string{"qr:generate"}

type credential struct {
	password string
	hash     string
}

// Credentials is an immutable credential set. When a bcrypt hash is
// configured for a user it takes precedence over the plaintext password.
type Credentials struct {
	users map[string]credential
}

// NewCredentials builds a single-user credential set.
func NewCredentials(username, password, passwordHash string) *Credentials {
	c := &Credentials{users: make(map[string]credential, 1)}
	c.add(username, password, passwordHash)
	return c
}

func (c *Credentials) add(username, password, passwordHash string) {
	if username == "" {
		return
	}
	c.users[username] = credential{password: password, hash: passwordHash}
}

// Check reports whether the supplied username/password pair matches a
// configured credential. Plaintext comparison is constant-time; hashed
// credentials go through bcrypt.
func (c *Credentials) Check(username, password string) bool {
	cred, ok := c.users[username]
	if !ok {
		// Burn a comparison anyway so unknown usernames cost the same.
		subtle.ConstantTimeCompare([]byte(password), []byte(password))
		return false
	}

	if cred.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cred.hash), []byte(password)) == nil
	}
	if cred.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cred.password), []byte(password)) == 1
}
