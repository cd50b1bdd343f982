package qr

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	dErrors "qrgate/pkg/domain-errors"
)

// urlPattern checks the shape of URL-like payloads: scheme, then a dotted
// host with a TLD, localhost, or an IPv4 literal, an optional port, and an
// optional path or query.
var urlPattern = regexp.MustCompile(`(?i)^(?:https?|ftp)://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

var urlSchemes = []string{"http://", "https://", "ftp://"}

// Validator checks generation payloads before they reach the encoder. All
// checks are pure functions of the input; there is no I/O.
//
// The Validator is the single authoritative capacity check: the request
// model deliberately does not repeat it, so the two cannot diverge.
type Validator struct {
	maxDataLength int
}

// NewValidator creates a Validator with the given character cap. The cap is
// independent of any error-correction level capacity.
func NewValidator(maxDataLength int) *Validator {
	if maxDataLength <= 0 {
		maxDataLength = 2000
	}
	return &Validator{maxDataLength: maxDataLength}
}

// Validate rejects payloads that are empty, oversized, malformed URLs, not
// valid UTF-8, or beyond the capacity of the requested error-correction
// level.
func (v *Validator) Validate(data string, ecc ECCLevel) error {
	if strings.TrimSpace(data) == "" {
		return dErrors.New(dErrors.CodeValidation, "Data cannot be empty")
	}

	if utf8.RuneCountInString(data) > v.maxDataLength {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("Data exceeds maximum length of %d characters", v.maxDataLength))
	}

	for _, scheme := range urlSchemes {
		if strings.HasPrefix(data, scheme) {
			if !urlPattern.MatchString(data) {
				return dErrors.New(dErrors.CodeValidation, "Invalid URL format")
			}
			break
		}
	}

	if !utf8.ValidString(data) {
		return dErrors.New(dErrors.CodeValidation, "Data contains invalid characters")
	}

	limit := ecc.Capacity()
	if limit == 0 {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("invalid error correction %q, valid levels: L, M, Q, H", string(ecc)))
	}
	if size := len(data); size > limit {
		return dErrors.New(dErrors.CodeCapacityExceeded,
			fmt.Sprintf("Data too large for error correction level %s. Maximum: %d bytes, got: %d",
				string(ecc), limit, size))
	}

	return nil
}
