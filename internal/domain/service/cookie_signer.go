package service

import "github.com/pkg/errors"

// ErrCookieSignature is returned when a signed cookie value fails
// verification or is structurally malformed.
var ErrCookieSignature = errors.New("cookie signature mismatch")

// CookieSigner signs and verifies cookie values with a server-side
// secret distinct from the JWT secrets, so token cookies cannot be
// forged or swapped client-side without detection.
type CookieSigner interface {
	// Sign returns the value with its signature attached.
	Sign(value string) string

	// Verify checks the signature and returns the original value.
	Verify(signed string) (string, error)
}
