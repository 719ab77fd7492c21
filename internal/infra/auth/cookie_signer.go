package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"dealradar/config"
	"dealradar/internal/domain/service"

	"github.com/pkg/errors"
)

// hmacCookieSigner signs cookie values as value + "." + base64url(HMAC-SHA256).
// The cookie secret is distinct from both JWT secrets.
type hmacCookieSigner struct {
	secret []byte
}

// NewCookieSigner is the constructor for hmacCookieSigner.
func NewCookieSigner(cfg *config.Config) (service.CookieSigner, error) {
	if cfg.SecretKey.Cookie == "" {
		return nil, errors.New("cookie signing secret must be provided")
	}

	return &hmacCookieSigner{secret: []byte(cfg.SecretKey.Cookie)}, nil
}

// Sign returns the value with its signature attached.
func (s *hmacCookieSigner) Sign(value string) string {
	return value + "." + s.mac(value)
}

// Verify checks the signature and returns the original value.
func (s *hmacCookieSigner) Verify(signed string) (string, error) {
	idx := strings.LastIndex(signed, ".")
	if idx <= 0 || idx == len(signed)-1 {
		return "", errors.Wrap(service.ErrCookieSignature, "malformed signed value")
	}

	value, sig := signed[:idx], signed[idx+1:]
	if subtle.ConstantTimeCompare([]byte(sig), []byte(s.mac(value))) != 1 {
		return "", service.ErrCookieSignature
	}

	return value, nil
}

func (s *hmacCookieSigner) mac(value string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(value))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
