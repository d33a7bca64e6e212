package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// MinSecretBytes is the smallest shared secret accepted. HS256 with a short
// secret is brute-forceable offline, so refuse to start with one.
const MinSecretBytes = 32

// hs256 signs and verifies with a single shared secret held in process
// configuration. There is no key id or rotation story here: one process,
// one secret.
type hs256 struct {
	secret []byte
	issuer string
}

// NewHS256 returns a Signer/Verifier pair backed by the same shared secret.
func NewHS256(secret []byte, issuer string) (Signer, Verifier, error) {
	if len(secret) < MinSecretBytes {
		return nil, nil, fmt.Errorf("jwtx: shared secret must be at least %d bytes, got %d", MinSecretBytes, len(secret))
	}

	h := &hs256{secret: secret, issuer: issuer}
	return h, h, nil
}

func (h *hs256) Alg() string { return "HS256" }

// Sign produces a compact HS256 JWT for the given claims.
func (h *hs256) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token. The signing method is pinned
// to HS256 so an attacker cannot downgrade to "none" or confuse algorithms.
// Expiry and not-before are validated here; callers may re-validate with
// Claims.ValidateExpiry if they hold claims across time.
func (h *hs256) Verify(token string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrAlgMismatch
			}
			return h.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("jwtx: verify: %w", err)
		}
	}

	if !parsed.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
