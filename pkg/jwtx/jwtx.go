// Package jwtx mints and verifies the platform's signed access tokens.
// Tokens use a single process-wide symmetric secret (HS256); compromise
// of that secret invalidates the entire token-trust model, so it is
// loaded once at startup and never logged.
package jwtx

import "errors"

// Signer is anything that can sign a set of claims into a compact JWT.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
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
