package jwtx

import "errors"

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer turns claims into a compact JWT.
type Signer interface {
	Sign(Claims) (string, error)
}

var (
	ErrMalformed     = errors.New("jwtx: malformed token")
	ErrIssuer        = errors.New("jwtx: issuer mismatch")
	ErrExpired       = errors.New("jwtx: token expired")
	ErrNotYetValid   = errors.New("jwtx: token not yet valid")
	ErrSecretTooWeak = errors.New("jwtx: secret must be at least 32 bytes")
)
