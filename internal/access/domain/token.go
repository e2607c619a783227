package domain

import "time"

// InvitationToken is a single-use credential that grants premium membership
// when redeemed. The same DurationHours bounds both the redemption window and
// the length of the membership it grants.
//
// Only TokenHash is persisted. Token carries the raw value on the result of
// generation and is empty on tokens loaded from storage.
type InvitationToken struct {
	ID            string
	Token         string
	TokenHash     string
	IssuedBy      string
	IssuedAt      time.Time
	DurationHours int
	ExpiresAt     time.Time // IssuedAt + DurationHours
	Used          bool
	UsedBy        int64      // zero until redeemed
	UsedAt        *time.Time // nil until redeemed
}

// Status reports the redemption status of the token at now.
func (t InvitationToken) Status(now time.Time) TokenStatus {
	switch {
	case t.Used:
		return TokenAlreadyUsed
	case !now.Before(t.ExpiresAt):
		return TokenExpired
	default:
		return TokenValid
	}
}

// TokenStatus is the outcome of validating a token.
type TokenStatus string

const (
	TokenValid       TokenStatus = "valid"
	TokenNotFound    TokenStatus = "not_found"
	TokenAlreadyUsed TokenStatus = "already_used"
	TokenExpired     TokenStatus = "expired"
)

// Valid reports whether the status allows redemption.
func (s TokenStatus) Valid() bool { return s == TokenValid }
