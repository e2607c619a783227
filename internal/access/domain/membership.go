package domain

import "time"

type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipExpired MembershipStatus = "expired"
)

// PremiumMembership is a user's time-bounded premium access. Only the expiry
// sweep moves Status from active to expired.
type PremiumMembership struct {
	ID            string
	UserID        int64
	SourceTokenID string // the most recent token redeemed into this membership
	JoinedAt      time.Time
	ExpiresAt     time.Time
	Status        MembershipStatus
	ExpiredAt     *time.Time
	UpdatedAt     time.Time
}

// ActiveAt reports whether the membership grants access at now. A row can be
// status active but past its expiry until the next sweep picks it up.
func (m PremiumMembership) ActiveAt(now time.Time) bool {
	return m.Status == MembershipActive && now.Before(m.ExpiresAt)
}

// RedeemPolicy decides what redeeming a token does for a user who already
// holds an active membership.
type RedeemPolicy string

const (
	// RedeemExtend stacks the token's duration onto the current expiry.
	RedeemExtend RedeemPolicy = "extend"
	// RedeemReject refuses the redemption and leaves the token unused.
	RedeemReject RedeemPolicy = "reject"
)
