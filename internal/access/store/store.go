package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a transaction scoped Store can hand out the same
// repos bound to the transaction.
type Store interface {
	Tokens() Tokens
	Memberships() Memberships
	Requests() Requests
	Settings() Settings

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise. Inside fn only the repos
	// of tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tokens interface {
	// CreateToken inserts a new token. Returns ErrAlreadyExists when the
	// token hash collides with an existing one.
	CreateToken(ctx context.Context, t domain.InvitationToken) error

	// GetTokenByHash returns a token by its fingerprint.
	GetTokenByHash(ctx context.Context, tokenHash string) (domain.InvitationToken, error)

	// ConsumeToken flips used=1 on a token that is unused and still inside
	// its window at now. Returns ErrNotFound when the guard matched no row.
	ConsumeToken(ctx context.Context, tokenHash string, userID int64, now time.Time) (domain.InvitationToken, error)
}

type Memberships interface {
	// CreateMembership inserts an active membership. Returns ErrAlreadyExists
	// when the user already holds an active row.
	CreateMembership(ctx context.Context, m domain.PremiumMembership) error

	// GetActiveMembership returns the user's status=active row, regardless of
	// whether its expiry has already passed.
	GetActiveMembership(ctx context.Context, userID int64) (domain.PremiumMembership, error)

	// ExtendActiveMembership sets expires_at on the user's active row and
	// points source_token_id at the token that paid for the extension.
	ExtendActiveMembership(ctx context.Context, userID int64, tokenID string, expiresAt, now time.Time) (domain.PremiumMembership, error)

	// RenewMembership adds extra to an active membership that has not yet
	// lapsed at now. Returns ErrNotFound when the guard matched no row.
	RenewMembership(ctx context.Context, userID int64, extra time.Duration, now time.Time) (domain.PremiumMembership, error)

	// ExpireMemberships flips every active membership with expires_at <= now
	// to expired and returns the flipped rows ordered by expires_at.
	ExpireMemberships(ctx context.Context, now time.Time) ([]domain.PremiumMembership, error)
}

type Requests interface {
	// CreateRequest inserts a pending request. Returns ErrAlreadyExists when
	// the user already has an unprocessed request.
	CreateRequest(ctx context.Context, r domain.FreeAccessRequest) error

	// GetPendingRequest returns the user's unprocessed request.
	GetPendingRequest(ctx context.Context, userID int64) (domain.FreeAccessRequest, error)

	// ProcessReadyRequests flips every unprocessed request with
	// requested_at <= readyBefore to processed and returns them oldest first.
	ProcessReadyRequests(ctx context.Context, readyBefore, now time.Time) ([]domain.FreeAccessRequest, error)

	// DeleteProcessedRequests removes processed requests whose processed_at
	// is before cutoff and returns how many rows were deleted.
	DeleteProcessedRequests(ctx context.Context, cutoff time.Time) (int64, error)
}

type Settings interface {
	// ListSettings returns every persisted override keyed by setting name.
	ListSettings(ctx context.Context) (map[string]string, error)

	// PutSetting upserts a single override.
	PutSetting(ctx context.Context, key, value string, now time.Time) error
}
