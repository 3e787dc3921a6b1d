// Package auth resolves request credentials to user identities.
//
// Credentials are read from the accessToken cookie or an Authorization bearer
// header, verified by one or more Verifiers, and resolved to an Identity through
// a Resolver supplied by the user domain.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the resolved, non-secret view of an authenticated user.
type Identity struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
}

// Subject is what a Verifier extracts from a token. Exactly one of ID or Email is set.
type Subject struct {
	ID    uuid.UUID
	Email string
}

// Verifier validates a raw bearer token.
type Verifier interface {
	Verify(ctx context.Context, token string) (Subject, error)
}

// Resolver loads identities for verified subjects.
type Resolver interface {
	ResolveIdentity(ctx context.Context, id uuid.UUID) (Identity, error)
	ResolveEmail(ctx context.Context, email string) (Identity, error)
}

type identityKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// AccessVerifier adapts Tokens to the Verifier interface.
type AccessVerifier struct {
	Tokens *Tokens
}

// Verify validates token as a locally issued access token.
func (v AccessVerifier) Verify(_ context.Context, token string) (Subject, error) {
	id, err := v.Tokens.VerifyAccess(token)
	if err != nil {
		return Subject{}, err
	}
	return Subject{ID: id}, nil
}
