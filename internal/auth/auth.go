package auth

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Verifier checks an identity token and returns its principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (*Principal, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (*Principal, error) {
	return f(ctx, token)
}
