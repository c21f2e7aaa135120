package domain

import (
	"context"
	"errors"
)

// Provider resolves the caller identity from a bearer token.
type Provider interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

var (
	ErrMissingToken = errors.New("missing_token")
	ErrInvalidToken = errors.New("invalid_token")
)
