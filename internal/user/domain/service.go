package domain

import "context"

// Service exposes owner profiles for read-side enrichment. GetProfile
// returns (nil, nil) when the user record is absent.
type Service interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}
