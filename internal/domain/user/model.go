package user

import "context"

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID string
	Email  string
}

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, accessToken string) (Principal, error)
}
