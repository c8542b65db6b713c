package auth

import "context"

// AuthService defines authentication operations
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// GoogleLoginURL starts the OAuth2 flow and returns the redirect URL.
	GoogleLoginURL(userAgent string) (url string, state string)
	// GoogleCallback finishes the OAuth2 flow. The Google account email must
	// belong to an existing active user.
	GoogleCallback(ctx context.Context, code string) (LoginResponse, error)
	// Me returns the profile of the authenticated user.
	Me(ctx context.Context, userID string) (LoginResponse, error)
}
