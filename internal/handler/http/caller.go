package http

import (
	"net/http"

	"github.com/attendly/leave-backend-go/internal/domain/auth"
	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// callerFromRequest resolves the authenticated caller from the access token.
// Runs behind AuthRequired, so claims are present on the happy path.
func callerFromRequest(r *http.Request) (user.CallerContext, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.CallerContext{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.CallerContext{}, auth.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return user.CallerContext{}, auth.ErrInvalidToken
	}

	return user.CallerContext{ID: userID, Role: user.Role(role)}, nil
}
