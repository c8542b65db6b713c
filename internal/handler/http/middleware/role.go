package middleware

import (
	"net/http"

	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/attendly/leave-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireApprover requires admin or sysadmin role
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleAdmin && role != user.RoleSysadmin {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSysadmin requires sysadmin role
func RequireSysadmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrSysadminAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleSysadmin) {
			response.HandleError(w, user.ErrSysadminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
