package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a valid access token and stores the
// caller as a user.Actor in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			actor, ok := actorFromClaims(claims)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.WithActor(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}

func actorFromClaims(claims map[string]interface{}) (user.Actor, bool) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, false
	}
	roleStr, ok := claims["role"].(string)
	if !ok || !user.Role(roleStr).IsValid() {
		return user.Actor{}, false
	}

	actor := user.Actor{UserID: userID, Role: user.Role(roleStr)}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		actor.EmployeeID = &employeeID
	}
	return actor, true
}
