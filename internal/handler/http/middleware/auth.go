package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/auth"
	"github.com/presensia/timetrack-backend-go/internal/handler/http/response"
	"github.com/presensia/timetrack-backend-go/internal/pkg/jwt"
)

// TokenFromSessionCookie extracts the session token from the HTTP-only cookie.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(jwt.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Verifier validates the session token from the cookie or the Authorization
// header and stores the result on the request context.
func Verifier(jwtService jwt.Service) func(http.Handler) http.Handler {
	return jwtauth.Verify(jwtService.JWTAuth(), TokenFromSessionCookie, jwtauth.TokenFromHeader)
}

// AuthRequired rejects requests without a valid, unrevoked session token.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "session" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := TokenFromSessionCookie(r)
			if raw == "" {
				raw = jwtauth.TokenFromHeader(r)
			}
			if jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
