package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ownerIDKey contextKey = "owner_id"

// OwnerIDFromContext returns the authenticated owner, or "" when the
// request was not authenticated.
func OwnerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ownerIDKey).(string)
	return id
}

// Authenticator verifies request identity from a JWT. Tokens are read
// from the "token" cookie or, failing that, a bearer Authorization
// header. The token subject becomes the owner ID.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			respondWithError(w, http.StatusUnauthorized, "missing auth token")
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims,
			func(*jwt.Token) (any, error) { return a.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			respondWithError(w, http.StatusForbidden, "invalid auth token")
			return
		}
		if claims.Subject == "" {
			respondWithError(w, http.StatusForbidden, "token has no subject")
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie("token"); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
