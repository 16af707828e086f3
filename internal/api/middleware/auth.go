package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darmiel/voxauth/internal/api/presenter"
)

const AdminRole = "admin"

// AdminClaims are the claims expected in an admin session token.
type AdminClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// AdminAuth only lets requests through that carry an HS256 token signed with signingKey
// and holding the admin role.
func AdminAuth(signingKey []byte) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if tokenStr == "" {
				presenter.Error(w, r, "login required", http.StatusUnauthorized)
				return
			}

			var claims AdminClaims
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return signingKey, nil
			})
			if err != nil || !token.Valid {
				presenter.Error(w, r, "invalid session token", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(claims.Roles, AdminRole) {
				presenter.Error(w, r, "insufficient privileges", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
