package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	models "github.com/clubhub/backend/internal/models/users"
)

type ContextKey string

const UserContextKey ContextKey = "currentUser"

// UserClaims is the authenticated caller extracted from the bearer token.
type UserClaims struct {
	UserID int64
	Role   models.Role
}

// UserFromContext returns the authenticated caller, if any.
func UserFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserContextKey).(UserClaims)
	return claims, ok
}

// Auth verifies the Bearer token and stores the caller's identity in the
// request context.
func Auth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeMessage(w, http.StatusUnauthorized, "Missing auth token")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				writeMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			mapClaims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}

			claims, ok := claimsFromToken(mapClaims)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to callers holding the given role. Must run
// after Auth.
func RequireRole(role models.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := UserFromContext(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Missing auth token")
				return
			}
			if claims.Role != role {
				writeMessage(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ResponseWrapper sets the JSON content type on every response.
func ResponseWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func claimsFromToken(mapClaims jwt.MapClaims) (UserClaims, bool) {
	userID, ok := numericClaim(mapClaims["user_id"])
	if !ok {
		return UserClaims{}, false
	}

	roleStr, ok := mapClaims["role"].(string)
	if !ok {
		return UserClaims{}, false
	}
	role := models.Role(roleStr)
	if !role.Valid() {
		return UserClaims{}, false
	}

	return UserClaims{UserID: userID, Role: role}, true
}

// numericClaim handles the json float64 a parsed token carries as well as
// the int64 a freshly built token holds.
func numericClaim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		id, err := n.Int64()
		return id, err == nil
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		return id, err == nil
	}
	return 0, false
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
