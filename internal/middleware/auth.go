package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vexora-shop/accounts/internal/domain"
	jwt_internal "github.com/vexora-shop/accounts/internal/utils/jwt"
	"github.com/vexora-shop/accounts/internal/logger"
	"github.com/vexora-shop/accounts/internal/utils"
)

// Key to store the user claims in the request context
type key int

const userClaimsKey key = 0

func Auth(jwtService *jwt_internal.Jwt, adminOnly bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessCookie, err := r.Cookie("accessToken")
			if err == http.ErrNoCookie {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			} else if err != nil {
				logger.Log.Error("failed to read access cookie", "error", err)
				http.Error(w, "Invalid cookie", http.StatusInternalServerError)
				return
			}

			token, err := jwtService.DecodeToken(accessCookie.Value)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			claims := token.Claims.(jwt.MapClaims)

			if adminOnly {
				isAdmin, ok := claims["admin"].(bool)
				if !ok || !isAdmin {
					http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
					return
				}
			}

			user := &domain.User{
				Id:    domain.UserId(claims["uid"].(float64)),
				Email: claims["email"].(string),
				Admin: claims["admin"].(bool),
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// Helper functions for admin and regular auth
func AdminOnly(jwtService *jwt_internal.Jwt) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, true)
}

func NeedAuth(jwtService *jwt_internal.Jwt) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, false)
}

// GetUserFromContext retrieves the authenticated user placed there by Auth.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
