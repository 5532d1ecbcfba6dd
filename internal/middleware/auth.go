package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/auth"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store"
	"github.com/swipeup-app/swipeup/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// tokenFromRequest reads the auth token from the session cookie, falling
// back to a Bearer header for non-browser clients.
func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func userFromToken(ctx *gin.Context, s store.Store, tokenString string) (*models.User, bool) {
	claims, err := auth.VerifyToken(tokenString)
	if err != nil {
		return nil, false
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, false
	}

	user, err := s.UserByID(ctx.Request.Context(), uint(userIDFloat))
	if err != nil {
		return nil, false
	}
	return user, true
}

// AuthRequired rejects requests without a valid session.
func AuthRequired(s store.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := tokenFromRequest(ctx)
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		user, ok := userFromToken(ctx, s, tokenString)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		ctx.Next()
	}
}

// AuthOptional resolves the current user when a valid session is
// present and continues anonymously otherwise. Feed browsing is open;
// voting is not.
func AuthOptional(s store.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokenString := tokenFromRequest(ctx); tokenString != "" {
			if user, ok := userFromToken(ctx, s, tokenString); ok {
				ctx.Set(types.ContextUserKey, AuthenticatedUser{
					ID:    user.ID,
					Name:  user.Name,
					Email: user.Email,
				})
			}
		}
		ctx.Next()
	}
}

// AdminRequired gates moderation endpoints behind the shared admin
// secret: either the password header directly, or the admin session
// cookie issued by the admin login.
func AdminRequired(adminPassword string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if header := ctx.GetHeader("X-Admin-Password"); header != "" {
			if subtle.ConstantTimeCompare([]byte(header), []byte(adminPassword)) == 1 {
				ctx.Next()
				return
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin password"})
			return
		}

		cookie, err := ctx.Cookie("admin_token")
		if err != nil || cookie == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin authentication required"})
			return
		}

		claims, err := auth.VerifyToken(cookie)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired admin session"})
			return
		}

		if isAdmin, ok := claims["is_admin"].(bool); !ok || !isAdmin {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin authentication required"})
			return
		}

		ctx.Next()
	}
}
