package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/middleware"
	"github.com/swipeup-app/swipeup/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// GetOptionalUserID returns the current user's id, or nil when the
// request is anonymous.
func GetOptionalUserID(ctx *gin.Context) *uint {
	user, err := GetCurrentUser(ctx)
	if err != nil {
		return nil
	}
	return &user.ID
}
