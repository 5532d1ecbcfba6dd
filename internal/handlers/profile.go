package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/utils"
)

// Roughly 750KB of base64, matching the submission form's resize cap.
const maxAvatarLength = 1_000_000

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Instagram *string `json:"instagram"`
	Telegram  *string `json:"telegram"`
	Avatar    *string `json:"avatar"`
}

func (h *Handler) GetProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.store.UserByID(ctx.Request.Context(), currentUser.ID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func (h *Handler) UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Avatar != nil && len(*req.Avatar) > maxAvatarLength {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Avatar too large. Please use a smaller image."})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Instagram != nil {
		updates["instagram"] = *req.Instagram
	}
	if req.Telegram != nil {
		updates["telegram"] = *req.Telegram
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := h.store.UpdateUser(ctx.Request.Context(), currentUser.ID, updates); err != nil {
		abortWithError(ctx, err)
		return
	}

	user, err := h.store.UserByID(ctx.Request.Context(), currentUser.ID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userResponse(user),
	})
}
