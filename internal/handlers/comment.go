package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/utils"
)

type PostCommentRequest struct {
	StartupID uint   `json:"startup_id" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

func (h *Handler) ListComments(ctx *gin.Context) {
	startupID, err := strconv.ParseUint(ctx.Query("startup_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing startup_id"})
		return
	}

	views, err := h.comments.List(ctx.Request.Context(), uint(startupID))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, views)
}

func (h *Handler) PostComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req PostCommentRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	comment, err := h.comments.Post(ctx.Request.Context(), userID, req.StartupID, req.Text)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

func (h *Handler) DeleteComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	commentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := h.comments.Remove(ctx.Request.Context(), uint(commentID), userID); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
