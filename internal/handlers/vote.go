package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/undo"
	"github.com/swipeup-app/swipeup/internal/utils"
)

type VoteRequest struct {
	StartupID uint   `json:"startup_id" binding:"required"`
	Direction string `json:"direction" binding:"required"`
}

// Vote records a swipe and pushes it onto the user's undo stack.
func (h *Handler) Vote(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req VoteRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing startup_id or direction"})
		return
	}

	kind := models.VoteKind(req.Direction)
	if err := h.votes.Record(ctx.Request.Context(), userID, req.StartupID, kind); err != nil {
		abortWithError(ctx, err)
		return
	}

	h.undo.Push(userID, undo.Entry{StartupID: req.StartupID, Kind: kind})

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) Unvote(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req VoteRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing startup_id or direction"})
		return
	}

	if err := h.votes.Remove(ctx.Request.Context(), userID, req.StartupID, models.VoteKind(req.Direction)); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// UndoVote pops the most recent swipe and removes the vote it recorded,
// returning the card to the deck.
func (h *Handler) UndoVote(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	entry, ok := h.undo.Pop(userID)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Nothing to undo"})
		return
	}

	if err := h.votes.Remove(ctx.Request.Context(), userID, entry.StartupID, entry.Kind); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"startup_id": entry.StartupID,
		"direction":  entry.Kind,
	})
}
