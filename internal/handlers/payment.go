package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/utils"
)

type PaymentRequest struct {
	StartupID uint `json:"startup_id" binding:"required"`
}

// CompletePayment runs the mock payment flow: owner pays the listing
// price, the startup is published.
func (h *Handler) CompletePayment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req PaymentRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing startup_id"})
		return
	}

	payment, err := h.lifecycle.Pay(ctx.Request.Context(), req.StartupID, userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": payment,
		"message": "Payment completed successfully",
	})
}
