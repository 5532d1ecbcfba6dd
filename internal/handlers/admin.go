package handlers

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/auth"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store"
)

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type UpdateStartupRequest struct {
	Status       *string `json:"status"`
	RejectReason string  `json:"reject_reason"`
	IsFeatured   *bool   `json:"is_featured"`
}

type AdminStatsResponse struct {
	Users struct {
		Total   int64 `json:"total"`
		Last24h int64 `json:"last_24h"`
		Last7d  int64 `json:"last_7d"`
	} `json:"users"`
	Startups struct {
		Total    int64 `json:"total"`
		Pending  int64 `json:"pending"`
		Approved int64 `json:"approved"`
		Rejected int64 `json:"rejected"`
	} `json:"startups"`
	Votes struct {
		Total   int64 `json:"total"`
		Last24h int64 `json:"last_24h"`
	} `json:"votes"`
	Likes struct {
		Total   int64 `json:"total"`
		Last24h int64 `json:"last_24h"`
	} `json:"likes"`
	Dislikes struct {
		Total   int64 `json:"total"`
		Last24h int64 `json:"last_24h"`
	} `json:"dislikes"`
	ConversionRate string                `json:"conversion_rate"`
	TopStartups    []store.StartupRating `json:"top_startups"`
}

// AdminLogin exchanges the shared admin password for an admin session
// cookie.
func (h *Handler) AdminLogin(ctx *gin.Context) {
	var req AdminLoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password required"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) != 1 {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := auth.GenerateAdminToken()
	if err != nil {
		log.Printf("Failed to generate admin token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.setSessionCookie(ctx, "admin_token", token, sessionMaxAge)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListStartups returns every startup in every state, newest-first.
func (h *Handler) AdminListStartups(ctx *gin.Context) {
	startups, err := h.store.AllStartups(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, startups)
}

// AdminUpdateStartup applies a moderation decision and/or toggles the
// featured flag.
func (h *Handler) AdminUpdateStartup(ctx *gin.Context) {
	id, ok := startupIDParam(ctx)
	if !ok {
		return
	}

	var req UpdateStartupRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case models.StatusApproved:
			if _, err := h.lifecycle.Approve(ctx.Request.Context(), id); err != nil {
				abortWithError(ctx, err)
				return
			}
		case models.StatusRejected:
			if _, err := h.lifecycle.Reject(ctx.Request.Context(), id, req.RejectReason); err != nil {
				abortWithError(ctx, err)
				return
			}
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}

	if req.IsFeatured != nil {
		if err := h.store.SetStartupFeatured(ctx.Request.Context(), id, *req.IsFeatured); err != nil {
			abortWithError(ctx, err)
			return
		}
	}

	startup, err := h.store.StartupByID(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, startup)
}

func (h *Handler) AdminDeleteStartup(ctx *gin.Context) {
	id, ok := startupIDParam(ctx)
	if !ok {
		return
	}

	if err := h.lifecycle.Delete(ctx.Request.Context(), id); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminStats aggregates the dashboard numbers: user growth, moderation
// queue, vote volume and conversion, top startups by likes.
func (h *Handler) AdminStats(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	now := time.Now()
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	var resp AdminStatsResponse
	var err error

	if resp.Users.Total, err = h.store.CountUsers(reqCtx, nil); err != nil {
		abortWithError(ctx, err)
		return
	}
	if resp.Users.Last24h, err = h.store.CountUsers(reqCtx, &dayAgo); err != nil {
		abortWithError(ctx, err)
		return
	}
	if resp.Users.Last7d, err = h.store.CountUsers(reqCtx, &weekAgo); err != nil {
		abortWithError(ctx, err)
		return
	}

	counts, err := h.store.CountStartupsByStatus(reqCtx)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	resp.Startups.Total = counts.Total
	resp.Startups.Pending = counts.Pending
	resp.Startups.Approved = counts.Approved
	resp.Startups.Rejected = counts.Rejected

	if resp.Likes.Total, err = h.store.CountVotes(reqCtx, models.VoteLike, nil); err != nil {
		abortWithError(ctx, err)
		return
	}
	if resp.Likes.Last24h, err = h.store.CountVotes(reqCtx, models.VoteLike, &dayAgo); err != nil {
		abortWithError(ctx, err)
		return
	}
	if resp.Dislikes.Total, err = h.store.CountVotes(reqCtx, models.VoteDislike, nil); err != nil {
		abortWithError(ctx, err)
		return
	}
	if resp.Dislikes.Last24h, err = h.store.CountVotes(reqCtx, models.VoteDislike, &dayAgo); err != nil {
		abortWithError(ctx, err)
		return
	}

	resp.Votes.Total = resp.Likes.Total + resp.Dislikes.Total
	resp.Votes.Last24h = resp.Likes.Last24h + resp.Dislikes.Last24h

	resp.ConversionRate = "0"
	if resp.Votes.Total > 0 {
		resp.ConversionRate = fmt.Sprintf("%.1f", float64(resp.Likes.Total)/float64(resp.Votes.Total)*100)
	}

	top, err := h.store.RatedStartups(reqCtx, "", false, 5)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	resp.TopStartups = top

	ctx.JSON(http.StatusOK, resp)
}
