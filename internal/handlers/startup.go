package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/lifecycle"
	"github.com/swipeup-app/swipeup/internal/utils"
)

type SubmitStartupRequest struct {
	Name              string `json:"name" binding:"required"`
	Logo              string `json:"logo"`
	ShortDescription  string `json:"short_description" binding:"required"`
	LongDescription   string `json:"long_description" binding:"required"`
	Geo               string `json:"geo" binding:"required"`
	Stage             string `json:"stage" binding:"required"`
	Tags              string `json:"tags"`
	Telegram          string `json:"telegram"`
	Email             string `json:"email"`
	Website           string `json:"website"`
	SeekingInvestment bool   `json:"seeking_investment"`
}

func startupIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startup ID"})
		return 0, false
	}
	return uint(id), true
}

// Feed serves the swipe deck for a geography tab. Anonymous callers get
// the unfiltered deck; authenticated callers never see cards they
// already voted on.
func (h *Handler) Feed(ctx *gin.Context) {
	geo := ctx.Query("geo")
	category := ctx.Query("category")
	userID := utils.GetOptionalUserID(ctx)

	startups, err := h.feed.Compose(ctx.Request.Context(), geo, category, userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, startups)
}

func (h *Handler) GetStartup(ctx *gin.Context) {
	id, ok := startupIDParam(ctx)
	if !ok {
		return
	}

	startup, err := h.store.StartupByID(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, startup)
}

// SubmitStartup accepts submissions from authenticated and anonymous
// users alike; anonymous submissions have no owner.
func (h *Handler) SubmitStartup(ctx *gin.Context) {
	var req SubmitStartupRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	startup, err := h.lifecycle.Submit(ctx.Request.Context(), lifecycle.Submission{
		Name:              req.Name,
		Logo:              req.Logo,
		ShortDescription:  req.ShortDescription,
		LongDescription:   req.LongDescription,
		Geo:               req.Geo,
		Stage:             req.Stage,
		Tags:              req.Tags,
		TelegramUsername:  req.Telegram,
		Email:             req.Email,
		Website:           req.Website,
		SeekingInvestment: req.SeekingInvestment,
		OwnerID:           utils.GetOptionalUserID(ctx),
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, startup)
}

func (h *Handler) MyStartups(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	startups, err := h.store.StartupsByOwner(ctx.Request.Context(), userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, startups)
}

// Favorites lists the startups the user has liked, newest like first.
func (h *Handler) Favorites(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	startups, err := h.store.LikedStartups(ctx.Request.Context(), userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, startups)
}

// Rating is the public browse view: published startups ordered by like
// count.
func (h *Handler) Rating(ctx *gin.Context) {
	geo := ctx.Query("geo")

	rows, err := h.store.RatedStartups(ctx.Request.Context(), geo, true, 0)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rows)
}
