package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/auth"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/types"
	"github.com/swipeup-app/swipeup/internal/utils"
)

const sessionMaxAge = 60 * 60 * 24 * 7

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Bio:       user.Bio,
		Location:  user.Location,
		Instagram: user.Instagram,
		Telegram:  user.Telegram,
		Avatar:    user.Avatar,
	}
}

func (h *Handler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.store.UserByEmail(ctx.Request.Context(), req.Email); err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	} else if !apperr.IsKind(err, apperr.NotFound) {
		abortWithError(ctx, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Name:         req.Name,
	}

	if err := h.store.CreateUser(ctx.Request.Context(), user); err != nil {
		abortWithError(ctx, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.setSessionCookie(ctx, "token", token, sessionMaxAge)

	ctx.JSON(http.StatusCreated, gin.H{"user": userResponse(user)})
}

func (h *Handler) Signin(ctx *gin.Context) {
	var req SigninRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.store.UserByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		abortWithError(ctx, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.setSessionCookie(ctx, "token", token, sessionMaxAge)

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func (h *Handler) Me(ctx *gin.Context) {
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

func (h *Handler) Logout(ctx *gin.Context) {
	if userID, err := utils.GetCurrentUserID(ctx); err == nil {
		h.undo.Clear(userID)
	}

	h.setSessionCookie(ctx, "token", "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
