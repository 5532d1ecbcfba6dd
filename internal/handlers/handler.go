package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/comments"
	"github.com/swipeup-app/swipeup/internal/config"
	"github.com/swipeup-app/swipeup/internal/feed"
	"github.com/swipeup-app/swipeup/internal/lifecycle"
	"github.com/swipeup-app/swipeup/internal/store"
	"github.com/swipeup-app/swipeup/internal/undo"
	"github.com/swipeup-app/swipeup/internal/vote"
)

// Handler wires the HTTP surface to the core components.
type Handler struct {
	cfg       *config.Config
	store     store.Store
	feed      *feed.Composer
	votes     *vote.Recorder
	lifecycle *lifecycle.Controller
	comments  *comments.Service
	undo      *undo.Stack
}

func New(cfg *config.Config, s store.Store) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     s,
		feed:      feed.NewComposer(s),
		votes:     vote.NewRecorder(s),
		lifecycle: lifecycle.NewController(s, cfg.ListingPriceRub),
		comments:  comments.NewService(s),
		undo:      undo.NewStack(),
	}
}

// abortWithError translates an error via the apperr taxonomy.
// Unclassified errors are logged and hidden behind a generic message.
func abortWithError(ctx *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	msg := err.Error()
	var e *apperr.Error
	if errors.As(err, &e) {
		msg = e.Message()
	}
	ctx.JSON(status, gin.H{"error": msg})
}

func (h *Handler) setSessionCookie(ctx *gin.Context, name, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Domain:   h.cfg.Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
