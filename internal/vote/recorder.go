// Package vote records swipes as like/dislike votes.
package vote

import (
	"context"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store"
)

// Recorder enforces the strict vote policy: at most one of like/dislike
// exists per (user, startup) pair, recording one clears the other.
type Recorder struct {
	store store.Store
}

func NewRecorder(s store.Store) *Recorder {
	return &Recorder{store: s}
}

// Record stores a vote idempotently. Re-recording the same kind is a
// no-op; recording the opposite kind replaces the existing vote.
func (r *Recorder) Record(ctx context.Context, userID, startupID uint, kind models.VoteKind) error {
	if !kind.Valid() {
		return apperr.Newf(apperr.Validation, "unknown vote direction %q", kind)
	}

	if _, err := r.store.StartupByID(ctx, startupID); err != nil {
		return err
	}

	return r.store.RecordVote(ctx, userID, startupID, kind)
}

// Remove deletes a vote if present; no-op otherwise. Backs the undo
// feature.
func (r *Recorder) Remove(ctx context.Context, userID, startupID uint, kind models.VoteKind) error {
	if !kind.Valid() {
		return apperr.Newf(apperr.Validation, "unknown vote direction %q", kind)
	}

	return r.store.DeleteVote(ctx, userID, startupID, kind)
}
