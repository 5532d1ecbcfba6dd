package vote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store/inmemory"
)

func newTestRecorder(t *testing.T) (*Recorder, *inmemory.Store, *models.Startup) {
	t.Helper()
	s := inmemory.New()
	startup := &models.Startup{
		Name: "Test", ShortDescription: "s", LongDescription: "l",
		Geo: models.GeoRussia, Stage: "mvp", Status: models.StatusApproved,
	}
	require.NoError(t, s.CreateStartup(context.Background(), startup))
	return NewRecorder(s), s, startup
}

func votedIDs(t *testing.T, s *inmemory.Store, userID uint) map[uint]struct{} {
	t.Helper()
	voted, err := s.VotedStartupIDs(context.Background(), userID)
	require.NoError(t, err)
	return voted
}

func TestRecord_LikeThenDislikeLeavesExactlyOneVote(t *testing.T) {
	r, s, startup := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, 1, startup.ID, models.VoteLike))
	require.NoError(t, r.Record(ctx, 1, startup.ID, models.VoteDislike))

	assert.Len(t, votedIDs(t, s, 1), 1)

	// Only the dislike survives.
	likes, err := s.CountVotes(ctx, models.VoteLike, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)

	dislikes, err := s.CountVotes(ctx, models.VoteDislike, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dislikes)
}

func TestRecord_DislikeThenLikeLeavesExactlyOneVote(t *testing.T) {
	r, s, startup := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, 1, startup.ID, models.VoteDislike))
	require.NoError(t, r.Record(ctx, 1, startup.ID, models.VoteLike))

	likes, err := s.CountVotes(ctx, models.VoteLike, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	dislikes, err := s.CountVotes(ctx, models.VoteDislike, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dislikes)
}

func TestRecord_IsIdempotent(t *testing.T) {
	r, s, startup := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, 1, startup.ID, models.VoteLike))
	require.NoError(t, r.Record(ctx, 1, startup.ID, models.VoteLike))

	likes, err := s.CountVotes(ctx, models.VoteLike, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
}

func TestRecord_UnknownStartupIsNotFound(t *testing.T) {
	r, _, _ := newTestRecorder(t)

	err := r.Record(context.Background(), 1, 999, models.VoteLike)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestRecord_InvalidDirection(t *testing.T) {
	r, _, startup := newTestRecorder(t)

	err := r.Record(context.Background(), 1, startup.ID, "sideways")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestRemove_DeletesVoteAndIsNoOpWhenAbsent(t *testing.T) {
	r, s, startup := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, 1, startup.ID, models.VoteLike))
	require.NoError(t, r.Remove(ctx, 1, startup.ID, models.VoteLike))
	assert.Empty(t, votedIDs(t, s, 1))

	// Removing again is a no-op.
	require.NoError(t, r.Remove(ctx, 1, startup.ID, models.VoteLike))
}
