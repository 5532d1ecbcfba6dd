package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store/inmemory"
)

// seedStartup creates an approved startup. Creation order determines
// recency: the last created is the newest.
func seedStartup(t *testing.T, s *inmemory.Store, name, geo, tags string) *models.Startup {
	t.Helper()
	startup := &models.Startup{
		Name:             name,
		ShortDescription: "short",
		LongDescription:  "long",
		Geo:              geo,
		Stage:            "mvp",
		Tags:             tags,
		Status:           models.StatusApproved,
		PaymentStatus:    models.PaymentUnpaid,
	}
	require.NoError(t, s.CreateStartup(context.Background(), startup))
	return startup
}

func names(startups []models.Startup) []string {
	out := make([]string, len(startups))
	for i, s := range startups {
		out[i] = s.Name
	}
	return out
}

func TestCompose_WorldwideInterleavesOneFromEach(t *testing.T) {
	s := inmemory.New()
	ctx := context.Background()

	// Created oldest-first, so R1/W1 end up newest in their lists.
	for _, name := range []string{"R3", "R2", "R1"} {
		seedStartup(t, s, name, models.GeoRussia, "")
	}
	for _, name := range []string{"W5", "W4", "W3", "W2", "W1"} {
		seedStartup(t, s, name, models.GeoWorldwide, "")
	}

	result, err := NewComposer(s).Compose(ctx, models.GeoWorldwide, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "W1", "R2", "W2", "R3", "W3", "W4", "W5"}, names(result))
}

func TestCompose_RussiaTabIsRussiaOnlyNewestFirst(t *testing.T) {
	s := inmemory.New()
	ctx := context.Background()

	seedStartup(t, s, "old", models.GeoRussia, "")
	seedStartup(t, s, "abroad", models.GeoWorldwide, "")
	seedStartup(t, s, "new", models.GeoRussia, "")

	result, err := NewComposer(s).Compose(ctx, models.GeoRussia, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, names(result))
}

func TestCompose_EmptyGeoReturnsAllApproved(t *testing.T) {
	s := inmemory.New()
	ctx := context.Background()

	seedStartup(t, s, "ru", models.GeoRussia, "")
	seedStartup(t, s, "ww", models.GeoWorldwide, "")

	pending := &models.Startup{
		Name: "hidden", ShortDescription: "s", LongDescription: "l",
		Geo: models.GeoRussia, Stage: "idea", Status: models.StatusPending,
	}
	require.NoError(t, s.CreateStartup(ctx, pending))

	result, err := NewComposer(s).Compose(ctx, "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ww", "ru"}, names(result))
}

func TestCompose_UnknownGeoIsValidationError(t *testing.T) {
	s := inmemory.New()

	_, err := NewComposer(s).Compose(context.Background(), "Mars", "", nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestCompose_CategoryMatchesSubstringCaseInsensitive(t *testing.T) {
	s := inmemory.New()
	ctx := context.Background()

	seedStartup(t, s, "fin", models.GeoRussia, "FinTech,B2B")
	seedStartup(t, s, "food", models.GeoRussia, "FoodTech")
	seedStartup(t, s, "pets", models.GeoRussia, "Pets")

	result, err := NewComposer(s).Compose(ctx, models.GeoRussia, "tech", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fin", "food"}, names(result))

	// Substring, not exact tag: "Tech" matches "FinTech".
	result, err = NewComposer(s).Compose(ctx, models.GeoRussia, "Tech", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fin", "food"}, names(result))
}

func TestCompose_ExcludesVotedStartupsForUser(t *testing.T) {
	s := inmemory.New()
	ctx := context.Background()

	liked := seedStartup(t, s, "liked", models.GeoRussia, "")
	disliked := seedStartup(t, s, "disliked", models.GeoRussia, "")
	seedStartup(t, s, "fresh", models.GeoRussia, "")

	userID := uint(7)
	require.NoError(t, s.RecordVote(ctx, userID, liked.ID, models.VoteLike))
	require.NoError(t, s.RecordVote(ctx, userID, disliked.ID, models.VoteDislike))

	result, err := NewComposer(s).Compose(ctx, models.GeoRussia, "", &userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, names(result))

	// Worldwide tab excludes them too.
	result, err = NewComposer(s).Compose(ctx, models.GeoWorldwide, "", &userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, names(result))
}

func TestCompose_AnonymousSeesEverything(t *testing.T) {
	s := inmemory.New()
	ctx := context.Background()

	liked := seedStartup(t, s, "liked", models.GeoRussia, "")
	require.NoError(t, s.RecordVote(ctx, 7, liked.ID, models.VoteLike))

	result, err := NewComposer(s).Compose(ctx, models.GeoRussia, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"liked"}, names(result))
}

// failingVotes simulates a vote-ledger outage.
type failingVotes struct {
	*inmemory.Store
}

func (f failingVotes) VotedStartupIDs(context.Context, uint) (map[uint]struct{}, error) {
	return nil, errors.New("connection refused")
}

func TestCompose_FailedExclusionFailsWholeCall(t *testing.T) {
	s := inmemory.New()
	ctx := context.Background()

	seedStartup(t, s, "card", models.GeoRussia, "")

	userID := uint(7)
	_, err := NewComposer(failingVotes{s}).Compose(ctx, models.GeoRussia, "", &userID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unavailable))
}
