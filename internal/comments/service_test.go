package comments

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store/inmemory"
)

func newTestService(t *testing.T) (*Service, *inmemory.Store, *models.Startup) {
	t.Helper()
	s := inmemory.New()
	startup := &models.Startup{
		Name: "Test", ShortDescription: "s", LongDescription: "l",
		Geo: models.GeoRussia, Stage: "mvp", Status: models.StatusApproved,
	}
	require.NoError(t, s.CreateStartup(context.Background(), startup))
	return NewService(s), s, startup
}

func seedUser(t *testing.T, s *inmemory.Store, email, name string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: name, PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestPost_TrimsAndStores(t *testing.T) {
	svc, _, startup := newTestService(t)

	comment, err := svc.Post(context.Background(), 1, startup.ID, "  great idea  ")
	require.NoError(t, err)
	assert.Equal(t, "great idea", comment.Text)
	assert.NotZero(t, comment.ID)
}

func TestPost_LengthBoundary(t *testing.T) {
	svc, _, startup := newTestService(t)
	ctx := context.Background()

	_, err := svc.Post(ctx, 1, startup.ID, strings.Repeat("a", 501))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	_, err = svc.Post(ctx, 1, startup.ID, strings.Repeat("a", 500))
	require.NoError(t, err)
}

func TestPost_EmptyTextRejected(t *testing.T) {
	svc, _, startup := newTestService(t)

	_, err := svc.Post(context.Background(), 1, startup.ID, "   ")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestPost_UnknownStartupIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Post(context.Background(), 1, 999, "hello")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestRemove_AuthorOnly(t *testing.T) {
	svc, _, startup := newTestService(t)
	ctx := context.Background()

	comment, err := svc.Post(ctx, 1, startup.ID, "mine")
	require.NoError(t, err)

	err = svc.Remove(ctx, comment.ID, 2)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	require.NoError(t, svc.Remove(ctx, comment.ID, 1))

	err = svc.Remove(ctx, comment.ID, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestList_NewestFirstWithDisplayNames(t *testing.T) {
	svc, s, startup := newTestService(t)
	ctx := context.Background()

	named := seedUser(t, s, "maria@example.com", "Maria")
	unnamed := seedUser(t, s, "ivan.petrov@example.com", "")

	_, err := svc.Post(ctx, named.ID, startup.ID, "first")
	require.NoError(t, err)
	_, err = svc.Post(ctx, unnamed.ID, startup.ID, "second")
	require.NoError(t, err)

	views, err := svc.List(ctx, startup.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Newest first.
	assert.Equal(t, "second", views[0].Text)
	assert.Equal(t, "first", views[1].Text)

	// Email local-part when no profile name is set.
	assert.Equal(t, "ivan.petrov", views[0].AuthorName)
	assert.Equal(t, "Maria", views[1].AuthorName)
}

func TestList_DeletedAuthorRendersAnonymous(t *testing.T) {
	svc, _, startup := newTestService(t)
	ctx := context.Background()

	// UserID 42 never existed in the store.
	_, err := svc.Post(ctx, 42, startup.ID, "ghost")
	require.NoError(t, err)

	views, err := svc.List(ctx, startup.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Anonymous", views[0].AuthorName)
}
