package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balbesina228/films-api/internal/config"
	"github.com/balbesina228/films-api/internal/errs"
	"github.com/balbesina228/films-api/internal/model"
	"github.com/balbesina228/films-api/internal/repository/memory"
	"github.com/balbesina228/films-api/internal/schema"
	"github.com/balbesina228/films-api/internal/server"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Auth: config.AuthConfig{
				SecretKey: "test-secret-key-0123456789",
				TokenTTL:  time.Hour,
			},
		},
		Logger: &logger,
	}
}

func newTestServices(t *testing.T) (*Services, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc, err := NewService(newTestServer(), store.Repositories())
	require.NoError(t, err)
	return svc, store
}

func ptr[T any](v T) *T { return &v }

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestFetchFilmByUUIDNotFound(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Films.FetchFilmByUUID(ctx, uuid.NewString())
	httpErr := requireStatus(t, err, http.StatusNotFound)
	assert.True(t, httpErr.Empty)

	_, err = svc.Films.FetchFilmByUUID(ctx, "not-a-uuid")
	requireStatus(t, err, http.StatusNotFound)
}

func TestFilmCreateUpdatePatchDelete(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svc.Films.CreateFilm(ctx, &schema.FilmRequest{Title: "TEST TITLE", Length: ptr(100)})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.UUID)
	assert.NotNil(t, created.Actors)

	updated, err := svc.Films.UpdateFilm(ctx, &schema.FilmRequest{
		UUID:          created.UUID.String(),
		Title:         "Updated title",
		DistributedBy: ptr("Update"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated title", updated.Title)
	assert.Equal(t, 100, *updated.Length)

	patch := &schema.FilmPatch{UUID: created.UUID.String(), Title: ptr("X"), Length: ptr(5)}
	require.NoError(t, patch.Validate())
	require.NoError(t, svc.Films.PatchFilm(ctx, patch))

	got, err := svc.Films.FetchFilmByUUID(ctx, created.UUID.String())
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, 100, *got.Length)

	require.NoError(t, svc.Films.DeleteFilm(ctx, created.UUID.String()))
	requireStatus(t, svc.Films.DeleteFilm(ctx, created.UUID.String()), http.StatusNotFound)
}

func TestFetchAllFilmsEagerLoadsActors(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	film, err := svc.Films.CreateFilm(ctx, &schema.FilmRequest{Title: "Alien"})
	require.NoError(t, err)
	actor, err := svc.Actors.CreateActor(ctx, &schema.ActorRequest{Name: "Sigourney Weaver"})
	require.NoError(t, err)
	assert.True(t, actor.IsActive)

	require.NoError(t, svc.Actors.LinkFilm(ctx, &schema.ActorLinkRequest{
		UUID: actor.UUID.String(), FilmUUID: film.UUID.String(),
	}))

	films, err := svc.Films.FetchAllFilms(ctx, model.FilmQuery{WithActors: true})
	require.NoError(t, err)
	require.Len(t, films, 1)
	require.Len(t, films[0].Actors, 1)
	assert.Equal(t, "Sigourney Weaver", films[0].Actors[0].Name)

	require.NoError(t, svc.Actors.UnlinkFilm(ctx, &schema.ActorLinkRequest{
		UUID: actor.UUID.String(), FilmUUID: film.UUID.String(),
	}))
	a, err := svc.Actors.FetchActorByUUID(ctx, actor.UUID.String())
	require.NoError(t, err)
	assert.Empty(t, a.Films)

	err = svc.Actors.LinkFilm(ctx, &schema.ActorLinkRequest{UUID: actor.UUID.String(), FilmUUID: "bogus"})
	requireStatus(t, err, http.StatusNotFound)
}

func TestAggregations(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	for _, r := range []float64{4, 8} {
		_, err := svc.Films.CreateFilm(ctx, &schema.FilmRequest{Title: "f", Rating: ptr(r), Length: ptr(90)})
		require.NoError(t, err)
	}

	stats, err := svc.Aggregations.FilmStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, 6.0, *stats.AvgRating)
	assert.Equal(t, int64(180), stats.TotalLength)
}

type recordingEnqueuer struct {
	to, username string
}

func (r *recordingEnqueuer) EnqueueWelcomeEmail(_ context.Context, to, username string) error {
	r.to, r.username = to, username
	return nil
}

func TestRegisterLoginAndToken(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	enqueuer := &recordingEnqueuer{}
	svc.Auth.welcome = enqueuer

	u, err := svc.Auth.Register(ctx, &schema.RegisterRequest{
		Username: "ripley", Email: "ripley@example.com", Password: "nostromo1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "nostromo1", u.PasswordHash)
	assert.Equal(t, "ripley@example.com", enqueuer.to)

	token, err := svc.Auth.Login(ctx, "ripley", "nostromo1")
	require.NoError(t, err)

	claims, err := svc.Auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.UUID.String(), claims.UserID)
	assert.Equal(t, "ripley", claims.Username)
	assert.Equal(t, config.ServiceName, claims.Issuer)

	_, err = svc.Auth.Login(ctx, "ripley", "wrong-password")
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = svc.Auth.Login(ctx, "nobody", "nostromo1")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestParseTokenRejectsExpiredAndForeign(t *testing.T) {
	svc, _ := newTestServices(t)
	u := &model.User{Base: model.Base{UUID: uuid.New()}, Username: "ash"}

	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.Auth.now = func() time.Time { return issuedAt }
	expired, err := svc.Auth.IssueToken(u)
	require.NoError(t, err)
	svc.Auth.now = time.Now

	_, err = svc.Auth.ParseToken(expired)
	assert.Error(t, err)

	other := *svc.Auth
	other.secret = []byte("another-secret-key-abcdefgh")
	foreign, err := other.IssueToken(u)
	require.NoError(t, err)

	_, err = svc.Auth.ParseToken(foreign)
	assert.Error(t, err)

	_, err = svc.Auth.ParseToken("not.a.jwt")
	assert.Error(t, err)
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	s := newTestServer()
	s.Config.Auth.SecretKey = ""

	_, err := NewAuthService(s, memory.New())
	assert.Error(t, err)
}

func TestFilmExists(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	f, err := svc.Films.CreateFilm(ctx, &schema.FilmRequest{Title: "Alien"})
	require.NoError(t, err)

	require.NoError(t, svc.Films.FilmExists(ctx, f.UUID.String()))

	httpErr := requireStatus(t, svc.Films.FilmExists(ctx, uuid.NewString()), http.StatusNotFound)
	assert.True(t, httpErr.Empty)
	requireStatus(t, svc.Films.FilmExists(ctx, "not-a-uuid"), http.StatusNotFound)
}

func TestActorExists(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Actors.CreateActor(ctx, &schema.ActorRequest{Name: "Sigourney Weaver"})
	require.NoError(t, err)

	require.NoError(t, svc.Actors.ActorExists(ctx, a.UUID.String()))
	requireStatus(t, svc.Actors.ActorExists(ctx, uuid.NewString()), http.StatusNotFound)
}
