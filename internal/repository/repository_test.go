package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movienight/internal/database"
	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/testutil"
)

var base = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, repo *UserRepo, name string) model.User {
	t.Helper()
	u := model.User{Username: name, Email: name + "@example.com", PasswordHash: "hash", CreatedAt: base}
	require.NoError(t, repo.Create(context.Background(), &u))
	return u
}

func TestUserRepo(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepo(db, database.SQLite)
	ctx := context.Background()

	ada := seedUser(t, repo, "ada")
	bob := seedUser(t, repo, "bob")
	assert.NotZero(t, ada.ID)

	dup := model.User{Username: "ada", Email: "new@example.com", PasswordHash: "h", CreatedAt: base}
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrDuplicate)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "someone", "bob@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, got.ID)
	assert.True(t, base.Equal(got.CreatedAt))

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, bob.ID, users[0].ID)
}

func TestEventRepoDerivedFields(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := NewUserRepo(db, database.SQLite)
	events := NewEventRepo(db, database.SQLite)
	parts := NewParticipantRepo(db, database.SQLite)
	ctx := context.Background()

	ada := seedUser(t, users, "ada")
	bob := seedUser(t, users, "bob")

	two := 2
	later := model.Event{CreatedBy: ada.ID, MovieTitle: "Heat", Location: "Ada's", EventDate: base.Add(48 * time.Hour), MaxParticipants: &two, CreatedAt: base}
	sooner := model.Event{CreatedBy: bob.ID, MovieTitle: "Alien", Location: "Bob's", EventDate: base.Add(24 * time.Hour), CreatedAt: base}

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, events.CreateTx(ctx, tx, &later))
	require.NoError(t, events.CreateTx(ctx, tx, &sooner))
	require.NoError(t, parts.InsertTx(ctx, tx, &model.Participation{EventID: later.ID, UserID: ada.ID, JoinedAt: base}))
	require.NoError(t, parts.InsertTx(ctx, tx, &model.Participation{EventID: later.ID, UserID: bob.ID, JoinedAt: base.Add(time.Minute)}))
	assert.ErrorIs(t, parts.InsertTx(ctx, tx, &model.Participation{EventID: later.ID, UserID: bob.ID, JoinedAt: base}), ErrDuplicate)
	require.NoError(t, tx.Commit())

	list, err := events.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alien", list[0].MovieTitle)
	assert.Nil(t, list[0].MaxParticipants)
	assert.Equal(t, "Heat", list[1].MovieTitle)
	assert.Equal(t, "ada", list[1].CreatorName)
	assert.Equal(t, 2, list[1].ParticipantCount)
	require.NotNil(t, list[1].IsParticipant)
	assert.True(t, *list[1].IsParticipant)
	assert.True(t, list[1].Full())

	anon, err := events.GetByID(ctx, sooner.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, anon.IsParticipant)

	joined, err := events.ListJoined(ctx, bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, later.ID, joined[0].ID)

	organized, err := events.ListByCreator(ctx, bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, organized, 1)
	assert.Equal(t, sooner.ID, organized[0].ID)

	ps, err := parts.ListByEvent(ctx, later.ID)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "ada", ps[0].Username)
	assert.Equal(t, "bob", ps[1].Username)
}

func TestMovieRepoDeleteScopedToOwner(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := NewUserRepo(db, database.SQLite)
	movies := NewMovieRepo(db, database.SQLite)
	ctx := context.Background()

	ada := seedUser(t, users, "ada")
	bob := seedUser(t, users, "bob")

	m := model.MovieEntry{UserID: ada.ID, Title: "Heat", MovieType: model.MovieFavorite, AddedAt: base}
	require.NoError(t, movies.Create(ctx, &m))
	dup := m
	assert.ErrorIs(t, movies.Create(ctx, &dup), ErrDuplicate)

	removed, err := movies.Delete(ctx, bob.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = movies.Delete(ctx, ada.ID, m.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	left, err := movies.ListByUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}
