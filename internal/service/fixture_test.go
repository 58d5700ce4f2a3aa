package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movienight/internal/database"
	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/queue"
	"github.com/iliyamo/movienight/internal/repository"
	"github.com/iliyamo/movienight/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ActivityEvent
}

func (p *recordingPublisher) PublishActivity(_ context.Context, ev queue.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) actions() []queue.Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]queue.Action, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	db      *sql.DB
	clock   *testutil.Clock
	users   *repository.UserRepo
	pub     *recordingPublisher
	events  *EventService
	movies  *MovieService
	reviews *ReviewService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	d := database.SQLite
	clock := testutil.NewClock(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC))
	users := repository.NewUserRepo(db, d)
	pub := &recordingPublisher{}

	events := NewEventService(db, d, repository.NewEventRepo(db, d), repository.NewParticipantRepo(db, d), users, pub)
	events.Now = clock.Now
	movies := NewMovieService(repository.NewMovieRepo(db, d), users)
	movies.Now = clock.Now
	reviews := NewReviewService(db, d, repository.NewReviewRepo(db, d), users)
	reviews.Now = clock.Now

	return &fixture{db: db, clock: clock, users: users, pub: pub, events: events, movies: movies, reviews: reviews}
}

func (f *fixture) user(t *testing.T, name string) uint64 {
	t.Helper()
	u := model.User{Username: name, Email: name + "@example.com", PasswordHash: "x", CreatedAt: f.clock.Now()}
	require.NoError(t, f.users.Create(context.Background(), &u))
	return u.ID
}

func (f *fixture) participantCount(t *testing.T, eventID uint64) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM event_participants WHERE event_id = ?", eventID).Scan(&n))
	return n
}

func intp(n int) *int { return &n }
